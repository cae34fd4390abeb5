package format

import (
	"errors"

	"github.com/lossless-js/jscst/comments"
	"github.com/lossless-js/jscst/sink"
)

// ErrSkippedTokenTrivia is the panic value FormatDanglingTrivia raises
// when it encounters comments.Skipped trivia: spec.md §4.7 operator 3
// requires this to fail loudly rather than silently misrender a
// recovered-away token, matching the reference formatter's
// panic!("Skipped token trivia not yet supported").
var ErrSkippedTokenTrivia = errors.New("format: skipped token trivia not yet supported")

// State accumulates the per-token bookkeeping the combinators below need
// across a whole print: which tokens' trivia has already been emitted
// (so a token touched by both FormatDanglingTrivia and a later
// FormatRemoved/FormatReplaced doesn't print its comments twice) and
// which tokens a removal or replacement has consumed. Keyed by a
// token's source offset, which is unique and stable for the lifetime of
// one tree.
type State struct {
	triviaFormatted map[int]bool
	tracked         map[int]bool
}

// NewState returns an empty State for one formatting pass.
func NewState() *State {
	return &State{triviaFormatted: map[int]bool{}, tracked: map[int]bool{}}
}

func (s *State) isTriviaFormatted(tok sink.Token) bool {
	return s.triviaFormatted[tok.Start]
}

func (s *State) markTriviaFormatted(tok sink.Token) {
	s.triviaFormatted[tok.Start] = true
}

// trackToken records that tok's trivia has been (or is about to be)
// handled outside the normal leading/trailing attachment flow — mirrors
// the reference formatter marking a removed or replaced token consumed.
func (s *State) trackToken(tok sink.Token) {
	s.tracked[tok.Start] = true
}

// IsTracked reports whether tok has been passed through FormatRemoved or
// FormatReplaced.
func (s *State) IsTracked(tok sink.Token) bool {
	return s.tracked[tok.Start]
}

func commentDoc(c comments.Comment) Doc {
	return Text(c.Text)
}

// FormatLeadingComments renders every comment attached as Leading to one
// token, each followed by the spacing spec.md §4.7 prescribes from its
// own line-break geometry: a block comment followed by code on the same
// line gets a single space, one followed by a single line break keeps
// that break soft (so a group can still flatten it) unless a break
// preceded the comment too, and two or more blank lines collapse to
// one; a line comment always forces at least a hard line break, since
// anything after it necessarily starts a new line.
func FormatLeadingComments(leading []comments.Comment) Doc {
	var parts []Doc
	for _, c := range leading {
		parts = append(parts, commentDoc(c))
		switch c.Kind {
		case comments.Block, comments.InlineBlock:
			switch c.LinesAfter {
			case 0:
				parts = append(parts, Space())
			case 1:
				if c.LinesBefore == 0 {
					parts = append(parts, SoftLineBreakOrSpace())
				} else {
					parts = append(parts, HardLineBreak())
				}
			default:
				parts = append(parts, EmptyLine())
			}
		case comments.Line:
			switch c.LinesAfter {
			case 0, 1:
				parts = append(parts, HardLineBreak())
			default:
				parts = append(parts, EmptyLine())
			}
		}
	}
	return Concat(parts...)
}

// FormatTrailingComments renders every comment attached as Trailing to
// one token. A comment still on the same line as the preceding code (no
// line break before it accumulated yet) prints inline — with a forcing
// line suffix for a line comment, since only a line suffix keeps it from
// swallowing whatever comes next on the same conceptual line, and
// nothing special for a block comment, which already has its own
// delimiters. Once a line break has appeared before some earlier
// trailing comment, every comment from there on is itself on its own
// line and is deferred as a line suffix preceded by the blank-line
// collapse rule, plus ExpandParent so the enclosing group can't flatten
// a comment that must render on its own line (spec.md §4.7 operator 2).
func FormatTrailingComments(trailing []comments.Comment) Doc {
	var parts []Doc
	totalLinesBefore := 0
	for _, c := range trailing {
		totalLinesBefore += c.LinesBefore
		if totalLinesBefore > 0 {
			var breakDoc Doc
			switch c.LinesBefore {
			case 0, 1:
				breakDoc = HardLineBreak()
			default:
				breakDoc = EmptyLine()
			}
			parts = append(parts, LineSuffix(Concat(breakDoc, commentDoc(c))), ExpandParent())
			continue
		}
		content := Concat(Space(), commentDoc(c))
		if c.Kind == comments.Line {
			parts = append(parts, LineSuffix(content), ExpandParent())
		} else {
			parts = append(parts, content)
		}
	}
	return Concat(parts...)
}

// FormatDanglingTrivia renders the Dangling comments owned by tok — the
// ones that can't bind as anyone's leading or trailing comment because
// the node they sit inside has no child to attach to (spec.md §4.7
// operator 3, scenario 5: `{ /* hello */ }`). Each pair of consecutive
// comments is separated by a hard line break; when indent is true the
// whole block is preceded by one hard line break of its own, matching
// how an indented dangling block (inside a would-be-multiline
// construct) is laid out. Re-invoking this for the same token is a
// no-op, since FormatRemoved and FormatReplaced both route through it
// after already having emitted a token's dangling trivia once.
func FormatDanglingTrivia(state *State, tok sink.Token, dangling []comments.Comment, indent bool) Doc {
	if state.isTriviaFormatted(tok) {
		return Concat()
	}
	defer state.markTriviaFormatted(tok)

	if len(dangling) == 0 {
		return Concat()
	}

	var parts []Doc
	if indent {
		parts = append(parts, HardLineBreak())
	}
	lastLineComment := false
	for i, c := range dangling {
		if c.Kind == comments.Skipped {
			panic(ErrSkippedTokenTrivia)
		}
		if i > 0 {
			parts = append(parts, HardLineBreak())
		}
		parts = append(parts, commentDoc(c))
		lastLineComment = c.Kind == comments.Line
	}
	content := Concat(parts...)
	if indent {
		return Indent(content)
	}
	if lastLineComment {
		return Concat(content, HardLineBreak())
	}
	return content
}

// FormatTrimmedToken renders tok's own text with neither its leading nor
// its trailing trivia — the caller is responsible for formatting
// whatever comments belong to it (spec.md §4.7 operator 4).
func FormatTrimmedToken(tok sink.Token) Doc {
	return Text(tok.Text)
}

// FormatRemoved renders only tok's dangling trivia and marks it tracked,
// omitting the token's own text from the output entirely. Any leading or
// trailing comment still needs a home; the reference implementation
// documents this as the caller's responsibility to have re-attached
// those to a neighboring token before calling FormatRemoved, and this
// port keeps that same division of labor (spec.md §4.7 operator 5).
func FormatRemoved(state *State, tok sink.Token, dangling []comments.Comment) Doc {
	state.trackToken(tok)
	return FormatDanglingTrivia(state, tok, dangling, false)
}

// FormatReplaced renders tok's dangling trivia followed by content in
// place of tok's own text, marking tok tracked (spec.md §4.7
// operator 5).
func FormatReplaced(state *State, tok sink.Token, dangling []comments.Comment, content Doc) Doc {
	state.trackToken(tok)
	return Concat(FormatDanglingTrivia(state, tok, dangling, false), content)
}

// FormatOnlyIfBreaks renders content only if the group identified by
// groupID breaks; otherwise tok's dangling trivia is preserved so a
// token that exists purely to host a comment (a trailing comma kept
// only for an attached comment, say) doesn't silently drop it when the
// group stays flat (spec.md §4.7 operator 6).
func FormatOnlyIfBreaks(state *State, groupID string, tok sink.Token, dangling []comments.Comment, content Doc) Doc {
	return Concat(
		IfGroupBreaks(groupID, content),
		IfGroupFitsOnLine(groupID, FormatDanglingTrivia(state, tok, dangling, false)),
	)
}
