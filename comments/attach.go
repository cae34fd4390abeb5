// Package comments implements the post-parse comment-attachment pass
// (spec.md §4.6): a single linear walk over a finished tree's tokens that
// classifies every comment as leading, trailing, or dangling, recording
// the line-break geometry the formatter combinators (package format)
// need to reproduce correct spacing.
//
// There is no analogue of this pass in the teacher, which renders
// directly from its AST without an intermediate trivia-classification
// step; the walk itself is grounded in how the teacher's own single-pass
// template walks (parsepasses) traverse a finished tree node by node.
package comments

import (
	"strings"

	"github.com/lossless-js/jscst/lexer"
	"github.com/lossless-js/jscst/sink"
	"github.com/lossless-js/jscst/token"
)

// Kind distinguishes a comment's surface form.
type Kind int

const (
	Line Kind = iota
	Block
	// InlineBlock is a block comment with no line breaks on either side —
	// `/* x */` sitting entirely within a line of code.
	InlineBlock
	// Skipped marks a non-comment token recovery swallowed into trivia
	// rather than its own UNKNOWN_* node (token.SKIPPED_TOKEN_TRIVIA).
	// The formatter has no rendering for this — see
	// format.FormatDanglingTrivia.
	Skipped
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "Line"
	case Block:
		return "Block"
	case InlineBlock:
		return "InlineBlock"
	case Skipped:
		return "Skipped"
	default:
		return "Kind(?)"
	}
}

// Attachment is where a comment binds in the tree.
type Attachment int

const (
	Leading Attachment = iota
	Trailing
	Dangling
)

func (a Attachment) String() string {
	switch a {
	case Leading:
		return "Leading"
	case Trailing:
		return "Trailing"
	case Dangling:
		return "Dangling"
	default:
		return "Attachment(?)"
	}
}

// Comment is one classified comment (spec.md §3's Comment value).
// TokenStart is the byte offset of the token whose trivia physically
// carries this comment — the node-level Leading/Trailing attachment
// above is relative to that token, not a pointer into the tree.
type Comment struct {
	Text        string
	Kind        Kind
	LinesBefore int
	LinesAfter  int
	Attachment  Attachment
	TokenStart  int
}

// Attach walks every token of root in source order and returns every
// comment found in their leading/trailing trivia, classified per spec.md
// §4.6. The walk considers each gap between two source-adjacent tokens as
// a whole (a token's trailing trivia concatenated with the following
// token's leading trivia, in that order) so line-break counts are
// correct across the trailing/leading split the lexer performs.
//
// One simplification relative to the full algorithm: a comment on its
// own line after the very last token the tree consumed (trailing
// material before end-of-file that the grammar never bumped) is not
// visited, since it never became part of any token's trivia this walk
// can reach.
func Attach(root *sink.Node) []Comment {
	toks := root.Tokens()
	var out []Comment

	for i := range toks {
		var before []lexer.Trivia
		prevStart := -1
		if i > 0 {
			before = toks[i-1].TrailingTrivia
			prevStart = toks[i-1].Start
		}
		leading := toks[i].LeadingTrivia
		boundary := len(before)

		gap := make([]lexer.Trivia, 0, len(before)+len(leading))
		gap = append(gap, before...)
		gap = append(gap, leading...)

		for idx, tr := range gap {
			if tr.Kind != token.LINE_COMMENT && tr.Kind != token.BLOCK_COMMENT && tr.Kind != token.SKIPPED_TOKEN_TRIVIA {
				continue
			}
			linesBefore := countNewlines(gap[:idx])
			linesAfter := countNewlines(gap[idx+1:])

			attachment := Leading
			ownerStart := toks[i].Start
			if idx < boundary {
				attachment = Trailing
				ownerStart = prevStart
			}

			var kind Kind
			switch tr.Kind {
			case token.SKIPPED_TOKEN_TRIVIA:
				kind = Skipped
			case token.BLOCK_COMMENT:
				kind = Block
				if linesBefore == 0 && linesAfter == 0 {
					kind = InlineBlock
				}
			default:
				kind = Line
			}

			out = append(out, Comment{
				Text:        tr.Text,
				Kind:        kind,
				LinesBefore: linesBefore,
				LinesAfter:  linesAfter,
				Attachment:  attachment,
				TokenStart:  ownerStart,
			})
		}
	}

	reclassifyDangling(root, out)
	return out
}

func countNewlines(trivia []lexer.Trivia) int {
	n := 0
	for _, tr := range trivia {
		n += strings.Count(tr.Text, "\n")
	}
	return n
}

// reclassifyDangling finds nodes with no child node at all (only
// punctuation tokens, e.g. an empty block's `{` `}`) and promotes any
// comment physically sitting between their first and last token from
// Trailing/Leading to Dangling — it cannot bind to a surrounding
// statement or expression because there isn't one (spec.md §4.6,
// scenario 5: `{ /* hello */ }`).
func reclassifyDangling(n *sink.Node, comments []Comment) {
	childNodes := 0
	for _, c := range n.Children {
		if _, ok := c.(*sink.Node); ok {
			childNodes++
		}
	}
	if childNodes == 0 && len(n.Children) >= 2 {
		first, firstOK := n.Children[0].(sink.Token)
		last, lastOK := n.Children[len(n.Children)-1].(sink.Token)
		if firstOK && lastOK {
			for i := range comments {
				if comments[i].TokenStart == first.Start && comments[i].Attachment == Trailing {
					comments[i].Attachment = Dangling
				}
				if comments[i].TokenStart == last.Start && comments[i].Attachment == Leading {
					comments[i].Attachment = Dangling
				}
			}
		}
	}
	for _, c := range n.Children {
		if child, ok := c.(*sink.Node); ok {
			reclassifyDangling(child, comments)
		}
	}
}
