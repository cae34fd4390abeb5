package parser

import (
	"strings"

	"github.com/lossless-js/jscst/lexer"
	"github.com/lossless-js/jscst/token"
)

// TokenSource is the abstract cursor spec.md §4.1/§6 treats as an external
// collaborator: an infinite sequence of non-trivia tokens, each of which
// may carry attached trivia. The parser only ever calls these eight
// methods; *Cursor below is this module's concrete implementation over an
// eagerly-tokenized slice, but any type satisfying this interface can
// drive the parser (e.g. a streaming lexer, or a replay of recorded
// tokens in tests).
type TokenSource interface {
	// NthKind returns the kind of the token k positions ahead of the
	// cursor (k == 0 is the current token). Never advances.
	NthKind(k int) token.Kind
	// CurrentRange returns the byte span of the current token.
	CurrentRange() (start, end int)
	// CurrentText returns the current token's exact source text, trivia
	// excluded. Grammar rules use this sparingly — directive-prologue
	// detection (`"use strict"`) is the only consumer today — since most
	// decisions should rest on Kind, not text.
	CurrentText() string
	// Bump advances one token and returns the token consumed. At EOF this
	// is a no-op that returns the EOF token again (spec.md §4.1).
	Bump() lexer.Token
	// Pos returns an opaque, comparable cursor position for checkpoints.
	Pos() int
	// Seek rewinds the cursor to a position previously returned by Pos.
	Seek(pos int)
	// AtLineBreak reports whether the current token's leading trivia
	// contains a source-level line break — used by ParseRecovery's
	// optional "stop at line break" mode (spec.md §4.4).
	AtLineBreak() bool
	// ReLex reinterprets the current token (and everything lexed after
	// it) under ctx by re-scanning src from the current token's start —
	// used when a grammar rule knows more about grammatical position
	// than the first lexer pass did (spec.md §4.11, e.g. a `/` that
	// turns out to start a regex literal rather than divide).
	ReLex(src string, ctx lexer.ReLexContext)
}

// Cursor is the default TokenSource: an index into an eagerly-tokenized
// slice. Eager tokenization makes Seek a simple index assignment, which
// is what makes checkpoint/restore (spec.md §4.1, §5) cheap.
type Cursor struct {
	tokens []lexer.Token
	pos    int
}

// NewCursor wraps an already-tokenized input. The slice must end with an
// EOF token (lexer.Tokenize guarantees this).
func NewCursor(tokens []lexer.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

func (c *Cursor) NthKind(k int) token.Kind {
	i := c.pos + k
	if i >= len(c.tokens) {
		return token.EOF
	}
	return c.tokens[i].Kind
}

func (c *Cursor) CurrentRange() (int, int) {
	t := c.tokens[c.clampedPos()]
	return t.Start, t.End
}

func (c *Cursor) CurrentText() string {
	return c.tokens[c.clampedPos()].Text
}

func (c *Cursor) Bump() lexer.Token {
	t := c.tokens[c.clampedPos()]
	if t.Kind != token.EOF {
		c.pos++
	}
	return t
}

func (c *Cursor) Pos() int { return c.pos }

func (c *Cursor) Seek(pos int) { c.pos = pos }

func (c *Cursor) ReLex(src string, ctx lexer.ReLexContext) {
	c.tokens = lexer.ReLex(c.tokens, c.clampedPos(), src, ctx)
}

func (c *Cursor) AtLineBreak() bool {
	t := c.tokens[c.clampedPos()]
	for _, tr := range t.LeadingTrivia {
		if strings.Contains(tr.Text, "\n") {
			return true
		}
	}
	return false
}

func (c *Cursor) clampedPos() int {
	if c.pos >= len(c.tokens) {
		return len(c.tokens) - 1
	}
	return c.pos
}
