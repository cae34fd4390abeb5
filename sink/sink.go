// Package sink implements the tree-sink side of the parsing pipeline
// (spec.md §4.3, §6): the three-operation interface the compacted event
// stream is played into, and a lossless implementation that builds an
// immutable CST carrying every trivia byte.
//
// The teacher builds its AST directly inside recursive-descent parse
// functions (parse/parse.go's `newXNode` calls); there is no analogue of a
// separate playback stage, since the teacher has no event stream. This
// package exists purely to satisfy spec.md's two-phase design.
package sink

import (
	"strings"

	"github.com/lossless-js/jscst/diagnostic"
	"github.com/lossless-js/jscst/event"
	"github.com/lossless-js/jscst/lexer"
	"github.com/lossless-js/jscst/token"
)

// TreeSink is the three-operation contract event.Process output is played
// into (spec.md §4.3, §6). A lossy implementation may discard trivia on
// Token; the contract is identical either way.
type TreeSink interface {
	StartNode(kind token.Kind)
	Token(kind token.Kind, endOffset int)
	FinishNode()
	Errors(diags []diagnostic.Diagnostic)
}

// Play drives compacted events (the output of event.Process) and the
// original lexed tokens into sink. Token events are emitted in exactly the
// order Parser.Bump consumed them, so walking tokens with a single
// increasing index reconstructs which lexer.Token each Token event refers
// to without re-lexing (spec.md §4.3).
func Play(sink TreeSink, tokens []lexer.Token, events []event.Event, diags []diagnostic.Diagnostic) {
	pos := 0
	for _, ev := range events {
		switch ev.Tag() {
		case event.TagStart:
			sink.StartNode(ev.StartKind)
		case event.TagFinish:
			sink.FinishNode()
		case event.TagToken:
			sink.Token(tokens[pos].Kind, ev.EndOffset)
			pos++
		}
	}
	sink.Errors(diags)
}

// Element is either a *Node or a Token; Node.Children holds a mix of both.
type Element interface {
	// text appends this element's exact source text (trivia included) to b.
	text(b *strings.Builder)
}

// Node is an interior CST node: a kind plus its ordered children.
type Node struct {
	Kind     token.Kind
	Children []Element
}

func (n *Node) text(b *strings.Builder) {
	for _, c := range n.Children {
		c.text(b)
	}
}

// Text reconstructs the exact source text this node spans, trivia
// included (spec.md §8 losslessness property).
func (n *Node) Text() string {
	var b strings.Builder
	n.text(&b)
	return b.String()
}

// Tokens returns every token leaf under n, in source order.
func (n *Node) Tokens() []Token {
	var out []Token
	var walk func(Element)
	walk = func(e Element) {
		switch v := e.(type) {
		case Token:
			out = append(out, v)
		case *Node:
			for _, c := range v.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// Token is a CST leaf: a lexed token plus its attached trivia, exactly as
// the lexer produced it.
type Token struct {
	lexer.Token
}

func (t Token) text(b *strings.Builder) {
	for _, tr := range t.LeadingTrivia {
		b.WriteString(tr.Text)
	}
	b.WriteString(t.Text)
	for _, tr := range t.TrailingTrivia {
		b.WriteString(tr.Text)
	}
}

// LosslessTreeSink is the default TreeSink: it builds a full *Node tree
// retaining every token's trivia, so the result can be played back to
// reconstruct the source byte-for-byte (spec.md §4.3, §8).
type LosslessTreeSink struct {
	tokens []lexer.Token
	pos    int
	stack  []*Node
	root   *Node
	diags  []diagnostic.Diagnostic
}

// NewLosslessTreeSink builds a sink over the same token slice the parser
// that produced the event stream was constructed with.
func NewLosslessTreeSink(tokens []lexer.Token) *LosslessTreeSink {
	return &LosslessTreeSink{tokens: tokens}
}

func (s *LosslessTreeSink) StartNode(kind token.Kind) {
	s.stack = append(s.stack, &Node{Kind: kind})
}

func (s *LosslessTreeSink) Token(kind token.Kind, endOffset int) {
	tok := s.tokens[s.pos]
	s.pos++
	top := s.stack[len(s.stack)-1]
	top.Children = append(top.Children, Token{tok})
}

func (s *LosslessTreeSink) FinishNode() {
	n := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if len(s.stack) == 0 {
		s.root = n
		return
	}
	parent := s.stack[len(s.stack)-1]
	parent.Children = append(parent.Children, n)
}

func (s *LosslessTreeSink) Errors(diags []diagnostic.Diagnostic) {
	s.diags = diags
}

// Root returns the finished tree's root node. Valid only after Play has
// driven a fully balanced event stream into this sink.
func (s *LosslessTreeSink) Root() *Node {
	return s.root
}

// Diagnostics returns the diagnostic list passed to Errors.
func (s *LosslessTreeSink) Diagnostics() []diagnostic.Diagnostic {
	return s.diags
}

// Tree wraps a finished root node as a shareable, zero-copy cursor owner
// (spec.md §3: "each logical cursor pairs an owning tree reference with a
// path").
type Tree struct {
	root *Node
}

// NewTree wraps root.
func NewTree(root *Node) Tree {
	return Tree{root: root}
}

// Root returns the tree's root node.
func (t Tree) Root() *Node {
	return t.root
}

// Cursor returns a cursor at the tree's root.
func (t Tree) Cursor() Cursor {
	return Cursor{tree: t}
}

// Cursor is a path from a Tree's root to one of its descendants. Cursors
// are values: deriving a child cursor never mutates the tree or the
// parent cursor (spec.md §3's zero-copy traversal).
type Cursor struct {
	tree Tree
	path []int
}

// Node resolves the cursor to the node it currently points at, or nil if
// the path no longer resolves (e.g. an index past the end of a node's
// children, or through a token leaf).
func (c Cursor) Node() *Node {
	n := c.tree.root
	for _, idx := range c.path {
		if n == nil || idx < 0 || idx >= len(n.Children) {
			return nil
		}
		child, ok := n.Children[idx].(*Node)
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Child derives a cursor to the i'th child of the current node.
func (c Cursor) Child(i int) Cursor {
	path := append(append([]int(nil), c.path...), i)
	return Cursor{tree: c.tree, path: path}
}
