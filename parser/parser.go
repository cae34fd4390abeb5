// Package parser implements the event-driven parsing protocol spec.md §4.1
// through §4.5: parser state, markers, checkpoints, and the recovery and
// feature-gate combinators that every grammar rule is built from. It is
// grammar-agnostic — package grammar supplies the actual JS/TS production
// rules on top of it.
//
// The cursor (two-token-lookahead, next()/backup()) is adapted from the
// teacher's parse/parse.go `tree` struct; the panic/recover error model
// there is replaced outright by an append-only diagnostic buffer, because
// spec.md requires parsing to never fail fatally (§7).
package parser

import (
	"github.com/lossless-js/jscst/diagnostic"
	"github.com/lossless-js/jscst/event"
	"github.com/lossless-js/jscst/lexer"
	"github.com/lossless-js/jscst/token"
	"github.com/rs/zerolog"
)

// Parser holds everything a grammar rule needs: the token cursor, the
// event log it appends to, the diagnostic buffer, and the strictness /
// source-type flags feature gates read.
type Parser struct {
	source TokenSource
	events []event.Event
	diags  []diagnostic.Diagnostic

	FileID     diagnostic.FileID
	SourceType SourceType
	Strict     StrictMode

	log zerolog.Logger

	src     string
	haveSrc bool
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithLogger attaches a structured logger (spec.md §4.9, ambient
// addition): the parser emits Debug-level events for checkpoint
// restores, recovery, and feature-gate demotions. Omitted, the parser
// uses zerolog.Nop() and never logs, keeping Parse a pure function of its
// input (spec.md §5).
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithFileID sets the file identifier attached to every diagnostic this
// parser produces.
func WithFileID(id diagnostic.FileID) Option {
	return func(p *Parser) { p.FileID = id }
}

// WithSource attaches the original source text, enabling grammar rules
// that need to re-lex a token under new grammatical context (spec.md
// §4.11, e.g. ReLexRegex). Without it, those rules are no-ops and keep
// the first lexer pass's reading.
func WithSource(src string) Option {
	return func(p *Parser) { p.src = src; p.haveSrc = true }
}

// New creates a Parser positioned at the start of tokens.
func New(tokens []lexer.Token, sourceType SourceType, opts ...Option) *Parser {
	p := &Parser{
		source:     NewCursor(tokens),
		FileID:     diagnostic.NewFileID(),
		SourceType: sourceType,
		log:        zerolog.Nop(),
	}
	if sourceType.Module {
		p.Strict.PushStrict("module code is always strict mode")
	} else {
		p.Strict.PushSloppy()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NthKind is the kind of the token k positions ahead (0 = current).
func (p *Parser) NthKind(k int) token.Kind {
	return p.source.NthKind(k)
}

// At reports whether the current token has the given kind.
func (p *Parser) At(k token.Kind) bool {
	return p.NthKind(0) == k
}

// AtTS reports whether the current token's kind is in the set.
func (p *Parser) AtTS(set token.Set) bool {
	return set.Contains(p.NthKind(0))
}

// AtEOF reports whether the cursor rests at end-of-file.
func (p *Parser) AtEOF() bool {
	return p.At(token.EOF)
}

// AtLineBreak reports whether a source-level line break precedes the
// current token.
func (p *Parser) AtLineBreak() bool {
	return p.source.AtLineBreak()
}

// CurrentRange returns the byte span of the current token, used to anchor
// diagnostics at the cursor (spec.md §4.1's `expect` contract).
func (p *Parser) CurrentRange() (int, int) {
	return p.source.CurrentRange()
}

// CurrentText returns the current token's exact source text.
func (p *Parser) CurrentText() string {
	return p.source.CurrentText()
}

// ReLexRegex reinterprets the current `/` or `/=` token as the start of
// a regex literal instead of the division operator (spec.md §4.11). It
// is a no-op when the parser was built without WithSource, in which case
// the token keeps its original division-operator reading.
func (p *Parser) ReLexRegex() {
	if !p.haveSrc {
		return
	}
	p.source.ReLex(p.src, lexer.ReLexRegex)
}

// Bump unconditionally advances one token, appending a Token event. At
// EOF it is a no-op (spec.md §4.1).
func (p *Parser) Bump() {
	if p.AtEOF() {
		return
	}
	tok := p.source.Bump()
	p.events = append(p.events, event.NewToken(tok.Kind, tok.End))
}

// Eat advances and returns true if the current token has kind k;
// otherwise it is a no-op returning false. Eat never emits a diagnostic
// (spec.md §4.1) — it is for optional tokens.
func (p *Parser) Eat(k token.Kind) bool {
	if !p.At(k) {
		return false
	}
	p.Bump()
	return true
}

// Expect advances and returns true if the current token has kind k;
// otherwise it emits an "Expected <kind>" diagnostic at the cursor,
// consumes nothing, and returns false. The caller is responsible for
// leaving the resulting "missing" slot positionally correct in the tree
// (spec.md §4.1, §7).
func (p *Parser) Expect(k token.Kind) bool {
	if p.Eat(k) {
		return true
	}
	start, end := p.CurrentRange()
	p.Error(diagnostic.Newf(p.FileID, diagnostic.Span{Start: start, End: end}, "Expected %s", k))
	return false
}

// Error appends a diagnostic to the buffer. Parse errors are never
// fatal — Error never panics, never returns, never aborts parsing
// (spec.md §7).
func (p *Parser) Error(d diagnostic.Diagnostic) {
	p.diags = append(p.diags, d)
}

// Diagnostics returns the diagnostics emitted so far, in emission order.
func (p *Parser) Diagnostics() []diagnostic.Diagnostic {
	return p.diags
}

// Events returns the raw (uncompacted) event log; callers pass this to
// event.Process before driving a tree sink.
func (p *Parser) Events() []event.Event {
	return p.events
}

// Start opens a new marker. See marker.go.
func (p *Parser) Start() Marker {
	idx := len(p.events)
	p.events = append(p.events, event.NewStart(token.TOMBSTONE))
	start, _ := p.CurrentRange()
	return Marker{parser: p, eventIdx: idx, sourcePos: start}
}

// Checkpoint captures a restorable snapshot of parser state. See
// checkpoint.go.
func (p *Parser) Checkpoint() Checkpoint {
	cp := Checkpoint{
		cursorPos:  p.source.Pos(),
		eventsLen:  len(p.events),
		diagsLen:   len(p.diags),
		strictLen:  len(p.Strict.frames),
	}
	p.log.Debug().
		Int("cursor_pos", cp.cursorPos).
		Int("events_len", cp.eventsLen).
		Msg("parser: checkpoint")
	return cp
}

// Restore rewinds the parser to a previously captured checkpoint,
// discarding every event, diagnostic, and cursor advance made since
// (spec.md §4.1, §5). It must never be used across a marker's
// complete/precede boundary that would outlive the checkpoint.
func (p *Parser) Restore(cp Checkpoint) {
	p.log.Debug().
		Int("cursor_pos", cp.cursorPos).
		Int("events_len", cp.eventsLen).
		Int("discarded_events", len(p.events)-cp.eventsLen).
		Int("discarded_diagnostics", len(p.diags)-cp.diagsLen).
		Msg("parser: restore")
	p.source.Seek(cp.cursorPos)
	p.events = p.events[:cp.eventsLen]
	p.diags = p.diags[:cp.diagsLen]
	p.Strict.frames = p.Strict.frames[:cp.strictLen]
}

// debugLog exposes the parser's logger to other files in this package
// (recovery.go) without making the field itself exported.
func (p *Parser) debugLog() *zerolog.Logger {
	return &p.log
}
