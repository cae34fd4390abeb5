package parser

import (
	"testing"

	"github.com/lossless-js/jscst/diagnostic"
	"github.com/lossless-js/jscst/event"
	"github.com/lossless-js/jscst/token"
)

func garbageDiagnostic(p *Parser, recovered CompletedMarker) diagnostic.Diagnostic {
	r := recovered.Range()
	return diagnostic.New(p.FileID, "unexpected token", diagnostic.Span{Start: r.Start, End: r.End})
}

func TestRecoveryConsumesUntilSyncSet(t *testing.T) {
	p := newTestParser("@ @ ]")
	r := NewRecovery(token.UNKNOWN_EXPRESSION, token.NewSet(token.R_BRACK, token.EOF))
	result, cm := r.Run(p, garbageDiagnostic)

	if result != Recovered {
		t.Fatalf("expected Recovered, got %v", result)
	}
	if cm.Kind() != token.UNKNOWN_EXPRESSION {
		t.Fatalf("expected recovered node kind UNKNOWN_EXPRESSION, got %v", cm.Kind())
	}
	if !p.At(token.R_BRACK) {
		t.Fatalf("expected cursor to stop at ], got %v", p.NthKind(0))
	}
	if len(p.Diagnostics()) != 1 {
		t.Fatalf("expected exactly one diagnostic from recovery, got %d", len(p.Diagnostics()))
	}
}

func TestRecoveryAtSyncTokenIsUnrecoverable(t *testing.T) {
	p := newTestParser("]")
	r := NewRecovery(token.UNKNOWN_EXPRESSION, token.NewSet(token.R_BRACK, token.EOF))
	result, _ := r.Run(p, garbageDiagnostic)

	if result != Unrecoverable {
		t.Fatalf("expected Unrecoverable when already at sync token, got %v", result)
	}
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("expected no diagnostics emitted on unrecoverable attempt, got %d", len(p.Diagnostics()))
	}
}

func TestRecoveryStopsAtLineBreakWhenEnabled(t *testing.T) {
	p := newTestParser("@ @\n@ ]")
	r := NewRecovery(token.UNKNOWN_STATEMENT, token.NewSet(token.R_BRACK, token.EOF)).EnableRecoveryOnLineBreak()
	result, _ := r.Run(p, garbageDiagnostic)

	if result != Recovered {
		t.Fatalf("expected Recovered, got %v", result)
	}
	if !p.At(token.AT) || !p.AtLineBreak() {
		t.Fatalf("expected recovery to stop at the first @ after the line break, before ], got %v", p.NthKind(0))
	}
}

// arrayElementList is a minimal ListParser exercising ParseNodeList: it
// parses comma-free NUMBER elements until R_BRACK, recovering from any
// other token via an UNKNOWN_EXPRESSION wrapper.
type arrayElementList struct {
	elements int
}

func (l *arrayElementList) ParseElement(p *Parser) ParsedSyntax {
	if !p.At(token.NUMBER) {
		return Absent()
	}
	m := p.Start()
	p.Bump()
	l.elements++
	return Present(m.Complete(token.NUMBER_LITERAL_EXPRESSION))
}

func (l *arrayElementList) IsAtListEnd(p *Parser) bool {
	return p.At(token.R_BRACK)
}

func (l *arrayElementList) Recover(p *Parser, parsedElement ParsedSyntax) RecoveryResult {
	r := NewRecovery(token.UNKNOWN_EXPRESSION, token.NewSet(token.R_BRACK, token.NUMBER, token.EOF))
	result, _ := r.Run(p, garbageDiagnostic)
	return result
}

func TestParseNodeListRecoversPastGarbageAndTerminates(t *testing.T) {
	p := newTestParser("1 @ 2 ]")
	l := &arrayElementList{}
	ParseNodeList(p, l)

	if l.elements != 2 {
		t.Fatalf("expected 2 recognized elements, got %d", l.elements)
	}
	if !p.At(token.R_BRACK) {
		t.Fatalf("expected list driver to stop at ], got %v", p.NthKind(0))
	}

	processed := event.Process(p.Events())
	var unknownSeen bool
	for _, ev := range processed {
		if ev.Tag() == event.TagStart && ev.StartKind == token.UNKNOWN_EXPRESSION {
			unknownSeen = true
		}
	}
	if !unknownSeen {
		t.Fatalf("expected a compacted UNKNOWN_EXPRESSION node wrapping the garbage token")
	}
}

func TestParseNodeListStopsAtEOFAfterRecoveryWithoutLooping(t *testing.T) {
	src := "1 @" // no terminator at all — EOF is in the sync set, so recovery
	// consumes "@" then the driver sees EOF and returns.
	p := newTestParser(src)
	l := &arrayElementList{}
	ParseNodeList(p, l)

	if !p.AtEOF() {
		t.Fatalf("expected driver to reach EOF, got %v", p.NthKind(0))
	}
	if l.elements != 1 {
		t.Fatalf("expected 1 recognized element, got %d", l.elements)
	}
}

// commaSeparatedNumbers exercises ParseSeparatedList with COMMA as the
// separator and no tolerance for a trailing comma.
type commaSeparatedNumbers struct {
	elements int
}

func (l *commaSeparatedNumbers) ParseElement(p *Parser) ParsedSyntax {
	if !p.At(token.NUMBER) {
		return Absent()
	}
	m := p.Start()
	p.Bump()
	l.elements++
	return Present(m.Complete(token.NUMBER_LITERAL_EXPRESSION))
}

func (l *commaSeparatedNumbers) IsAtListEnd(p *Parser) bool {
	return p.At(token.R_BRACK)
}

func (l *commaSeparatedNumbers) Recover(p *Parser, parsedElement ParsedSyntax) RecoveryResult {
	r := NewRecovery(token.UNKNOWN_EXPRESSION, token.NewSet(token.R_BRACK, token.COMMA, token.EOF))
	result, _ := r.Run(p, garbageDiagnostic)
	return result
}

func (l *commaSeparatedNumbers) Separator() token.Kind { return token.COMMA }

func (l *commaSeparatedNumbers) AllowTrailingSeparator() bool { return false }

func TestParseSeparatedListParsesElementsBetweenSeparators(t *testing.T) {
	p := newTestParser("1, 2, 3]")
	l := &commaSeparatedNumbers{}
	ParseSeparatedList(p, l)

	if l.elements != 3 {
		t.Fatalf("expected 3 elements, got %d", l.elements)
	}
	if !p.At(token.R_BRACK) {
		t.Fatalf("expected driver to stop at ], got %v", p.NthKind(0))
	}
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("expected no diagnostics for well-formed input, got %d", len(p.Diagnostics()))
	}
}

func TestParseSeparatedListReportsMissingSeparator(t *testing.T) {
	p := newTestParser("1 2]")
	l := &commaSeparatedNumbers{}
	ParseSeparatedList(p, l)

	if l.elements != 2 {
		t.Fatalf("expected 2 elements despite missing separator, got %d", l.elements)
	}
	if len(p.Diagnostics()) != 1 {
		t.Fatalf("expected exactly one missing-separator diagnostic, got %d", len(p.Diagnostics()))
	}
}
