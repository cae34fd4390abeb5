package parser

import (
	"github.com/lossless-js/jscst/diagnostic"
	"github.com/lossless-js/jscst/token"
)

// RecoveryResult is the outcome of an atomic recovery attempt.
type RecoveryResult int

const (
	// Recovered means at least one token was consumed and wrapped.
	Recovered RecoveryResult = iota
	// Unrecoverable means recovery made no progress — the cursor was
	// already at end-of-file or at a token in the synchronisation set —
	// and the caller (a list driver) must stop rather than loop forever
	// (spec.md §4.4 termination guarantee).
	Unrecoverable
)

// Recovery is the atomic recovery step (spec.md §4.4): given a recovery
// kind and a synchronisation token set, it consumes tokens into an
// UNKNOWN_* node until the cursor reaches a token in the set, end of
// file, or — if EnableRecoveryOnLineBreak was called — the first token
// after an intervening source-level line break.
type Recovery struct {
	Kind            token.Kind
	Until           token.Set
	stopAtLineBreak bool
}

// NewRecovery builds a Recovery wrapping skipped tokens in a node of kind,
// stopping at the first token in until.
func NewRecovery(kind token.Kind, until token.Set) Recovery {
	return Recovery{Kind: kind, Until: until}
}

// EnableRecoveryOnLineBreak also stops recovery at the first token
// preceded by a line break, even if that token isn't in the
// synchronisation set. Useful for statement-level recovery in a
// grammar with automatic semicolon insertion.
func (r Recovery) EnableRecoveryOnLineBreak() Recovery {
	r.stopAtLineBreak = true
	return r
}

// Run performs the atomic recovery step described by r: it consumes
// tokens until the synchronisation set, end-of-file, or (with
// EnableRecoveryOnLineBreak) a line break, wraps whatever it consumed in
// r.Kind, and reports build's diagnostic. Grammar packages call this from
// a ListParser's Recover method; logging goes through the parser's
// attached logger (spec.md §4.9).
func (r Recovery) Run(p *Parser, build func(p *Parser, recovered CompletedMarker) diagnostic.Diagnostic) (RecoveryResult, CompletedMarker) {
	m := p.Start()
	consumed := 0
	for {
		if p.AtEOF() || p.AtTS(r.Until) {
			break
		}
		if r.stopAtLineBreak && consumed > 0 && p.AtLineBreak() {
			break
		}
		p.Bump()
		consumed++
	}

	if consumed == 0 {
		m.Abandon()
		p.debugLog().Debug().Str("recovery_kind", r.Kind.String()).Msg("parser: recovery unrecoverable")
		return Unrecoverable, CompletedMarker{}
	}

	cm := m.Complete(r.Kind)
	p.Error(build(p, cm))
	p.debugLog().Debug().
		Str("recovery_kind", r.Kind.String()).
		Int("tokens_skipped", consumed).
		Msg("parser: recovered")
	return Recovered, cm
}

// OrRecover runs Recovery r if ps is Absent, returning the recovered node
// as Present (or Absent again if recovery itself made no progress).
// Present results pass through untouched.
func (ps ParsedSyntax) OrRecover(p *Parser, r Recovery, build func(p *Parser, recovered CompletedMarker) diagnostic.Diagnostic) ParsedSyntax {
	if ps.IsPresent() {
		return ps
	}
	result, cm := r.Run(p, build)
	if result == Unrecoverable {
		return Absent()
	}
	return Present(cm)
}

// ListParser is implemented by a concrete list grammar rule and driven by
// ParseNodeList / ParseSeparatedList (spec.md §4.4).
type ListParser interface {
	// ParseElement parses one list element.
	ParseElement(p *Parser) ParsedSyntax
	// IsAtListEnd reports whether the cursor has reached the list's
	// terminator (without consuming it).
	IsAtListEnd(p *Parser) bool
	// Recover is invoked when ParseElement returns Absent; it must
	// consume at least one token or report Unrecoverable.
	Recover(p *Parser, parsedElement ParsedSyntax) RecoveryResult
}

// ParseNodeList repeatedly parses elements (no separator) until
// IsAtListEnd or end-of-file. When an element comes back Absent, the
// list's Recover is invoked; Unrecoverable ends the list immediately —
// the only mechanism preventing an infinite loop when a production
// returns Absent without consuming tokens (spec.md §4.4).
func ParseNodeList(p *Parser, l ListParser) {
	for {
		if p.AtEOF() || l.IsAtListEnd(p) {
			return
		}
		before := p.source.Pos()
		parsed := l.ParseElement(p)
		if parsed.IsAbsent() {
			if l.Recover(p, parsed) == Unrecoverable {
				return
			}
			if p.source.Pos() == before {
				// Defensive fail-safe: Recover is contractually required to
				// consume at least one token whenever it reports anything
				// other than Unrecoverable. A Present element consuming
				// nothing (an array hole, say) is not checked here — that
				// is a legitimate zero-width node, not a stuck parser.
				return
			}
		}
	}
}

// SeparatedListParser is a ListParser plus the separator configuration
// ParseSeparatedList needs.
type SeparatedListParser interface {
	ListParser
	// Separator is the token expected (or synthesised via a diagnostic)
	// between elements.
	Separator() token.Kind
	// AllowTrailingSeparator reports whether a separator immediately
	// before the list terminator is legal.
	AllowTrailingSeparator() bool
}

// ParseSeparatedList is ParseNodeList plus separator handling: between
// elements it expects the configured separator (emitting a diagnostic via
// Parser.Expect if absent) and, depending on configuration, tolerates or
// forbids a trailing separator (spec.md §4.4).
func ParseSeparatedList(p *Parser, l SeparatedListParser) {
	first := true
	for {
		if p.AtEOF() || l.IsAtListEnd(p) {
			return
		}
		if !first {
			sepStart, sepEnd := p.CurrentRange()
			p.Expect(l.Separator())
			if l.IsAtListEnd(p) {
				if !l.AllowTrailingSeparator() {
					// The separator just consumed was trailing.
					p.Error(diagnostic.New(p.FileID, "Trailing separator is not allowed", diagnostic.Span{Start: sepStart, End: sepEnd}))
				}
				return
			}
		}
		first = false

		before := p.source.Pos()
		parsed := l.ParseElement(p)
		if parsed.IsAbsent() {
			if l.Recover(p, parsed) == Unrecoverable {
				return
			}
			if p.source.Pos() == before {
				return
			}
		}
	}
}
