package parser

import "github.com/lossless-js/jscst/diagnostic"

// ParsedSyntax is the two-way outcome of any production (spec.md §3):
// Absent (no tokens consumed, no diagnostics emitted) or Present, wrapping
// the node's CompletedMarker. There is no third "error" variant — a
// malformed-but-present production is still Present; the malformedness
// shows up as a missing child or an UNKNOWN_* kind within it.
type ParsedSyntax struct {
	marker  CompletedMarker
	present bool
}

// Absent is the zero ParsedSyntax: returned by a rule that did not
// recognize the construct at all and consumed nothing.
func Absent() ParsedSyntax {
	return ParsedSyntax{}
}

// Present wraps a completed marker as the result of a production that did
// parse something (however malformed).
func Present(m CompletedMarker) ParsedSyntax {
	return ParsedSyntax{marker: m, present: true}
}

// IsAbsent reports whether the production matched nothing.
func (ps ParsedSyntax) IsAbsent() bool { return !ps.present }

// IsPresent reports whether the production produced a node.
func (ps ParsedSyntax) IsPresent() bool { return ps.present }

// Marker returns the completed marker and true if this is Present;
// otherwise the zero CompletedMarker and false.
func (ps ParsedSyntax) Marker() (CompletedMarker, bool) {
	return ps.marker, ps.present
}

// Ok discards the result, used when a caller only wants the side effect
// of attempting a parse (spec.md §4 if-statement example: `parse_else_clause(p).ok()`).
func (ps ParsedSyntax) Ok() {}

// OrAddDiagnostic emits a diagnostic built by build if this is Absent —
// modeling a required child that's missing from the source: the caller
// still leaves a missing slot positionally, but now with an explanation
// attached (spec.md §7, error taxonomy #2).
func (ps ParsedSyntax) OrAddDiagnostic(p *Parser, build func(p *Parser) diagnostic.Diagnostic) ParsedSyntax {
	if ps.IsAbsent() {
		p.Error(build(p))
	}
	return ps
}

// Map transforms the wrapped marker if present, leaving Absent untouched.
func (ps ParsedSyntax) Map(f func(CompletedMarker) CompletedMarker) ParsedSyntax {
	if ps.IsAbsent() {
		return ps
	}
	return Present(f(ps.marker))
}
