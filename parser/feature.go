package parser

import (
	"github.com/lossless-js/jscst/diagnostic"
	"github.com/lossless-js/jscst/token"
)

// SyntaxFeature gates a grammar production on some ambient parser state
// (strict mode, source type, dialect) without the production itself
// needing to know the detail (spec.md §4.5).
type SyntaxFeature interface {
	// IsSupported reports whether p currently supports this feature.
	IsSupported(p *Parser) bool
}

// IsUnsupported is the negation of IsSupported, provided for readability
// at call sites (`IsUnsupported(SloppyModeFeature, p)`).
func IsUnsupported(f SyntaxFeature, p *Parser) bool {
	return !f.IsSupported(p)
}

// sloppyModeFeature is supported whenever the parser is NOT in strict
// mode — i.e. constructs legal only in sloppy code, like `with`.
type sloppyModeFeature struct{}

// SloppyModeFeature gates productions legal only outside strict mode
// (`with` statements, octal literals, duplicate parameter names).
var SloppyModeFeature SyntaxFeature = sloppyModeFeature{}

func (sloppyModeFeature) IsSupported(p *Parser) bool {
	return p.Strict.Current() == nil
}

// strictModeFeature is supported whenever the parser IS in strict mode.
type strictModeFeature struct{}

// StrictModeFeature gates productions legal only in strict mode.
var StrictModeFeature SyntaxFeature = strictModeFeature{}

func (strictModeFeature) IsSupported(p *Parser) bool {
	return p.Strict.Current() != nil
}

// typeScriptFeature is supported when the source is being parsed as
// TypeScript (including .d.ts).
type typeScriptFeature struct{}

// TypeScriptFeature gates TS-only syntax (type annotations, `as`
// expressions, ambient declarations).
var TypeScriptFeature SyntaxFeature = typeScriptFeature{}

func (typeScriptFeature) IsSupported(p *Parser) bool {
	return p.SourceType.TypeScript
}

// jsxFeature is supported when the source is being parsed with JSX
// enabled.
type jsxFeature struct{}

// JSXFeature gates `<Tag>` expression syntax.
var JSXFeature SyntaxFeature = jsxFeature{}

func (jsxFeature) IsSupported(p *Parser) bool {
	return p.SourceType.JSX
}

// ExclusiveSyntax always parses body; if f is unsupported it demotes
// whatever body produced to an UNKNOWN_* node carrying a diagnostic built
// by build, without losing the tokens body already consumed (spec.md
// §4.5). Use when the production is always attempted and merely
// reinterpreted under the gate, e.g. `with` statements (always
// recognizable syntactically, but illegal under strict mode).
func ExclusiveSyntax(p *Parser, f SyntaxFeature, unknownKind token.Kind, body func(p *Parser) ParsedSyntax, build func(p *Parser, parsed CompletedMarker) diagnostic.Diagnostic) ParsedSyntax {
	parsed := body(p)
	if f.IsSupported(p) {
		return parsed
	}
	return demote(p, parsed, unknownKind, build)
}

// ExcludingSyntax is ExclusiveSyntax's complement: body always runs, and
// its result is kept as is only when f is NOT supported. Supported, any
// result body produced is demoted instead. Use for syntax that's only legal in a dialect that
// is the "normal" case absent the feature, e.g. parsing `<` as a
// less-than operator when JSX is off.
func ExcludingSyntax(p *Parser, f SyntaxFeature, unknownKind token.Kind, body func(p *Parser) ParsedSyntax, build func(p *Parser, parsed CompletedMarker) diagnostic.Diagnostic) ParsedSyntax {
	parsed := body(p)
	if !f.IsSupported(p) {
		return parsed
	}
	return demote(p, parsed, unknownKind, build)
}

// ParseExclusiveSyntax speculatively parses body; if f is unsupported the
// diagnostics body emitted are discarded (truncated back to the
// pre-parse length) and replaced with a single diagnostic from build, so
// an unsupported construct is reported once at the outer level rather
// than once per inner production failure (spec.md §4.5). Use for syntax
// that is entirely foreign under the gate, e.g. parsing a whole JSX
// element when JSX is disabled.
func ParseExclusiveSyntax(p *Parser, f SyntaxFeature, unknownKind token.Kind, body func(p *Parser) ParsedSyntax, build func(p *Parser, parsed CompletedMarker) diagnostic.Diagnostic) ParsedSyntax {
	diagsBefore := len(p.diags)
	parsed := body(p)
	if f.IsSupported(p) {
		return parsed
	}
	p.diags = p.diags[:diagsBefore]
	return demote(p, parsed, unknownKind, build)
}

func demote(p *Parser, parsed ParsedSyntax, unknownKind token.Kind, build func(p *Parser, parsed CompletedMarker) diagnostic.Diagnostic) ParsedSyntax {
	cm, ok := parsed.Marker()
	if !ok {
		return parsed
	}
	p.log.Debug().
		Str("from_kind", cm.Kind().String()).
		Str("to_kind", unknownKind.String()).
		Msg("parser: feature gate demoted node")
	cm.ChangeToUnknown(unknownKind)
	p.Error(build(p, cm))
	return Present(cm)
}
