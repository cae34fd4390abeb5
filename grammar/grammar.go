// Package grammar implements a representative slice of the JavaScript
// grammar on top of package parser's framework: enough productions to
// exercise every mechanism spec.md §4 names end to end (event markers and
// precede, list recovery, feature gates) without attempting the full
// JS/TS/JSX grammar, which spec.md explicitly scopes out.
//
// Grounded in the teacher's parse/parse.go productions (parseTemplate,
// parseStatement and friends), generalized from Soy template syntax to
// this grammar's var/const/let declarations, expression statements,
// array literals, `with` statements, and block statements.
package grammar

import (
	"github.com/lossless-js/jscst/diagnostic"
	"github.com/lossless-js/jscst/parser"
	"github.com/lossless-js/jscst/token"
)

// statementSyncSet is the synchronisation set statement-level recovery
// stops at: anything that plausibly starts the next statement or closes
// the enclosing block.
var statementSyncSet = token.NewSet(
	token.R_BRACE,
	token.CONST_KW,
	token.LET_KW,
	token.VAR_KW,
	token.WITH_KW,
	token.L_BRACE,
	token.IDENT,
	token.NUMBER,
	token.STRING,
	token.L_BRACK,
	token.EOF,
)

// ParseScript parses a top-level SCRIPT node: a sloppy-mode statement list
// running to end-of-file (spec.md §6 `parse_script`), preceded by any
// `"use strict"` directive that promotes the rest of the script to
// strict mode (spec.md §8 scenario 4: `"use strict"; with (x) {}`).
func ParseScript(p *parser.Parser) parser.ParsedSyntax {
	m := p.Start()
	parseDirectivePrologue(p)
	parser.ParseNodeList(p, &statementList{})
	return parser.Present(m.Complete(token.SCRIPT))
}

// parseDirectivePrologue consumes a leading `"use strict"` (or
// `'use strict'`) statement, if present, pushing a strict-mode frame
// that stays active for the remainder of the script. Any other
// statement — including an ordinary string-literal expression
// statement — is left for the regular statement list to parse, since
// only this one directive has an observable grammatical effect here
// (spec.md's representative slice has no other directive).
func parseDirectivePrologue(p *parser.Parser) {
	if !p.At(token.STRING) {
		return
	}
	text := p.CurrentText()
	if text != `"use strict"` && text != `'use strict'` {
		return
	}
	m := p.Start()
	p.Bump()
	p.Expect(token.SEMICOLON)
	m.Complete(token.USE_STRICT_DIRECTIVE)
	p.Strict.PushStrict(`"use strict" directive`)
}

// ParseModule parses a top-level MODULE node. The parser must already have
// been constructed with parser.ModuleType() so strict mode is active from
// the first token (spec.md §6 `parse_module`).
func ParseModule(p *parser.Parser) parser.ParsedSyntax {
	m := p.Start()
	parser.ParseNodeList(p, &statementList{})
	return parser.Present(m.Complete(token.MODULE))
}

// statementList drives the top-level and block-level statement sequence.
type statementList struct{}

func (statementList) ParseElement(p *parser.Parser) parser.ParsedSyntax {
	return parseStatement(p)
}

func (statementList) IsAtListEnd(p *parser.Parser) bool {
	return p.At(token.R_BRACE)
}

func (statementList) Recover(p *parser.Parser, parsedElement parser.ParsedSyntax) parser.RecoveryResult {
	r := parser.NewRecovery(token.UNKNOWN_STATEMENT, statementSyncSet).EnableRecoveryOnLineBreak()
	result, _ := r.Run(p, unexpectedTokenInStatementPosition)
	return result
}

func unexpectedTokenInStatementPosition(p *parser.Parser, recovered parser.CompletedMarker) diagnostic.Diagnostic {
	r := recovered.Range()
	return diagnostic.New(p.FileID, "Unexpected token in statement position", diagnostic.Span{Start: r.Start, End: r.End})
}

// parseStatement dispatches on the current token to one of the statement
// productions. Returns Absent if the current token starts nothing this
// grammar slice recognizes, letting the caller's list recovery take over.
func parseStatement(p *parser.Parser) parser.ParsedSyntax {
	switch {
	case p.At(token.CONST_KW), p.At(token.LET_KW), p.At(token.VAR_KW):
		return parseVariableDeclaration(p)
	case p.At(token.WITH_KW):
		return parseWithStatement(p)
	case p.At(token.L_BRACE):
		return parseBlockStatement(p)
	default:
		return parseExpressionStatement(p)
	}
}

// parseVariableDeclaration parses `(const|let|var) name = expr ;`
// (spec.md §8 scenarios 1 and 2: well-formed declaration, and one with a
// missing semicolon).
func parseVariableDeclaration(p *parser.Parser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump() // const | let | var

	declM := p.Start()
	nameM := p.Start()
	p.Expect(token.IDENT)
	nameM.Complete(token.NAME)

	if p.Eat(token.EQ) {
		parseExpression(p).OrAddDiagnostic(p, missingInitializerExpression)
	}
	declM.Complete(token.VARIABLE_DECLARATOR)

	p.Expect(token.SEMICOLON)
	return parser.Present(m.Complete(token.VARIABLE_DECLARATION))
}

func missingInitializerExpression(p *parser.Parser) diagnostic.Diagnostic {
	start, end := p.CurrentRange()
	return diagnostic.New(p.FileID, "Expected an expression", diagnostic.Span{Start: start, End: end})
}

// parseWithStatement parses `with ( expr ) statement`, gated by
// SloppyModeFeature: in strict mode (including every module, since
// modules start strict) the node is demoted to UNKNOWN_STATEMENT with a
// diagnostic, but its child structure is preserved (spec.md §4.5, §8
// feature-guard round-trip property, scenario 4).
func parseWithStatement(p *parser.Parser) parser.ParsedSyntax {
	return parser.ExclusiveSyntax(p, parser.SloppyModeFeature, token.UNKNOWN_STATEMENT, parseWithStatementInner, withNotAllowedInStrictMode)
}

func parseWithStatementInner(p *parser.Parser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump() // with
	p.Expect(token.L_PAREN)
	parseExpression(p).OrAddDiagnostic(p, missingInitializerExpression)
	p.Expect(token.R_PAREN)
	parseStatement(p).OrAddDiagnostic(p, missingWithBody)
	return parser.Present(m.Complete(token.WITH_STATEMENT))
}

func missingWithBody(p *parser.Parser) diagnostic.Diagnostic {
	start, end := p.CurrentRange()
	return diagnostic.New(p.FileID, "Expected a statement", diagnostic.Span{Start: start, End: end})
}

func withNotAllowedInStrictMode(p *parser.Parser, parsed parser.CompletedMarker) diagnostic.Diagnostic {
	reason := p.Strict.Current()
	r := parsed.Range()
	d := diagnostic.New(p.FileID, "'with' statements are not allowed in strict mode", diagnostic.Span{Start: r.Start, End: r.End})
	if reason != nil {
		d = d.WithHint("strict mode entered because: " + *reason)
	}
	return d
}

// parseBlockStatement parses `{ statement* }`.
func parseBlockStatement(p *parser.Parser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump() // {
	parser.ParseNodeList(p, &statementList{})
	p.Expect(token.R_BRACE)
	return parser.Present(m.Complete(token.BLOCK_STATEMENT))
}

// parseExpressionStatement parses `expr ;`, consuming nothing (and
// returning Absent) if the current token cannot start an expression at
// all — letting the statement list's recovery wrap it instead.
func parseExpressionStatement(p *parser.Parser) parser.ParsedSyntax {
	m := p.Start()
	expr := parseExpression(p)
	if expr.IsAbsent() {
		m.Abandon()
		return parser.Absent()
	}
	p.Expect(token.SEMICOLON)
	return parser.Present(m.Complete(token.EXPRESSION_STATEMENT))
}

// parseExpression parses one primary expression: an identifier, a number,
// string, or regex literal, or an array literal. There is no operator
// grammar in this representative slice (spec.md §1 explicitly scopes out
// the full expression grammar); Marker.Precede exists in package parser
// precisely to support one later without reworking this dispatch.
func parseExpression(p *parser.Parser) parser.ParsedSyntax {
	switch {
	case p.At(token.IDENT):
		m := p.Start()
		p.Bump()
		return parser.Present(m.Complete(token.IDENT_EXPRESSION))
	case p.At(token.NUMBER):
		m := p.Start()
		p.Bump()
		return parser.Present(m.Complete(token.NUMBER_LITERAL_EXPRESSION))
	case p.At(token.STRING):
		m := p.Start()
		p.Bump()
		return parser.Present(m.Complete(token.STRING_LITERAL_EXPRESSION))
	case p.At(token.SLASH), p.At(token.SLASH_EQ):
		// A `/` (or `/=`) at the start of an expression can only be a
		// regex literal, never division — re-lex it under that context
		// before consuming it (spec.md §4.11).
		m := p.Start()
		p.ReLexRegex()
		p.Bump()
		return parser.Present(m.Complete(token.REGEX_LITERAL_EXPRESSION))
	case p.At(token.L_BRACK):
		return parseArrayExpression(p)
	default:
		return parser.Absent()
	}
}

// arraySyncSet is the synchronisation set array-element recovery stops
// at: the closing bracket, a comma (so the next element still gets a
// chance), end-of-file, or any token that can itself start a new element.
// Including the element-starter kinds keeps a run of garbage tokens from
// swallowing the next good element (spec.md §8 scenario 3: `[1, , 3 @ 5]`
// must wrap only `@`, leaving `5` as its own element).
var arraySyncSet = token.NewSet(
	token.R_BRACK,
	token.COMMA,
	token.EOF,
	token.IDENT,
	token.NUMBER,
	token.STRING,
	token.L_BRACK,
)

// parseArrayExpression parses `[ element (, element)* ]` where an element
// may be empty (an elision/hole, spec.md §8 scenario 3: `[1, , 3 @ 5]`
// recovers `@` into an UNKNOWN_EXPRESSION while keeping `1`, a hole, `3`,
// and `5` as siblings).
func parseArrayExpression(p *parser.Parser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump() // [
	parser.ParseSeparatedList(p, &arrayElementList{})
	p.Expect(token.R_BRACK)
	return parser.Present(m.Complete(token.ARRAY_EXPRESSION))
}

type arrayElementList struct{}

func (arrayElementList) ParseElement(p *parser.Parser) parser.ParsedSyntax {
	if p.At(token.COMMA) || p.At(token.R_BRACK) {
		// An elision: a hole between two commas (or before the closing
		// bracket) with no expression at all. This is a legitimate,
		// well-formed empty slot, not a recovery case, so it completes
		// immediately rather than going through Recover.
		m := p.Start()
		return parser.Present(m.Complete(token.ARRAY_HOLE))
	}
	return parseExpression(p)
}

func (arrayElementList) IsAtListEnd(p *parser.Parser) bool {
	return p.At(token.R_BRACK)
}

func (arrayElementList) Recover(p *parser.Parser, parsedElement parser.ParsedSyntax) parser.RecoveryResult {
	r := parser.NewRecovery(token.UNKNOWN_EXPRESSION, arraySyncSet)
	result, _ := r.Run(p, unexpectedTokenInArray)
	return result
}

func unexpectedTokenInArray(p *parser.Parser, recovered parser.CompletedMarker) diagnostic.Diagnostic {
	r := recovered.Range()
	return diagnostic.New(p.FileID, "Unexpected token in array literal", diagnostic.Span{Start: r.Start, End: r.End})
}

func (arrayElementList) Separator() token.Kind { return token.COMMA }

func (arrayElementList) AllowTrailingSeparator() bool { return true }
