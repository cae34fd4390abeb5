package grammar

import (
	"testing"

	"github.com/lossless-js/jscst/event"
	"github.com/lossless-js/jscst/lexer"
	"github.com/lossless-js/jscst/parser"
	"github.com/lossless-js/jscst/sink"
	"github.com/lossless-js/jscst/token"
)

func parseScriptAndBuildTree(src string) (*sink.LosslessTreeSink, *parser.Parser) {
	tokens := lexer.Tokenize(src)
	p := parser.New(tokens, parser.ScriptType(), parser.WithSource(src))
	ParseScript(p)
	processed := event.Process(p.Events())
	s := sink.NewLosslessTreeSink(tokens)
	sink.Play(s, tokens, processed, p.Diagnostics())
	return s, p
}

func parseModuleAndBuildTree(src string) (*sink.LosslessTreeSink, *parser.Parser) {
	tokens := lexer.Tokenize(src)
	p := parser.New(tokens, parser.ModuleType())
	ParseModule(p)
	processed := event.Process(p.Events())
	s := sink.NewLosslessTreeSink(tokens)
	sink.Play(s, tokens, processed, p.Diagnostics())
	return s, p
}

func kindsOf(n *sink.Node) []token.Kind {
	var out []token.Kind
	for _, c := range n.Children {
		if child, ok := c.(*sink.Node); ok {
			out = append(out, child.Kind)
		}
	}
	return out
}

func TestWellFormedConstDeclaration(t *testing.T) {
	s, p := parseScriptAndBuildTree("const a = 1;")
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("expected zero diagnostics, got %d: %+v", len(p.Diagnostics()), p.Diagnostics())
	}
	root := s.Root()
	if root.Kind != token.SCRIPT {
		t.Fatalf("expected root kind SCRIPT, got %v", root.Kind)
	}
	children := kindsOf(root)
	if len(children) != 1 || children[0] != token.VARIABLE_DECLARATION {
		t.Fatalf("expected a single VARIABLE_DECLARATION child, got %v", children)
	}
	if root.Text() != "const a = 1;" {
		t.Fatalf("expected lossless reconstruction, got %q", root.Text())
	}
}

func TestMissingSemicolonStillCompletesDeclaration(t *testing.T) {
	s, p := parseScriptAndBuildTree("const a = 1")
	if len(p.Diagnostics()) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(p.Diagnostics()))
	}
	if p.Diagnostics()[0].Message != "Expected SEMICOLON" {
		t.Fatalf("expected an Expected-semicolon diagnostic, got %q", p.Diagnostics()[0].Message)
	}
	children := kindsOf(s.Root())
	if len(children) != 1 || children[0] != token.VARIABLE_DECLARATION {
		t.Fatalf("expected the declaration to still complete, got %v", children)
	}
}

func TestArrayRecoveryAroundGarbageToken(t *testing.T) {
	s, p := parseScriptAndBuildTree("[1, , 3 @ 5];")
	if len(p.Diagnostics()) == 0 {
		t.Fatalf("expected at least one diagnostic referring to the garbage token")
	}

	stmt := kindsOf(s.Root())
	if len(stmt) != 1 || stmt[0] != token.EXPRESSION_STATEMENT {
		t.Fatalf("expected one expression statement, got %v", stmt)
	}
	exprStmt := s.Root().Children[0].(*sink.Node)
	array := exprStmt.Children[0].(*sink.Node)
	if array.Kind != token.ARRAY_EXPRESSION {
		t.Fatalf("expected ARRAY_EXPRESSION, got %v", array.Kind)
	}

	var elementKinds []token.Kind
	for _, c := range array.Children {
		if n, ok := c.(*sink.Node); ok {
			elementKinds = append(elementKinds, n.Kind)
		}
	}
	want := []token.Kind{
		token.NUMBER_LITERAL_EXPRESSION,
		token.ARRAY_HOLE,
		token.NUMBER_LITERAL_EXPRESSION,
		token.UNKNOWN_EXPRESSION,
		token.NUMBER_LITERAL_EXPRESSION,
	}
	if len(elementKinds) != len(want) {
		t.Fatalf("expected elements %v, got %v", want, elementKinds)
	}
	for i := range want {
		if elementKinds[i] != want[i] {
			t.Fatalf("expected elements %v, got %v", want, elementKinds)
		}
	}
}

func TestWithStatementDemotedUnderStrictModule(t *testing.T) {
	s, p := parseModuleAndBuildTree(`with (x) {}`)

	var strictDiag bool
	for _, d := range p.Diagnostics() {
		if containsStrict(d.Message) {
			strictDiag = true
		}
	}
	if !strictDiag {
		t.Fatalf("expected a diagnostic mentioning strict mode, got %+v", p.Diagnostics())
	}

	children := kindsOf(s.Root())
	if len(children) != 1 || children[0] != token.UNKNOWN_STATEMENT {
		t.Fatalf("expected the with-statement demoted to UNKNOWN_STATEMENT, got %v", children)
	}

	unknown := s.Root().Children[0].(*sink.Node)
	var sawWithToken bool
	for _, tok := range unknown.Tokens() {
		if tok.Kind == token.WITH_KW {
			sawWithToken = true
		}
	}
	if !sawWithToken {
		t.Fatalf("expected the original with-keyword token to survive demotion")
	}
}

func containsStrict(s string) bool {
	for i := 0; i+6 <= len(s); i++ {
		if s[i:i+6] == "strict" {
			return true
		}
	}
	return false
}

func TestUseStrictDirectivePromotesWithStatementToUnknown(t *testing.T) {
	s, p := parseScriptAndBuildTree(`"use strict"; with (x) {}`)

	var strictDiag bool
	for _, d := range p.Diagnostics() {
		if containsStrict(d.Message) {
			strictDiag = true
		}
	}
	if !strictDiag {
		t.Fatalf("expected a diagnostic mentioning strict mode, got %+v", p.Diagnostics())
	}

	children := kindsOf(s.Root())
	if len(children) != 2 || children[0] != token.USE_STRICT_DIRECTIVE || children[1] != token.UNKNOWN_STATEMENT {
		t.Fatalf("expected a directive followed by the demoted with-statement, got %v", children)
	}
	if s.Root().Text() != `"use strict"; with (x) {}` {
		t.Fatalf("expected lossless reconstruction, got %q", s.Root().Text())
	}
}

func TestWithStatementAllowedInSloppyScript(t *testing.T) {
	s, p := parseScriptAndBuildTree("with (x) {}")
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("expected no diagnostics in sloppy mode, got %+v", p.Diagnostics())
	}
	children := kindsOf(s.Root())
	if len(children) != 1 || children[0] != token.WITH_STATEMENT {
		t.Fatalf("expected an ordinary WITH_STATEMENT, got %v", children)
	}
}

// TestRegexLiteralAtExpressionStartIsReLexed exercises spec.md §4.11: a
// `/` beginning an expression statement can only be a regex literal, so
// parseExpression must re-lex it before consuming it, rather than
// treating it as the division operator (which would leave the rest of
// the line as garbage).
func TestRegexLiteralAtExpressionStartIsReLexed(t *testing.T) {
	s, p := parseScriptAndBuildTree("/abc/g;")
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("expected zero diagnostics, got %+v", p.Diagnostics())
	}
	children := kindsOf(s.Root())
	if len(children) != 1 || children[0] != token.EXPRESSION_STATEMENT {
		t.Fatalf("expected one EXPRESSION_STATEMENT, got %v", children)
	}
	stmt := s.Root().Children[0].(*sink.Node)
	expr := kindsOf(stmt)
	if len(expr) != 1 || expr[0] != token.REGEX_LITERAL_EXPRESSION {
		t.Fatalf("expected REGEX_LITERAL_EXPRESSION, got %v", expr)
	}
	if s.Root().Text() != "/abc/g;" {
		t.Fatalf("expected lossless reconstruction, got %q", s.Root().Text())
	}
}

// TestRegexLiteralWithoutSourceFallsBackToDivision confirms the
// documented no-op behavior when the parser was built without
// parser.WithSource: ReLexRegex can't consult the original source text,
// so the `/` token keeps its first-pass SLASH reading instead of being
// silently reinterpreted as a regex body.
func TestRegexLiteralWithoutSourceFallsBackToDivision(t *testing.T) {
	tokens := lexer.Tokenize("/abc/g;")
	p := parser.New(tokens, parser.ScriptType())
	ParseScript(p)
	processed := event.Process(p.Events())
	s := sink.NewLosslessTreeSink(tokens)
	sink.Play(s, tokens, processed, p.Diagnostics())

	stmt := s.Root().Children[0].(*sink.Node)
	exprNode := stmt.Children[0].(*sink.Node)
	if exprNode.Kind != token.REGEX_LITERAL_EXPRESSION {
		t.Fatalf("expected parseExpression to still dispatch on SLASH, got %v", exprNode.Kind)
	}
	toks := exprNode.Tokens()
	if len(toks) != 1 || toks[0].Kind != token.SLASH {
		t.Fatalf("expected the lone SLASH token unchanged without WithSource, got %+v", toks)
	}
}

func TestBlockStatementWithNestedStatements(t *testing.T) {
	s, _ := parseScriptAndBuildTree("{ const a = 1; }")
	children := kindsOf(s.Root())
	if len(children) != 1 || children[0] != token.BLOCK_STATEMENT {
		t.Fatalf("expected one BLOCK_STATEMENT, got %v", children)
	}
	block := s.Root().Children[0].(*sink.Node)
	inner := kindsOf(block)
	if len(inner) != 1 || inner[0] != token.VARIABLE_DECLARATION {
		t.Fatalf("expected the block to contain one VARIABLE_DECLARATION, got %v", inner)
	}
}
