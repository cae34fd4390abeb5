// Package jscst is the module's top-level entry point: it wires
// together package lexer, parser, grammar, event, and sink into the
// three external operations spec.md §6 names (`parse_script`,
// `parse_module`, `parse`), configured through a small functional-options
// struct (spec.md §4.10).
//
// The teacher exposes its own top-level entry points the same way —
// `soy.NewBundle(...).Compile()` wires lexer, parser, and AST assembly
// behind a handful of constructor functions — which is the shape this
// file follows, generalized from one template bundle to one source file.
package jscst

import (
	"github.com/lossless-js/jscst/diagnostic"
	"github.com/lossless-js/jscst/event"
	"github.com/lossless-js/jscst/grammar"
	"github.com/lossless-js/jscst/lexer"
	"github.com/lossless-js/jscst/parser"
	"github.com/lossless-js/jscst/sink"
	"github.com/rs/zerolog"
)

// Parse is the result of parsing one source file: the finished root
// node, the diagnostics collected along the way, and a zero-copy cursor
// tree (spec.md §3, §6).
type Parse struct {
	root  *sink.Node
	diags []diagnostic.Diagnostic
}

// Root returns the parse tree's root node (a SCRIPT or MODULE node).
func (p *Parse) Root() *sink.Node {
	return p.root
}

// Diagnostics returns every diagnostic collected during parsing, in
// emission order (spec.md §8's diagnostic-ordering property).
func (p *Parse) Diagnostics() []diagnostic.Diagnostic {
	return p.diags
}

// Tree returns a zero-copy cursor tree rooted at p.Root(), for callers
// that want path-based navigation instead of walking *sink.Node directly.
func (p *Parse) Tree() sink.Tree {
	return sink.NewTree(p.root)
}

type config struct {
	fileID     diagnostic.FileID
	haveFileID bool
	logger     zerolog.Logger
	module     bool
	jsx        bool
	typescript bool
	dts        bool
}

// Option configures a Parse call. The zero value of every option is the
// conservative default: a freshly minted FileID, a no-op logger, and
// plain (non-module, non-JSX, non-TypeScript) source.
type Option func(*config)

// WithFileID attaches a caller-supplied file identifier to every
// diagnostic the parse produces, instead of minting a fresh one.
func WithFileID(id diagnostic.FileID) Option {
	return func(c *config) { c.fileID = id; c.haveFileID = true }
}

// WithLogger attaches a structured logger; see parser.WithLogger
// (spec.md §4.9).
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithJSX enables JSX syntax (read by feature gates in package parser).
func WithJSX() Option {
	return func(c *config) { c.jsx = true }
}

// WithTypeScript enables TypeScript syntax.
func WithTypeScript() Option {
	return func(c *config) { c.typescript = true }
}

// WithAmbientDTS marks the source as an ambient `.d.ts` declaration file,
// implying WithTypeScript.
func WithAmbientDTS() Option {
	return func(c *config) { c.typescript = true; c.dts = true }
}

// WithModule selects module parsing for Parse's combined entry point. It
// has no effect on ParseScript or ParseModule, which already fix that
// choice by which function the caller called (spec.md §6's three
// distinct entry points).
func WithModule() Option {
	return func(c *config) { c.module = true }
}

func resolve(opts []Option) config {
	c := config{fileID: diagnostic.NewFileID(), logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) sourceType() parser.SourceType {
	return parser.SourceType{Module: c.module, JSX: c.jsx, TypeScript: c.typescript, DTS: c.dts}
}

func (c config) parserOptions(source string) []parser.Option {
	opts := []parser.Option{parser.WithLogger(c.logger), parser.WithSource(source)}
	if c.haveFileID {
		opts = append(opts, parser.WithFileID(c.fileID))
	}
	return opts
}

func finish(p *parser.Parser, tokens []lexer.Token) *Parse {
	processed := event.Process(p.Events())
	s := sink.NewLosslessTreeSink(tokens)
	sink.Play(s, tokens, processed, p.Diagnostics())
	return &Parse{root: s.Root(), diags: s.Diagnostics()}
}

// ParseScript parses source as a top-level script (spec.md §6
// `parse_script`): sloppy by default, promoted to strict mode only by a
// leading `"use strict"` directive.
func ParseScript(source string, opts ...Option) *Parse {
	c := resolve(opts)
	c.module = false
	tokens := lexer.Tokenize(source)
	p := parser.New(tokens, c.sourceType(), c.parserOptions(source)...)
	grammar.ParseScript(p)
	return finish(p, tokens)
}

// ParseModule parses source as a top-level ECMAScript module (spec.md §6
// `parse_module`): always strict, regardless of any directive.
func ParseModule(source string, opts ...Option) *Parse {
	c := resolve(append(append([]Option(nil), opts...), WithModule()))
	tokens := lexer.Tokenize(source)
	p := parser.New(tokens, c.sourceType(), c.parserOptions(source)...)
	grammar.ParseModule(p)
	return finish(p, tokens)
}

// Parse parses source as either a script or a module, selected by
// WithModule (spec.md §6 `parse`, generalized across the
// {js,jsx,ts,tsx,d.ts} × {script,module} matrix via Option).
func Parse(source string, opts ...Option) *Parse {
	c := resolve(opts)
	tokens := lexer.Tokenize(source)
	p := parser.New(tokens, c.sourceType(), c.parserOptions(source)...)
	if c.module {
		grammar.ParseModule(p)
	} else {
		grammar.ParseScript(p)
	}
	return finish(p, tokens)
}
