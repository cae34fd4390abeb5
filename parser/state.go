package parser

// StrictMode is a stack of strictness frames, not a single flag:
// productions that enter a new strict region (a "use strict" directive, a
// class body, a module) push a frame; leaving the region pops it. A nil
// frame means sloppy mode; a non-nil frame carries the reason the region
// is strict, which feature-gate diagnostics quote back to the user.
//
// This is threaded explicitly through Parser, never global (spec.md §9:
// "Strict-mode stack is state, not global").
type StrictMode struct {
	frames []*string
}

// PushSloppy enters a sloppy-mode region.
func (s *StrictMode) PushSloppy() {
	s.frames = append(s.frames, nil)
}

// PushStrict enters a strict-mode region for the given reason (e.g.
// `"use strict" directive` or `module`).
func (s *StrictMode) PushStrict(reason string) {
	r := reason
	s.frames = append(s.frames, &r)
}

// Pop leaves the current region.
func (s *StrictMode) Pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Current returns the reason the parser is in strict mode, or nil if the
// current region is sloppy (or no region has been pushed at all).
func (s *StrictMode) Current() *string {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// SourceType selects which dialect of the grammar is active: script vs.
// module, plain vs. JSX, and JS vs. TypeScript (including ambient .d.ts).
// Feature gates (parser/feature.go) read these flags to decide whether a
// piece of syntax is supported (spec.md §4.1, §4.5).
type SourceType struct {
	Module     bool
	JSX        bool
	TypeScript bool
	DTS        bool
}

// ScriptType is the plain, non-module, non-JSX, non-TypeScript source
// type: `parse_script` (spec.md §6).
func ScriptType() SourceType { return SourceType{} }

// ModuleType is the plain ECMAScript module source type:
// `parse_module` (spec.md §6). Modules are implicitly strict.
func ModuleType() SourceType { return SourceType{Module: true} }
