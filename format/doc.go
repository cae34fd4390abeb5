// Package format builds a Prettier-style intermediate document (a "Doc")
// from a finished tree plus its classified comments, and supplies the
// trivia-formatting combinators spec.md §4.7 names. Printing a Doc to text
// (line-width-aware group breaking) is outside this package's scope
// (spec.md §1 Non-goals: no pretty-printing backend, only the combinators
// that produce the document a printer would consume).
//
// The teacher has no formatter at all — it renders Soy templates straight
// back out via its own AST, with no trivia-preserving intermediate stage —
// so this package is grounded directly in the reference implementation's
// formatter primitives (original_source/crates/rome_formatter/src/token.rs),
// expressed as a small Go Doc IR instead of Rust's trait-object builders.
package format

// Doc is one node of the intermediate formatting document. The concrete
// types below are the IR's only variants; external code builds them
// through the constructor functions and never implements Doc itself.
type Doc interface {
	isDoc()
}

type textDoc struct{ text string }

func (textDoc) isDoc() {}

// Text emits s verbatim.
func Text(s string) Doc { return textDoc{text: s} }

type concatDoc struct{ docs []Doc }

func (concatDoc) isDoc() {}

// Concat sequences docs with no separator.
func Concat(docs ...Doc) Doc { return concatDoc{docs: docs} }

type spaceDoc struct{}

func (spaceDoc) isDoc() {}

// Space emits a single literal space.
func Space() Doc { return spaceDoc{} }

type softLineDoc struct{}

func (softLineDoc) isDoc() {}

// SoftLineBreakOrSpace breaks to a new line if its enclosing group
// breaks, otherwise renders as a single space.
func SoftLineBreakOrSpace() Doc { return softLineDoc{} }

type hardLineDoc struct{}

func (hardLineDoc) isDoc() {}

// HardLineBreak always breaks to a new line, regardless of group state,
// and forces any enclosing group to break too.
func HardLineBreak() Doc { return hardLineDoc{} }

type emptyLineDoc struct{}

func (emptyLineDoc) isDoc() {}

// EmptyLine is a hard line break followed by one fully blank line —
// preserving a source gap of two or more newlines as exactly one.
func EmptyLine() Doc { return emptyLineDoc{} }

type lineSuffixDoc struct{ content Doc }

func (lineSuffixDoc) isDoc() {}

// LineSuffix defers content until the current line is otherwise
// finished printing, then emits it before the next line break. Used for
// trailing line comments, which must not themselves force a break at
// the point they appear.
func LineSuffix(content Doc) Doc { return lineSuffixDoc{content: content} }

type expandParentDoc struct{}

func (expandParentDoc) isDoc() {}

// ExpandParent forces every enclosing group to break, even though it
// has no width of its own. A deferred line-suffix comment still needs
// to force its enclosing group open even though the suffix itself
// isn't measured as part of the group's content.
func ExpandParent() Doc { return expandParentDoc{} }

type groupDoc struct {
	content Doc
	id      string
}

func (groupDoc) isDoc() {}

// Group marks content as a unit that either fits on one line (all its
// soft line breaks render as spaces) or breaks as a whole (all its soft
// line breaks render as newlines).
func Group(content Doc) Doc { return groupDoc{content: content} }

// GroupWithID is Group plus an identifier other docs can reference via
// IfGroupBreaks / IfGroupFitsOnLine.
func GroupWithID(id string, content Doc) Doc { return groupDoc{content: content, id: id} }

type indentDoc struct{ content Doc }

func (indentDoc) isDoc() {}

// Indent increases the indentation level of content by one step.
func Indent(content Doc) Doc { return indentDoc{content: content} }

type ifGroupBreaksDoc struct {
	groupID string
	content Doc
}

func (ifGroupBreaksDoc) isDoc() {}

// IfGroupBreaks renders content only when the group identified by
// groupID breaks.
func IfGroupBreaks(groupID string, content Doc) Doc {
	return ifGroupBreaksDoc{groupID: groupID, content: content}
}

type ifGroupFitsDoc struct {
	groupID string
	content Doc
}

func (ifGroupFitsDoc) isDoc() {}

// IfGroupFitsOnLine renders content only when the group identified by
// groupID does not break.
func IfGroupFitsOnLine(groupID string, content Doc) Doc {
	return ifGroupFitsDoc{groupID: groupID, content: content}
}
