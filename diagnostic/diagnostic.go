// Package diagnostic implements the parser's diagnostic value (spec.md
// §3, §4.8): a fluent builder over a mandatory message and span, an
// ordered list of details, and an optional hint, rendered in that fixed
// order. Severity is always error — parse diagnostics never warn.
//
// This is a direct descendant of the teacher's errortypes.ErrFilePos: that
// package wrapped a plain error with file/line/column; this package widens
// the same idea to half-open byte spans and a file identifier, and adds
// the detail list and hint the parser's error-recovery story needs.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FileID names the source file a diagnostic belongs to. It is a UUID
// rather than a path so that diagnostics remain stable identifiers across
// renames — mirroring how the wider retrieval pack (playbymail/ottomap,
// mdhender/tnrpt) mints uuid.UUID values for any resource that needs a
// durable, comparable identity.
type FileID uuid.UUID

// NewFileID mints a fresh, random file identifier.
func NewFileID() FileID {
	return FileID(uuid.New())
}

func (f FileID) String() string {
	return uuid.UUID(f).String()
}

// Span is a half-open byte range [Start, End) into a file's source text.
type Span struct {
	Start int
	End   int
}

// Detail is one piece of supplementary information attached to a
// Diagnostic, optionally pointing at its own span.
type Detail struct {
	Message string
	Span    *Span
}

// Diagnostic is a single parser error. Parser diagnostics are always
// errors — there is no warning/info severity in this model (spec.md §3).
type Diagnostic struct {
	FileID  FileID
	Span    *Span
	Message string
	Details []Detail
	Hint    string
}

// New starts a diagnostic with its mandatory message and span. Use
// Detail and WithHint to add the optional parts; both return an updated
// copy so calls chain: New(...).Detail(...).WithHint(...).
func New(fileID FileID, message string, span Span) Diagnostic {
	return Diagnostic{FileID: fileID, Span: &span, Message: message}
}

// Newf is New with fmt.Sprintf-style message formatting, matching the
// teacher's NewErrFilePosf.
func Newf(fileID FileID, span Span, format string, args ...interface{}) Diagnostic {
	return New(fileID, fmt.Sprintf(format, args...), span)
}

// Detail attaches supplementary information to the diagnostic. Details
// inherit the diagnostic's FileID (spec.md §4.8) and render after the
// primary message, before the hint.
func (d Diagnostic) Detail(span Span, message string) Diagnostic {
	d.Details = append(append([]Detail(nil), d.Details...), Detail{Message: message, Span: &span})
	return d
}

// WithHint attaches a hint — a suggestion for how to fix the issue — that
// renders last.
func (d Diagnostic) WithHint(message string) Diagnostic {
	d.Hint = message
	return d
}

// IsError is always true: parser diagnostics never carry any other
// severity (spec.md §3: "Severity is always error for parse diagnostics").
func (d Diagnostic) IsError() bool { return true }

// Render renders the diagnostic's message, details (in order), then hint,
// each on its own line. It exists only so this module's own tests can
// assert on section ordering (spec.md §4.8); production diagnostic
// rendering is explicitly out of scope (spec.md §1).
func (d Diagnostic) Render() string {
	var b strings.Builder
	b.WriteString(d.Message)
	for _, det := range d.Details {
		b.WriteByte('\n')
		b.WriteString(det.Message)
	}
	if d.Hint != "" {
		b.WriteByte('\n')
		b.WriteString(d.Hint)
	}
	return b.String()
}
