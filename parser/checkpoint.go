package parser

// Checkpoint is an immutable snapshot of everything Restore needs to
// rewind: cursor position, event-stream length, diagnostic-buffer
// length, and the depth of the strict-mode stack (spec.md §3, §4.1).
// Restoring truncates the event and diagnostic buffers and rewinds the
// cursor, enabling unlimited speculative look-ahead.
type Checkpoint struct {
	cursorPos int
	eventsLen int
	diagsLen  int
	strictLen int
}
