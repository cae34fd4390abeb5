package parser

import (
	"github.com/lossless-js/jscst/diagnostic"
	"github.com/lossless-js/jscst/event"
	"github.com/lossless-js/jscst/token"
)

// Marker is a handle to an open (not yet completed) node in the event
// stream: the index of its Start event plus the source position at which
// it was opened (spec.md §3, §4.2).
type Marker struct {
	parser    *Parser
	eventIdx  int
	sourcePos int
}

// Complete closes the marker as a node of kind k: the placeholder Start
// event is rewritten from TOMBSTONE to k and a Finish event is appended.
// Returns a CompletedMarker remembering the node's event index and source
// range, for Precede and ChangeToUnknown.
func (m Marker) Complete(k token.Kind) CompletedMarker {
	m.parser.events[m.eventIdx].SetKind(k)
	// The node ends where its last consumed token ends; a node that
	// consumed nothing is the empty range at its start position.
	end := m.sourcePos
	for i := len(m.parser.events) - 1; i >= 0; i-- {
		if ev := m.parser.events[i]; ev.Tag() == event.TagToken {
			if ev.EndOffset > end {
				end = ev.EndOffset
			}
			break
		}
	}
	m.parser.events = append(m.parser.events, event.NewFinish())
	return CompletedMarker{
		parser:    m.parser,
		eventIdx:  m.eventIdx,
		kind:      k,
		rangeLo:   m.sourcePos,
		rangeHi:   end,
	}
}

// Abandon discards the marker without completing it: the placeholder
// Start event becomes a Tombstone and no Finish is emitted. Any events
// appended between Start and now (e.g. a sub-rule that itself opened and
// completed markers) are left exactly as they are — only this marker's
// own Start is dropped (spec.md §4.2).
func (m Marker) Abandon() {
	// A marker abandoned at the very end of the stream, with nothing
	// emitted since it was opened, is removed outright rather than left
	// as a dead Tombstone entry — purely a compaction-size optimization,
	// with no effect on Process's output either way.
	if m.eventIdx == len(m.parser.events)-1 {
		m.parser.events = m.parser.events[:m.eventIdx]
		return
	}
	m.parser.events[m.eventIdx].MarkTombstone()
}

// CompletedMarker remembers a finished node: its Start event index, its
// kind, and the source range it spans.
type CompletedMarker struct {
	parser   *Parser
	eventIdx int
	kind     token.Kind
	rangeLo  int
	rangeHi  int
}

// Kind returns the node's current kind (which ChangeToUnknown may have
// mutated).
func (c CompletedMarker) Kind() token.Kind { return c.kind }

// Range returns the byte span [start, end) this node covers.
func (c CompletedMarker) Range() diagnostic.Span {
	return diagnostic.Span{Start: c.rangeLo, End: c.rangeHi}
}

// Precede opens a new marker whose Start event is appended at the
// current end of the stream, and points this already-completed marker's
// own Start event forward at it via ForwardParent. When event.Process
// resolves the chain, the earlier node becomes a child of the later one
// — this is how left-recursive constructs (binary expressions, member
// chains) are assembled without re-parsing (spec.md §4.2).
//
// Precede is only valid on the most-recently-completed marker among its
// peers at its start position; the parser has no way to check this
// invariant mechanically (spec.md documents it as a caller contract), so
// misuse will simply produce a structurally wrong tree, not a panic.
func (c CompletedMarker) Precede() Marker {
	newIdx := len(c.parser.events)
	c.parser.events = append(c.parser.events, event.NewStart(token.TOMBSTONE))
	c.parser.events[c.eventIdx].SetForwardParent(newIdx - c.eventIdx)
	return Marker{parser: c.parser, eventIdx: newIdx, sourcePos: c.rangeLo}
}

// ChangeToUnknown mutates the node's kind to k (one of the UNKNOWN_*
// kinds) in place. This preserves the completed marker's source range —
// the Start/Finish events are untouched, only the stored kind changes
// (spec.md §8: "change_to_unknown preserves the completed marker's
// source range").
func (c *CompletedMarker) ChangeToUnknown(k token.Kind) {
	c.parser.events[c.eventIdx].SetKind(k)
	c.kind = k
}
