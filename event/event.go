// Package event implements the append-only event stream markers write to
// (spec.md §3, §4.2) and the compaction pass that resolves forward-parent
// links into sink playback order (spec.md §4.3). Soy's recursive-descent
// parser (the teacher) builds its AST directly and has no analogue of
// this stream; the design here follows spec.md directly, in the teacher's
// doc-comment density and naming style.
package event

import "github.com/lossless-js/jscst/token"

// Event is one entry in the parser's append-only log. Exactly one of the
// four constructors below should be used to build a value; Tag
// discriminates which fields are meaningful.
type Event struct {
	tag EventTag

	// Start fields.
	StartKind     token.Kind
	ForwardParent int // relative offset to another Start event, or 0 if none

	// Token fields.
	TokenKind token.Kind
	EndOffset int
}

// EventTag discriminates the variant of an Event.
type EventTag uint8

const (
	TagStart EventTag = iota
	TagFinish
	TagToken
	TagTombstone
)

// Tag reports which variant this event is.
func (e Event) Tag() EventTag { return e.tag }

// SetForwardParent points this Start event at another Start event offset
// positions later in the stream, which becomes this node's parent once
// Process resolves the chain (this is how Marker.Precede is implemented).
// Only valid on a Start event.
func (e *Event) SetForwardParent(offset int) {
	e.ForwardParent = offset
}

// SetKind rewrites a Start event's kind in place — used both by
// Marker.Complete (TOMBSTONE -> the real kind) and by
// CompletedMarker.ChangeToUnknown (kind -> an UNKNOWN_* kind). Only valid
// on a Start event.
func (e *Event) SetKind(k token.Kind) {
	e.StartKind = k
}

// MarkTombstone turns this Start event into a Tombstone in place — used
// by Marker.Abandon.
func (e *Event) MarkTombstone() {
	*e = Event{tag: TagTombstone}
}

// NewStart creates a Start event opening a node of kind k.
func NewStart(k token.Kind) Event {
	return Event{tag: TagStart, StartKind: k}
}

// NewFinish creates a Finish event, closing the most recently opened,
// unclosed node.
func NewFinish() Event {
	return Event{tag: TagFinish}
}

// NewToken creates a Token event for an already-lexed token ending at
// endOffset (an absolute byte position).
func NewToken(k token.Kind, endOffset int) Event {
	return Event{tag: TagToken, TokenKind: k, EndOffset: endOffset}
}

// NewTombstone creates a Tombstone event: an abandoned Start, skipped
// during sink playback (spec.md §4.2, §4.3).
func NewTombstone() Event {
	return Event{tag: TagTombstone}
}

// Process compacts a finished event log into sink playback order: for
// every Start event, every Start event reachable via ForwardParent
// (transitively) is emitted, outermost first, before the event itself;
// Tombstone events are dropped entirely. The result is driven into a
// TreeSink by Play.
//
// Compaction walks the log once in order; on reaching a Start event it
// recursively emits that event's forward-parent chain outermost-first,
// with a per-index memo so each Start is emitted exactly once. This is
// what a two-phase "precede" design requires: a node completed first but
// reparented via `precede` must still end up as the structural child
// emitted first.
func Process(events []Event) []Event {
	// emitChain, below, walks a Start event's ForwardParent chain to the
	// outermost ancestor and emits the whole chain outermost-first,
	// memoizing via `emitted` so each Start event is ever appended once —
	// whether the loop reaches it directly or the chain walk reaches it
	// first from an earlier, now-reparented child.
	order := make([]Event, 0, len(events))
	emitted := make([]bool, len(events))

	var emitChain func(i int)
	emitChain = func(i int) {
		if emitted[i] {
			return
		}
		ev := events[i]
		if ev.tag != TagStart {
			return
		}
		if ev.ForwardParent != 0 {
			emitChain(i + ev.ForwardParent)
		}
		if emitted[i] {
			return
		}
		emitted[i] = true
		order = append(order, Event{tag: TagStart, StartKind: ev.StartKind})
	}

	for i, ev := range events {
		switch ev.tag {
		case TagStart:
			emitChain(i)
		case TagTombstone:
			// dropped
		default:
			order = append(order, ev)
		}
	}
	return order
}
