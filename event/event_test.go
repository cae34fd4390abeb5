package event

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lossless-js/jscst/token"
)

func TestProcessDropsTombstonesAndKeepsTokensInPlace(t *testing.T) {
	events := []Event{
		NewStart(token.VARIABLE_DECLARATION),
		NewToken(token.CONST_KW, 5),
		NewTombstone(),
		NewToken(token.IDENT, 7),
		NewFinish(),
	}

	got := Process(events)
	want := []Event{
		NewStart(token.VARIABLE_DECLARATION),
		NewToken(token.CONST_KW, 5),
		NewToken(token.IDENT, 7),
		NewFinish(),
	}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Event{})); diff != "" {
		t.Fatalf("Process output mismatch (-want +got):\n%s", diff)
	}
}

// TestProcessReordersForwardParentChainOutermostFirst exercises
// Marker.Precede's underlying mechanism directly: a Start event originally
// written second is retroactively made the parent of the Start event
// written first, and Process must emit the reparented outer node before
// its now-nested child even though it appears later in the raw log.
func TestProcessReordersForwardParentChainOutermostFirst(t *testing.T) {
	inner := NewStart(token.NUMBER_LITERAL_EXPRESSION)
	outer := NewStart(token.EXPRESSION_STATEMENT)
	inner.SetForwardParent(1) // outer sits one slot later in the raw log

	events := []Event{
		inner,
		outer,
		NewToken(token.NUMBER, 1),
		NewFinish(),
		NewFinish(),
	}

	got := Process(events)
	want := []Event{
		NewStart(token.EXPRESSION_STATEMENT),
		NewStart(token.NUMBER_LITERAL_EXPRESSION),
		NewToken(token.NUMBER, 1),
		NewFinish(),
		NewFinish(),
	}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Event{})); diff != "" {
		t.Fatalf("Process output mismatch (-want +got):\n%s", diff)
	}
}

func TestSetKindRewritesStartEventKindInPlace(t *testing.T) {
	ev := NewStart(token.UNKNOWN_STATEMENT)
	ev.SetKind(token.WITH_STATEMENT)

	want := NewStart(token.WITH_STATEMENT)
	if diff := cmp.Diff(want, ev, cmp.AllowUnexported(Event{})); diff != "" {
		t.Fatalf("SetKind mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkTombstoneOverwritesEventEntirely(t *testing.T) {
	ev := NewStart(token.ARRAY_EXPRESSION)
	ev.SetForwardParent(3)
	ev.MarkTombstone()

	want := NewTombstone()
	if diff := cmp.Diff(want, ev, cmp.AllowUnexported(Event{})); diff != "" {
		t.Fatalf("MarkTombstone mismatch (-want +got):\n%s", diff)
	}
}
