package diagnostic

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiagnosticCarriesMessageAndSpan(t *testing.T) {
	fid := NewFileID()
	d := New(fid, "Expected an expression", Span{Start: 3, End: 4})

	require.Equal(t, fid, d.FileID)
	require.NotNil(t, d.Span)
	assert.Equal(t, 3, d.Span.Start)
	assert.Equal(t, 4, d.Span.End)
	assert.Equal(t, "Expected an expression", d.Message)
	assert.Empty(t, d.Details)
	assert.Empty(t, d.Hint)
}

func TestNewfFormatsLikeSprintf(t *testing.T) {
	fid := NewFileID()
	d := Newf(fid, Span{Start: 0, End: 1}, "Expected %s, found %s", "SEMICOLON", "EOF")

	assert.Equal(t, "Expected SEMICOLON, found EOF", d.Message)
}

func TestDetailAppendsWithoutMutatingEarlierDiagnostics(t *testing.T) {
	fid := NewFileID()
	base := New(fid, "Unexpected token", Span{Start: 0, End: 1})
	withOneDetail := base.Detail(Span{Start: 2, End: 3}, "first detail")
	withTwoDetails := withOneDetail.Detail(Span{Start: 4, End: 5}, "second detail")

	require.Len(t, base.Details, 0, "value-receiver Detail must not mutate the original")
	require.Len(t, withOneDetail.Details, 1)
	require.Len(t, withTwoDetails.Details, 2)
	assert.Equal(t, "first detail", withTwoDetails.Details[0].Message)
	assert.Equal(t, "second detail", withTwoDetails.Details[1].Message)
}

func TestWithHintSetsHintWithoutAffectingDetails(t *testing.T) {
	fid := NewFileID()
	d := New(fid, "msg", Span{Start: 0, End: 1}).
		Detail(Span{Start: 1, End: 2}, "detail").
		WithHint("try adding a semicolon")

	assert.Equal(t, "try adding a semicolon", d.Hint)
	require.Len(t, d.Details, 1)
}

func TestIsErrorIsAlwaysTrue(t *testing.T) {
	d := New(NewFileID(), "anything", Span{Start: 0, End: 0})
	assert.True(t, d.IsError())
}

func TestRenderOrdersMessageDetailsThenHint(t *testing.T) {
	d := New(NewFileID(), "Unexpected token", Span{Start: 0, End: 1}).
		Detail(Span{Start: 2, End: 3}, "first detail").
		Detail(Span{Start: 4, End: 5}, "second detail").
		WithHint("a hint")

	want := "Unexpected token\nfirst detail\nsecond detail\na hint"
	assert.Equal(t, want, d.Render())
}

func TestRenderOmitsAbsentSections(t *testing.T) {
	d := New(NewFileID(), "Unexpected token", Span{Start: 0, End: 1})
	assert.Equal(t, "Unexpected token", d.Render())
}

func TestFileIDStringRoundTripsThroughUUID(t *testing.T) {
	fid := NewFileID()
	parsed, err := uuid.Parse(fid.String())
	require.NoError(t, err)
	assert.Equal(t, fid, FileID(parsed))
}
