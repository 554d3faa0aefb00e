package reactor

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceAddAndEntries(t *testing.T) {
	trace := NewTrace("session-1")

	trace.Add(TraceThought, "thinking about it", map[string]any{"iteration": 1})
	trace.Add(TraceAction, "search_internet", nil)

	entries := trace.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, TraceThought, entries[0].Kind)
	assert.Equal(t, "session-1", entries[0].SessionID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestTraceGeneratedSessionID(t *testing.T) {
	trace := NewTrace("")
	assert.NotEmpty(t, trace.SessionID())
}

func TestTraceByKind(t *testing.T) {
	trace := NewTrace("s")
	trace.Add(TraceThought, "one", nil)
	trace.Add(TraceAction, "act", nil)
	trace.Add(TraceThought, "two", nil)

	thoughts := trace.ByKind(TraceThought)
	require.Len(t, thoughts, 2)
	assert.Equal(t, "one", thoughts[0].Message)
	assert.Equal(t, "two", thoughts[1].Message)
}

func TestTraceObserver(t *testing.T) {
	trace := NewTrace("s")
	var seen []TraceEntry
	trace.SetObserver(func(e TraceEntry) {
		seen = append(seen, e)
	})

	trace.Add(TraceWarning, "careful", nil)

	require.Len(t, seen, 1)
	assert.Equal(t, TraceWarning, seen[0].Kind)
	assert.Equal(t, "careful", seen[0].Message)
}

func TestTraceExport(t *testing.T) {
	trace := NewTrace("s")
	trace.Add(TraceFinalAnswer, "42", nil)

	var buf bytes.Buffer
	require.NoError(t, trace.Export(&buf))

	var entries []TraceEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, TraceFinalAnswer, entries[0].Kind)
}

func TestTraceNilReceiver(t *testing.T) {
	var trace *Trace

	// All methods are no-ops on nil; none may panic.
	trace.Add(TraceThought, "ignored", nil)
	trace.SetObserver(func(TraceEntry) {})
	trace.Clear()
	assert.Nil(t, trace.Entries())
	assert.Empty(t, trace.SessionID())
	assert.NoError(t, trace.Export(&bytes.Buffer{}))
}

func TestTraceClear(t *testing.T) {
	trace := NewTrace("s")
	trace.Add(TraceThought, "x", nil)
	trace.Clear()
	assert.Empty(t, trace.Entries())
}
