package reactor

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TraceKind identifies the type of a trace entry.
type TraceKind string

const (
	TraceConversationStart TraceKind = "conversation_start"
	TraceThought           TraceKind = "thought"
	TraceAction            TraceKind = "action"
	TraceObservation       TraceKind = "observation"
	TraceToolCall          TraceKind = "tool_call"
	TraceToolResult        TraceKind = "tool_result"
	TraceFinalAnswer       TraceKind = "final_answer"
	TraceWarning           TraceKind = "warning"
	TraceError             TraceKind = "error"
)

// TraceEntry is a single recorded event in a run's reasoning chain.
type TraceEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Kind      TraceKind      `json:"kind"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	SessionID string         `json:"session_id"`
}

// Trace records the reasoning chain of one or more runs for inspection and
// export. All methods are safe on a nil receiver, so tracing is strictly
// optional for the Agent and Reactor.
type Trace struct {
	sessionID string
	observer  func(TraceEntry)
	mu        sync.Mutex
	entries   []TraceEntry
}

// NewTrace creates a Trace. An empty sessionID gets a generated UUID.
func NewTrace(sessionID string) *Trace {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return &Trace{sessionID: sessionID}
}

// SessionID returns the trace's session identifier.
func (t *Trace) SessionID() string {
	if t == nil {
		return ""
	}
	return t.sessionID
}

// SetObserver installs a callback invoked synchronously for every recorded
// entry. Used by hosts that want to render the reasoning chain live.
func (t *Trace) SetObserver(fn func(TraceEntry)) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observer = fn
}

// Add records an entry.
func (t *Trace) Add(kind TraceKind, message string, metadata map[string]any) {
	if t == nil {
		return
	}
	entry := TraceEntry{
		Timestamp: time.Now(),
		Kind:      kind,
		Message:   message,
		Metadata:  metadata,
		SessionID: t.sessionID,
	}
	t.mu.Lock()
	t.entries = append(t.entries, entry)
	observer := t.observer
	t.mu.Unlock()

	if observer != nil {
		observer(entry)
	}
}

// Entries returns a copy of all recorded entries.
func (t *Trace) Entries() []TraceEntry {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TraceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ByKind returns all entries of one kind.
func (t *Trace) ByKind(kind TraceKind) []TraceEntry {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []TraceEntry
	for _, e := range t.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Clear discards all recorded entries.
func (t *Trace) Clear() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}

// Export writes all entries as indented JSON.
func (t *Trace) Export(w io.Writer) error {
	if t == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Entries())
}

// ExportFile writes all entries as indented JSON to a file.
func (t *Trace) ExportFile(path string) error {
	if t == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Export(f)
}
