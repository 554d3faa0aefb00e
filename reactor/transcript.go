package reactor

import (
	"github.com/martinemde/reactor/llm"
)

// Transcript is the ordered, append-only conversation history for one run.
// Insertion order defines conversational causality: every completion call
// sees the full accumulated history. A Transcript is owned by exactly one
// Agent and is not persisted across runs.
type Transcript struct {
	messages []llm.Message
}

// NewTranscript creates an empty Transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a message to the end of the transcript. Messages are immutable
// once appended.
func (t *Transcript) Append(msg llm.Message) {
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the transcript contents.
func (t *Transcript) Messages() []llm.Message {
	out := make([]llm.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Roles returns the role of every message in order. Useful for asserting the
// deterministic shape of a run independent of reasoning content.
func (t *Transcript) Roles() []llm.Role {
	roles := make([]llm.Role, len(t.messages))
	for i, m := range t.messages {
		roles[i] = m.Role
	}
	return roles
}

// Last returns the most recent message, if any.
func (t *Transcript) Last() (llm.Message, bool) {
	if len(t.messages) == 0 {
		return llm.Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
