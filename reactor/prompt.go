package reactor

import "strings"

// DefaultSystemPrompt is the base instruction for the reason+act cycle.
const DefaultSystemPrompt = `You are an AI assistant that uses the reason+act framework.
- **thought**: You think carefully about the user's question or task. Do not assume you already know the answer.
- **action**: You perform an action based on your thought. You have access to various tools.
- **observation**: You read the result of that action.
- **thought**: You revise your reasoning based on the observation.`

// Directives issued per loop phase. Each is an ephemeral instruction for a
// single completion call; it is never stored in the transcript.
const (
	thinkingDirective  = "Given the question and the context so far, what is your thought?"
	actingDirective    = "Given your previous thought, what action would you take?"
	observingDirective = "Given the previous action results, what is your observation?"
)

// buildSystemPrompt appends the available tool names and descriptions to the
// base prompt, the way the model is told what it can call.
func buildSystemPrompt(base string, reg *Registry) string {
	names := reg.Names()
	if len(names) == 0 {
		return base
	}
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\n\nYou have access to the following tools:\n")
	for _, name := range names {
		def, _ := reg.Get(name)
		sb.WriteString(def.Name)
		sb.WriteString(": ")
		sb.WriteString(def.Description)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
