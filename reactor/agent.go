package reactor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/martinemde/reactor/llm"
)

// Agent owns one Transcript and one tool Registry, and exposes the completion
// primitives the loop controller drives. One Agent serves one run at a time;
// there is no shared mutable state across runs.
type Agent struct {
	cfg        Config
	client     *llm.Client
	registry   *Registry
	transcript *Transcript
	logger     *slog.Logger
	trace      *Trace
}

// AgentOption configures an Agent at construction.
type AgentOption func(*Agent)

// WithClient sets the completion client. Defaults to llm.NewClientFromEnv().
func WithClient(client *llm.Client) AgentOption {
	return func(a *Agent) { a.client = client }
}

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) AgentOption {
	return func(a *Agent) { a.logger = logger }
}

// WithTrace attaches a Trace that records the reasoning chain.
func WithTrace(trace *Trace) AgentOption {
	return func(a *Agent) { a.trace = trace }
}

// NewAgent creates an Agent from an explicit configuration. Tools from the
// config are registered in order; a duplicate name fails construction. When
// the config carries a system prompt, the transcript is seeded with it plus
// the registered tool list.
func NewAgent(cfg Config, opts ...AgentOption) (*Agent, error) {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}

	a := &Agent{
		cfg:        cfg,
		transcript: NewTranscript(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	if a.client == nil {
		a.client = llm.NewClientFromEnv()
	}
	a.registry = NewRegistry(a.logger)

	for _, def := range cfg.Tools {
		if err := a.registry.Register(def); err != nil {
			return nil, err
		}
	}

	if cfg.SystemPrompt != "" {
		a.transcript.Append(llm.SystemMessage(buildSystemPrompt(cfg.SystemPrompt, a.registry)))
	}

	return a, nil
}

// Transcript returns the agent's conversation history.
func (a *Agent) Transcript() *Transcript { return a.transcript }

// Registry returns the agent's tool registry.
func (a *Agent) Registry() *Registry { return a.registry }

// Config returns the agent's configuration.
func (a *Agent) Config() Config { return a.cfg }

// Complete issues a plain text completion over the transcript. The directive
// is an ephemeral user instruction: the model sees it for this call only and
// it is never stored. The assistant's reply is appended to the transcript
// before returning.
func (a *Agent) Complete(ctx context.Context, directive string) (string, error) {
	msgs := a.transcript.Messages()
	if directive != "" {
		msgs = append(msgs, llm.UserMessage(directive))
	}

	resp, err := a.client.Complete(ctx, llm.Request{
		Model:    a.cfg.Model,
		Provider: a.cfg.Provider,
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	a.transcript.Append(llm.AssistantMessage(text))
	return text, nil
}

// CompleteWithTools issues a tool-augmented completion over the transcript.
// The directive is ephemeral, as in Complete. The assistant message, including
// the raw tool-call payload, is appended to the transcript. Zero
// returned invocations means the model decided no action; re-prompt policy is
// the caller's concern.
func (a *Agent) CompleteWithTools(ctx context.Context, directive string) (string, []ToolInvocation, error) {
	msgs := a.transcript.Messages()
	if directive != "" {
		msgs = append(msgs, llm.UserMessage(directive))
	}

	resp, err := a.client.Complete(ctx, llm.Request{
		Model:      a.cfg.Model,
		Provider:   a.cfg.Provider,
		Messages:   msgs,
		ToolDefs:   a.registry.Definitions(),
		ToolChoice: &llm.ToolChoice{Mode: "auto"},
	})
	if err != nil {
		return "", nil, err
	}

	a.transcript.Append(resp.Message)

	var invocations []ToolInvocation
	for _, call := range resp.ToolCallsFromResponse() {
		args := map[string]any{}
		if len(call.Arguments) > 0 {
			if err := json.Unmarshal(call.Arguments, &args); err != nil {
				return "", nil, fmt.Errorf("parse arguments for tool %s: %w", call.Name, err)
			}
		}
		callID := call.ID
		if callID == "" {
			callID = "call_" + uuid.New().String()[:8]
		}
		invocations = append(invocations, ToolInvocation{
			CallID:    callID,
			Name:      call.Name,
			Arguments: args,
		})
	}

	return resp.Text(), invocations, nil
}

// ExecuteTool dispatches an invocation through the registry, serializes the
// result, truncates it per the configured limits, and appends it to the
// transcript as a tool-result message. Handler errors propagate unchanged
// after the registry logs them.
func (a *Agent) ExecuteTool(inv ToolInvocation) (string, error) {
	a.trace.Add(TraceToolCall,
		fmt.Sprintf("executing %s", inv.Name),
		map[string]any{"action": inv.Name, "arguments": inv.Arguments})

	result, err := a.registry.Execute(inv.Name, inv.Arguments)
	if err != nil {
		a.trace.Add(TraceError,
			fmt.Sprintf("%s failed: %v", inv.Name, err),
			map[string]any{"action": inv.Name, "arguments": inv.Arguments})
		return "", err
	}

	serialized, err := serializeResult(result)
	if err != nil {
		return "", fmt.Errorf("serialize result of tool %s: %w", inv.Name, err)
	}

	truncated := TruncateToolOutput(serialized, inv.Name, a.cfg.ToolOutputLimits, a.cfg.ToolLineLimits)
	a.transcript.Append(llm.ToolResultMessage(inv.CallID, truncated, false))

	a.trace.Add(TraceToolResult,
		fmt.Sprintf("%s returned %d characters", inv.Name, len(truncated)),
		map[string]any{"action": inv.Name, "result_length": len(serialized)})

	return truncated, nil
}

// Chat performs a single-turn interaction with automatic tool dispatch: the
// model is called until it stops requesting tools, each requested tool being
// executed in order. Rounds are bounded by the configured MaxIterations.
func (a *Agent) Chat(ctx context.Context, input string) (string, error) {
	a.transcript.Append(llm.UserMessage(input))

	for round := 0; round < a.cfg.MaxIterations; round++ {
		text, invocations, err := a.CompleteWithTools(ctx, "")
		if err != nil {
			return "", err
		}
		if len(invocations) == 0 {
			return text, nil
		}
		for _, inv := range invocations {
			if _, err := a.ExecuteTool(inv); err != nil {
				return "", err
			}
		}
	}

	return "", &MaxIterationsExceededError{MaxIterations: a.cfg.MaxIterations}
}

// serializeResult renders a tool handler's result for the transcript.
// Strings pass through; everything else is JSON-encoded.
func serializeResult(result any) (string, error) {
	switch v := result.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}
