package reactor

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinemde/reactor/llm"
)

// scriptedAdapter returns canned responses in order and records every request
// it receives.
type scriptedAdapter struct {
	responses []*llm.Response
	requests  []llm.Request
	idx       int
}

func (s *scriptedAdapter) Name() string { return "scripted" }

func (s *scriptedAdapter) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	s.requests = append(s.requests, req)
	if s.idx >= len(s.responses) {
		return nil, fmt.Errorf("script exhausted after %d responses", len(s.responses))
	}
	resp := s.responses[s.idx]
	s.idx++
	return resp, nil
}

func textResponse(text string) *llm.Response {
	return &llm.Response{
		ID:       "resp_text",
		Model:    "test-model",
		Provider: "scripted",
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: []llm.ContentPart{llm.TextPart(text)},
		},
		FinishReason: llm.FinishReason{Reason: "stop"},
	}
}

func toolCallResponse(callID, name, argsJSON string) *llm.Response {
	return &llm.Response{
		ID:       "resp_tool",
		Model:    "test-model",
		Provider: "scripted",
		Message: llm.Message{
			Role: llm.RoleAssistant,
			Content: []llm.ContentPart{
				llm.ToolCallPart(callID, name, json.RawMessage(argsJSON)),
			},
		},
		FinishReason: llm.FinishReason{Reason: "tool_calls"},
	}
}

func scriptedClient(responses ...*llm.Response) (*llm.Client, *scriptedAdapter) {
	adapter := &scriptedAdapter{responses: responses}
	return llm.NewClient(llm.WithProvider("scripted", adapter)), adapter
}

func TestAgentCompleteDirectiveIsEphemeral(t *testing.T) {
	client, adapter := scriptedClient(textResponse("a thought"))

	agent, err := NewAgent(Config{Model: "test-model"}, WithClient(client))
	require.NoError(t, err)

	text, err := agent.Complete(context.Background(), "what is your thought?")
	require.NoError(t, err)
	assert.Equal(t, "a thought", text)

	// The model saw the directive as the final user message.
	require.Len(t, adapter.requests, 1)
	sent := adapter.requests[0].Messages
	require.NotEmpty(t, sent)
	last := sent[len(sent)-1]
	assert.Equal(t, llm.RoleUser, last.Role)
	assert.Equal(t, "what is your thought?", last.TextContent())

	// But the transcript holds only the assistant reply.
	assert.Equal(t, []llm.Role{llm.RoleAssistant}, agent.Transcript().Roles())
	stored, _ := agent.Transcript().Last()
	assert.Equal(t, "a thought", stored.TextContent())
}

func TestAgentSeedsSystemPromptWithTools(t *testing.T) {
	client, adapter := scriptedClient(textResponse("ok"))

	agent, err := NewAgent(Config{
		Model:        "test-model",
		SystemPrompt: "You are helpful.",
		Tools:        []ToolDefinition{echoTool("echo")},
	}, WithClient(client))
	require.NoError(t, err)

	assert.Equal(t, []llm.Role{llm.RoleSystem}, agent.Transcript().Roles())

	_, err = agent.Complete(context.Background(), "")
	require.NoError(t, err)

	system := adapter.requests[0].Messages[0]
	assert.Equal(t, llm.RoleSystem, system.Role)
	assert.Contains(t, system.TextContent(), "You are helpful.")
	assert.Contains(t, system.TextContent(), "echo: echoes its input")
}

func TestAgentDuplicateConfigTool(t *testing.T) {
	client, _ := scriptedClient()

	_, err := NewAgent(Config{
		Model: "test-model",
		Tools: []ToolDefinition{echoTool("echo"), echoTool("echo")},
	}, WithClient(client))

	var dup *DuplicateToolError
	require.ErrorAs(t, err, &dup)
}

func TestAgentCompleteWithTools(t *testing.T) {
	client, adapter := scriptedClient(
		toolCallResponse("call_1", "echo", `{"text":"hi"}`),
	)

	agent, err := NewAgent(Config{
		Model: "test-model",
		Tools: []ToolDefinition{echoTool("echo")},
	}, WithClient(client))
	require.NoError(t, err)

	_, invocations, err := agent.CompleteWithTools(context.Background(), "act now")
	require.NoError(t, err)

	require.Len(t, invocations, 1)
	assert.Equal(t, "call_1", invocations[0].CallID)
	assert.Equal(t, "echo", invocations[0].Name)
	assert.Equal(t, map[string]any{"text": "hi"}, invocations[0].Arguments)

	// Tool definitions were offered to the model.
	require.Len(t, adapter.requests, 1)
	require.Len(t, adapter.requests[0].ToolDefs, 1)
	assert.Equal(t, "echo", adapter.requests[0].ToolDefs[0].Name)
	require.NotNil(t, adapter.requests[0].ToolChoice)
	assert.Equal(t, "auto", adapter.requests[0].ToolChoice.Mode)

	// The assistant tool-call message entered the transcript.
	last, ok := agent.Transcript().Last()
	require.True(t, ok)
	assert.Equal(t, llm.RoleAssistant, last.Role)
	require.Len(t, last.ToolCalls(), 1)
}

func TestAgentCompleteWithToolsGeneratesCallID(t *testing.T) {
	client, _ := scriptedClient(
		toolCallResponse("", "echo", `{"text":"hi"}`),
	)

	agent, err := NewAgent(Config{
		Model: "test-model",
		Tools: []ToolDefinition{echoTool("echo")},
	}, WithClient(client))
	require.NoError(t, err)

	_, invocations, err := agent.CompleteWithTools(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, invocations, 1)
	assert.NotEmpty(t, invocations[0].CallID)
}

func TestAgentCompleteWithToolsBadArguments(t *testing.T) {
	client, _ := scriptedClient(
		toolCallResponse("call_1", "echo", `{not json`),
	)

	agent, err := NewAgent(Config{
		Model: "test-model",
		Tools: []ToolDefinition{echoTool("echo")},
	}, WithClient(client))
	require.NoError(t, err)

	_, _, err = agent.CompleteWithTools(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse arguments")
}

func TestAgentExecuteTool(t *testing.T) {
	client, _ := scriptedClient()

	agent, err := NewAgent(Config{
		Model: "test-model",
		Tools: []ToolDefinition{echoTool("echo")},
	}, WithClient(client))
	require.NoError(t, err)

	result, err := agent.ExecuteTool(ToolInvocation{
		CallID:    "call_1",
		Name:      "echo",
		Arguments: map[string]any{"text": "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", result)

	last, ok := agent.Transcript().Last()
	require.True(t, ok)
	assert.Equal(t, llm.RoleTool, last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)
}

func TestAgentExecuteToolErrorSkipsTranscript(t *testing.T) {
	client, _ := scriptedClient()

	agent, err := NewAgent(Config{
		Model: "test-model",
		Tools: []ToolDefinition{{
			Name: "flaky",
			Handler: func(args map[string]any) (any, error) {
				return nil, fmt.Errorf("backend down")
			},
		}},
	}, WithClient(client))
	require.NoError(t, err)

	before := agent.Transcript().Len()
	_, err = agent.ExecuteTool(ToolInvocation{CallID: "c", Name: "flaky", Arguments: map[string]any{}})
	require.Error(t, err)
	assert.Equal(t, before, agent.Transcript().Len(), "a failed tool leaves no result message")
}

func TestAgentChatDispatchesTools(t *testing.T) {
	client, _ := scriptedClient(
		toolCallResponse("call_1", "echo", `{"text":"ping"}`),
		textResponse("done: ping"),
	)

	agent, err := NewAgent(Config{
		Model: "test-model",
		Tools: []ToolDefinition{echoTool("echo")},
	}, WithClient(client))
	require.NoError(t, err)

	answer, err := agent.Chat(context.Background(), "please echo ping")
	require.NoError(t, err)
	assert.Equal(t, "done: ping", answer)

	// user, assistant(tool call), tool result, assistant(text)
	assert.Equal(t, []llm.Role{
		llm.RoleUser,
		llm.RoleAssistant,
		llm.RoleTool,
		llm.RoleAssistant,
	}, agent.Transcript().Roles())
}

func TestAgentChatIterationBudget(t *testing.T) {
	// The model keeps asking for tools and never answers.
	loop := []*llm.Response{
		toolCallResponse("c1", "echo", `{"text":"a"}`),
		toolCallResponse("c2", "echo", `{"text":"b"}`),
		toolCallResponse("c3", "echo", `{"text":"c"}`),
	}
	client, _ := scriptedClient(loop...)

	agent, err := NewAgent(Config{
		Model:         "test-model",
		MaxIterations: 3,
		Tools:         []ToolDefinition{echoTool("echo")},
	}, WithClient(client))
	require.NoError(t, err)

	_, err = agent.Chat(context.Background(), "go")
	var exceeded *MaxIterationsExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, 3, exceeded.MaxIterations)
}
