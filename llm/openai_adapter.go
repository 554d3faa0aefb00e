package llm

import (
	"context"
	"encoding/json"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements ProviderAdapter on top of the official-style
// go-openai SDK. Unlike the gollm adapter it receives structured tool calls
// straight from the chat completions API, so no text parsing is needed.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdapter creates an adapter with the given API key. If model is
// empty the catalog default for the openai provider is used.
func NewOpenAIAdapter(apiKey string, model string) *OpenAIAdapter {
	if model == "" {
		if info := DefaultModel("openai"); info != nil {
			model = info.ID
		}
	}
	return &OpenAIAdapter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewOpenAIAdapterFromClient wraps an existing go-openai client. Useful for
// pointing the adapter at a compatible endpoint or a test server.
func NewOpenAIAdapterFromClient(client *openai.Client, model string) *OpenAIAdapter {
	return &OpenAIAdapter{client: client, model: model}
}

// Name returns the provider identifier.
func (a *OpenAIAdapter) Name() string { return "openai" }

// Complete sends a blocking chat completion request.
func (a *OpenAIAdapter) Complete(ctx context.Context, req Request) (*Response, error) {
	ccr := a.translateRequest(req)

	resp, err := a.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return nil, a.translateError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{
			ClientError: ClientError{Message: "openai returned no choices"},
			Provider:    "openai",
		}
	}

	return a.buildResponse(resp), nil
}

// translateRequest converts a Request into an OpenAI chat completion request.
func (a *OpenAIAdapter) translateRequest(req Request) openai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = a.model
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleSystem,
				Content: msg.TextContent(),
			})
		case RoleUser:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: msg.TextContent(),
			})
		case RoleAssistant:
			m := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: msg.TextContent(),
			}
			for _, tc := range msg.ToolCalls() {
				m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: string(tc.Arguments),
					},
				})
			}
			messages = append(messages, m)
		case RoleTool:
			for _, part := range msg.Content {
				if part.Kind != ContentToolResult || part.ToolResult == nil {
					continue
				}
				var content string
				if err := json.Unmarshal(part.ToolResult.Content, &content); err != nil {
					content = string(part.ToolResult.Content)
				}
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    content,
					ToolCallID: part.ToolResult.ToolCallID,
				})
			}
		}
	}

	ccr := openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}

	for _, td := range req.ToolDefs {
		ccr.Tools = append(ccr.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        td.Name,
				Description: td.Description,
				Parameters:  td.Parameters,
			},
		})
	}

	if req.ToolChoice != nil {
		switch req.ToolChoice.Mode {
		case "named":
			ccr.ToolChoice = openai.ToolChoice{
				Type:     openai.ToolTypeFunction,
				Function: openai.ToolFunction{Name: req.ToolChoice.ToolName},
			}
		case "auto", "none", "required":
			ccr.ToolChoice = req.ToolChoice.Mode
		}
	}

	if req.Temperature != nil {
		ccr.Temperature = float32(*req.Temperature)
	}
	if req.MaxTokens != nil {
		ccr.MaxTokens = *req.MaxTokens
	}

	return ccr
}

// buildResponse converts an OpenAI chat completion response.
func (a *OpenAIAdapter) buildResponse(resp openai.ChatCompletionResponse) *Response {
	choice := resp.Choices[0]

	var parts []ContentPart
	if choice.Message.Content != "" {
		parts = append(parts, TextPart(choice.Message.Content))
	}
	for _, tc := range choice.Message.ToolCalls {
		parts = append(parts, ToolCallPart(tc.ID, tc.Function.Name, json.RawMessage(tc.Function.Arguments)))
	}

	finishReason := FinishReason{Reason: "other", Raw: string(choice.FinishReason)}
	switch choice.FinishReason {
	case openai.FinishReasonStop:
		finishReason.Reason = "stop"
	case openai.FinishReasonLength:
		finishReason.Reason = "length"
	case openai.FinishReasonToolCalls:
		finishReason.Reason = "tool_calls"
	case openai.FinishReasonContentFilter:
		finishReason.Reason = "content_filter"
	}

	return &Response{
		ID:       resp.ID,
		Model:    resp.Model,
		Provider: "openai",
		Message: Message{
			Role:    RoleAssistant,
			Content: parts,
		},
		FinishReason: finishReason,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
}

// translateError converts a go-openai error into the client error hierarchy.
func (a *OpenAIAdapter) translateError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return ErrorFromStatusCode(apiErr.HTTPStatusCode, apiErr.Message, "openai")
	}
	return &NetworkError{ClientError: ClientError{Message: "openai request failed", Cause: err}}
}
