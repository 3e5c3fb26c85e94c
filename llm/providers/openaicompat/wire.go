package openaicompat

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BaSui01/promptcast/llm"
	"github.com/BaSui01/promptcast/types"
)

// Chat Completions wire types. Every OpenAI-compatible endpoint
// accepts and produces these shapes.

// ChatMessage is one message on the wire.
type ChatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []ChatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// ChatToolCall is a tool invocation emitted by the model.
type ChatToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the function name and its JSON arguments.
type FunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ChatTool declares a callable function to the model.
type ChatTool struct {
	Type     string       `json:"type"`
	Function FunctionSpec `json:"function"`
}

// FunctionSpec is the declared side of a function: its name,
// description, and JSON-schema parameters document.
type FunctionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ChatRequest is the chat completions request body. Temperature has
// no omitempty: a zero temperature is a deliberate setting and must
// reach the upstream.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Tools       []ChatTool    `json:"tools,omitempty"`
	ToolChoice  any           `json:"tool_choice,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

// ChatChoice is a single completion alternative.
type ChatChoice struct {
	Index        int         `json:"index"`
	FinishReason string      `json:"finish_reason"`
	Message      ChatMessage `json:"message"`
}

// ChatUsage reports token consumption.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the chat completions response body.
type ChatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *ChatUsage   `json:"usage,omitempty"`
	Created int64        `json:"created,omitempty"`
}

// convertMessages maps messages onto the wire shape.
func convertMessages(msgs []types.Message) []ChatMessage {
	out := make([]ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		cm := ChatMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
		if len(m.ToolCalls) > 0 {
			cm.ToolCalls = make([]ChatToolCall, 0, len(m.ToolCalls))
			for _, tc := range m.ToolCalls {
				cm.ToolCalls = append(cm.ToolCalls, ChatToolCall{
					ID:   tc.ID,
					Type: "function",
					Function: FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
		}
		out = append(out, cm)
	}
	return out
}

// convertTools maps tool schemas onto the wire shape.
func convertTools(tools []types.ToolSchema) []ChatTool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]ChatTool, 0, len(tools))
	for _, t := range tools {
		out = append(out, ChatTool{
			Type: "function",
			Function: FunctionSpec{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}

// toResponse converts the wire response into the provider-neutral form.
func toResponse(wire ChatResponse, provider string) *llm.Response {
	choices := make([]llm.Choice, 0, len(wire.Choices))
	for _, c := range wire.Choices {
		msg := types.Message{
			Role:    types.RoleAssistant,
			Content: c.Message.Content,
		}
		if len(c.Message.ToolCalls) > 0 {
			msg.ToolCalls = make([]types.ToolCall, 0, len(c.Message.ToolCalls))
			for _, tc := range c.Message.ToolCalls {
				msg.ToolCalls = append(msg.ToolCalls, types.ToolCall{
					ID:        tc.ID,
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				})
			}
		}
		choices = append(choices, llm.Choice{
			Index:        c.Index,
			FinishReason: c.FinishReason,
			Message:      msg,
		})
	}

	resp := &llm.Response{
		ID:       wire.ID,
		Provider: provider,
		Model:    wire.Model,
		Choices:  choices,
	}
	if wire.Usage != nil {
		resp.Usage = llm.Usage{
			PromptTokens:     wire.Usage.PromptTokens,
			CompletionTokens: wire.Usage.CompletionTokens,
			TotalTokens:      wire.Usage.TotalTokens,
		}
	}
	if wire.Created != 0 {
		resp.CreatedAt = time.Unix(wire.Created, 0)
	}
	return resp
}

// MapHTTPError maps an HTTP status to the matching error code.
func MapHTTPError(status int, msg string, provider string) *types.Error {
	var code types.ErrorCode
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = types.ErrUnauthorized
	case http.StatusTooManyRequests:
		code = types.ErrRateLimited
	case 529: // model overloaded, used by some gateways
		code = types.ErrModelOverloaded
	case http.StatusBadRequest:
		// Quota exhaustion often arrives as a 400 with a telltale message.
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "quota") || strings.Contains(lower, "credit") || strings.Contains(lower, "billing") {
			code = types.ErrRateLimited
		} else {
			code = types.ErrUpstream
		}
	default:
		code = types.ErrUpstream
	}

	return types.NewError(code, msg).WithHTTPStatus(status).WithProvider(provider)
}

// ReadErrorMessage extracts a human-readable message from an error
// body, preferring the structured {"error":{...}} form and falling
// back to the raw text.
func ReadErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil {
		return "failed to read error response"
	}

	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    any    `json:"code"`
		} `json:"error"`
	}

	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		if errResp.Error.Type != "" {
			return fmt.Sprintf("%s (type: %s)", errResp.Error.Message, errResp.Error.Type)
		}
		return errResp.Error.Message
	}

	return string(data)
}
