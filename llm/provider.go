package llm

import (
	"context"
	"time"

	"github.com/BaSui01/promptcast/types"
)

// Request is a single completion request. It is constructed fresh per call
// and never mutated after dispatch.
type Request struct {
	TraceID  string          `json:"trace_id"`
	Model    string          `json:"model"`
	Messages []types.Message `json:"messages"`
	// Temperature is always serialized, so the fixed value 0 reaches the
	// upstream service instead of its default.
	Temperature float32            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
	Tools       []types.ToolSchema `json:"tools,omitempty"`
	ToolChoice  any                `json:"tool_choice,omitempty"`
	Metadata    map[string]string  `json:"metadata,omitempty"`
}

// Usage reports token consumption for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// Choice is a single completion alternative.
type Choice struct {
	Index        int           `json:"index"`
	FinishReason string        `json:"finish_reason,omitempty"`
	Message      types.Message `json:"message"`
}

// Response is the provider's answer to a Request.
type Response struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Choices   []Choice  `json:"choices"`
	Usage     Usage     `json:"usage"`
	CreatedAt time.Time `json:"created_at"`
}

// Content returns the first choice's text content, or "" when the response
// carries no choices.
func (r *Response) Content() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// FirstToolCall returns the first tool call of the first choice, or nil when
// the response carries none.
func (r *Response) FirstToolCall() *types.ToolCall {
	if r == nil || len(r.Choices) == 0 || len(r.Choices[0].Message.ToolCalls) == 0 {
		return nil
	}
	return &r.Choices[0].Message.ToolCalls[0]
}

// ForceTool returns the tool_choice directive that forces the model to call
// the named function instead of answering in prose. The shape follows the
// chat-completions wire format every bundled provider speaks; providers pass
// it through untouched.
func ForceTool(name string) any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name": name,
		},
	}
}

// Provider is the completion capability. Implementations must be safe for
// concurrent use.
type Provider interface {
	// Name identifies the provider in errors, logs, and metrics.
	Name() string

	// Completion performs a single completion call. Transient failures are
	// returned as-is; the retry policy lives with the caller.
	Completion(ctx context.Context, req *Request) (*Response, error)

	// HealthCheck verifies the upstream service is reachable.
	HealthCheck(ctx context.Context) error

	// SupportsNativeFunctionCalling reports whether the provider accepts
	// tool schemas. Tool-shaped operations fail fast on providers that
	// return false.
	SupportsNativeFunctionCalling() bool
}
