// Package fixtures provides canned llm.Response values for tests.
package fixtures

import (
	"encoding/json"
	"time"

	"github.com/BaSui01/promptcast/llm"
	"github.com/BaSui01/promptcast/types"
)

// TextResponse returns a plain assistant-text response.
func TextResponse(content string) *llm.Response {
	return &llm.Response{
		ID:       "resp-001",
		Provider: "mock",
		Model:    "gpt-5-mini",
		Choices: []llm.Choice{
			{
				Index:        0,
				FinishReason: "stop",
				Message: types.Message{
					Role:    types.RoleAssistant,
					Content: content,
				},
			},
		},
		Usage:     UsageOf(10, 20),
		CreatedAt: time.Now(),
	}
}

// AnswerResponse returns a response whose single tool call is named
// "answer" and carries the given JSON arguments.
func AnswerResponse(arguments string) *llm.Response {
	return &llm.Response{
		ID:       "resp-tool-001",
		Provider: "mock",
		Model:    "gpt-5-mini",
		Choices: []llm.Choice{
			{
				Index:        0,
				FinishReason: "tool_calls",
				Message: types.Message{
					Role: types.RoleAssistant,
					ToolCalls: []types.ToolCall{
						{
							ID:        "call-1",
							Name:      "answer",
							Arguments: json.RawMessage(arguments),
						},
					},
				},
			},
		},
		Usage:     UsageOf(50, 30),
		CreatedAt: time.Now(),
	}
}

// EmptyResponse returns a response with no choices, as some gateways
// produce on content filtering.
func EmptyResponse() *llm.Response {
	return &llm.Response{
		ID:        "resp-empty-001",
		Provider:  "mock",
		Model:     "gpt-5-mini",
		Usage:     UsageOf(50, 0),
		CreatedAt: time.Now(),
	}
}

// ResponseWithUsage returns a text response with custom token usage.
func ResponseWithUsage(content string, prompt, completion int) *llm.Response {
	resp := TextResponse(content)
	resp.Usage = UsageOf(prompt, completion)
	return resp
}

// UsageOf builds a Usage with the total filled in.
func UsageOf(prompt, completion int) llm.Usage {
	return llm.Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}
