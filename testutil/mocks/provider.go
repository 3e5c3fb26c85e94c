// Package mocks provides test doubles for the llm.Provider interface.
//
// MockProvider supports fixed answers, scripted failure sequences, and
// call recording, so casts can be exercised without network access.
package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/BaSui01/promptcast/llm"
	"github.com/BaSui01/promptcast/types"
)

// MockCall records a single Completion invocation.
type MockCall struct {
	Request  *llm.Request
	Response *llm.Response
	Error    error
}

// MockProvider is a scriptable llm.Provider.
type MockProvider struct {
	mu sync.Mutex

	content   string
	arguments string
	err       error
	errSeq    []error
	healthErr error

	promptTokens     int
	completionTokens int
	supportsTools    bool
	delay            time.Duration

	completionFunc func(ctx context.Context, req *llm.Request) (*llm.Response, error)

	calls     []MockCall
	callCount int
}

// NewMockProvider returns a provider that answers every call with a tool
// call carrying {"value":"ok"}.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		arguments:        `{"value":"ok"}`,
		promptTokens:     10,
		completionTokens: 20,
		supportsTools:    true,
	}
}

// WithContent makes the provider answer with plain text instead of a
// tool call.
func (m *MockProvider) WithContent(content string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = content
	m.arguments = ""
	return m
}

// WithToolCallArguments sets the JSON arguments of the answering tool call.
func (m *MockProvider) WithToolCallArguments(arguments string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arguments = arguments
	m.content = ""
	return m
}

// WithError makes every call fail with err.
func (m *MockProvider) WithError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithErrorSequence scripts the first len(errs) calls to fail in order;
// later calls succeed with the configured answer.
func (m *MockProvider) WithErrorSequence(errs ...error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errSeq = append([]error{}, errs...)
	return m
}

// WithUsage sets the token usage reported on every response.
func (m *MockProvider) WithUsage(prompt, completion int) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promptTokens = prompt
	m.completionTokens = completion
	return m
}

// WithDelay makes each call block for d before answering, honoring
// context cancellation.
func (m *MockProvider) WithDelay(d time.Duration) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// WithoutNativeFunctionCalling makes the provider report no tool support.
func (m *MockProvider) WithoutNativeFunctionCalling() *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.supportsTools = false
	return m
}

// WithHealthError makes HealthCheck fail with err.
func (m *MockProvider) WithHealthError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthErr = err
	return m
}

// WithCompletionFunc replaces the scripted behavior with fn. Calls are
// still recorded.
func (m *MockProvider) WithCompletionFunc(fn func(ctx context.Context, req *llm.Request) (*llm.Response, error)) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completionFunc = fn
	return m
}

// Name implements llm.Provider.
func (m *MockProvider) Name() string { return "mock" }

// SupportsNativeFunctionCalling implements llm.Provider.
func (m *MockProvider) SupportsNativeFunctionCalling() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.supportsTools
}

// HealthCheck implements llm.Provider.
func (m *MockProvider) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthErr
}

// Completion implements llm.Provider.
func (m *MockProvider) Completion(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	m.mu.Lock()
	delay := m.delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++

	if len(m.errSeq) > 0 {
		err := m.errSeq[0]
		m.errSeq = m.errSeq[1:]
		if err != nil {
			m.calls = append(m.calls, MockCall{Request: req, Error: err})
			return nil, err
		}
	}

	if m.err != nil {
		m.calls = append(m.calls, MockCall{Request: req, Error: m.err})
		return nil, m.err
	}

	if m.completionFunc != nil {
		resp, err := m.completionFunc(ctx, req)
		m.calls = append(m.calls, MockCall{Request: req, Response: resp, Error: err})
		return resp, err
	}

	msg := types.Message{Role: types.RoleAssistant, Content: m.content}
	finish := "stop"
	if m.arguments != "" {
		name := "answer"
		if len(req.Tools) > 0 {
			name = req.Tools[0].Name
		}
		msg.ToolCalls = []types.ToolCall{{
			ID:        "call-1",
			Name:      name,
			Arguments: json.RawMessage(m.arguments),
		}}
		finish = "tool_calls"
	}

	resp := &llm.Response{
		ID:       "mock-response-id",
		Provider: "mock",
		Model:    req.Model,
		Choices: []llm.Choice{
			{Index: 0, FinishReason: finish, Message: msg},
		},
		Usage: llm.Usage{
			PromptTokens:     m.promptTokens,
			CompletionTokens: m.completionTokens,
			TotalTokens:      m.promptTokens + m.completionTokens,
		},
		CreatedAt: time.Now(),
	}

	m.calls = append(m.calls, MockCall{Request: req, Response: resp})
	return resp, nil
}

// GetCalls returns a copy of all recorded calls.
func (m *MockProvider) GetCalls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall{}, m.calls...)
}

// GetCallCount returns how many times Completion was invoked.
func (m *MockProvider) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// GetLastCall returns the most recent call, or nil.
func (m *MockProvider) GetLastCall() *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Reset clears recorded calls and scripted errors.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.callCount = 0
	m.err = nil
	m.errSeq = nil
}

// NewAnswerProvider returns a provider whose tool call carries the given
// JSON arguments.
func NewAnswerProvider(arguments string) *MockProvider {
	return NewMockProvider().WithToolCallArguments(arguments)
}

// NewErrorProvider returns a provider that always fails with err.
func NewErrorProvider(err error) *MockProvider {
	return NewMockProvider().WithError(err)
}

// NewFlakyProvider returns a provider that fails the first n calls with
// err and then answers with the given JSON arguments.
func NewFlakyProvider(n int, err error, arguments string) *MockProvider {
	errs := make([]error, n)
	for i := range errs {
		errs[i] = err
	}
	return NewMockProvider().WithToolCallArguments(arguments).WithErrorSequence(errs...)
}
