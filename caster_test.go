package promptcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/promptcast/config"
	"github.com/BaSui01/promptcast/llm"
	"github.com/BaSui01/promptcast/llm/retry"
	"github.com/BaSui01/promptcast/testutil"
	"github.com/BaSui01/promptcast/testutil/mocks"
	"github.com/BaSui01/promptcast/types"
)

// newTestCaster builds a Caster around the given provider with a small,
// non-sleeping retry budget.
func newTestCaster(t *testing.T, p llm.Provider, opts ...Option) *Caster {
	t.Helper()
	base := []Option{
		WithProvider(p),
		WithRetryPolicy(retry.Policy{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			Multiplier:   2,
			Sleep:        func(context.Context, time.Duration) error { return nil },
		}),
	}
	c, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresProvider(t *testing.T) {
	_, err := New()
	require.Error(t, err)
	assert.Equal(t, types.ErrPrecondition, types.Code(err))
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(WithProvider(mocks.NewMockProvider()))
	require.NoError(t, err)

	assert.Equal(t, "gpt-5-mini", c.models.Default)
	assert.Equal(t, "gpt-5.2", c.models.HighCapability)
	assert.Equal(t, 1, c.lists.MinValues)
	assert.Equal(t, 5, c.lists.MaxValues)
	assert.Equal(t, 10, c.policy.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, c.policy.InitialDelay)
}

func TestNew_Options(t *testing.T) {
	c, err := New(
		WithProvider(mocks.NewMockProvider()),
		WithModels("local-llama", "local-llama-large"),
		WithListBounds(2, 9),
	)
	require.NoError(t, err)

	assert.Equal(t, "local-llama", c.model(callOptions{}))
	assert.Equal(t, "local-llama-large", c.model(callOptions{highCapability: true}))
	assert.Equal(t, 2, c.lists.MinValues)
	assert.Equal(t, 9, c.lists.MaxValues)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.APIKey = "sk-test"
	cfg.Retry.MaxAttempts = 4
	cfg.Retry.InitialDelay = 250 * time.Millisecond

	c, err := NewFromConfig(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "openai", c.Provider().Name())
	assert.Equal(t, 4, c.policy.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, c.policy.InitialDelay)
}

func TestNewFromConfig_UnsupportedProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.Name = "anthropic"

	_, err := NewFromConfig(cfg, nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrPrecondition, types.Code(err))
	assert.Contains(t, err.Error(), "anthropic")
}

func TestNewFromConfig_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Retry.MaxAttempts = 0

	_, err := NewFromConfig(cfg, nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrPrecondition, types.Code(err))
}

func TestNewFromConfig_OptionsWin(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.APIKey = "sk-test"

	mock := mocks.NewMockProvider()
	c, err := NewFromConfig(cfg, nil, WithProvider(mock))
	require.NoError(t, err)
	assert.Equal(t, "mock", c.Provider().Name())
}

func TestCaster_ModelSelection(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":true}`)
	c := newTestCaster(t, mock)

	_, err := c.Bool(context.Background(), "Is the sky blue?")
	require.NoError(t, err)
	require.NotNil(t, mock.GetLastCall())
	assert.Equal(t, "gpt-5-mini", mock.GetLastCall().Request.Model)

	_, err = c.Bool(context.Background(), "Is the sky blue?", WithHighCapability())
	require.NoError(t, err)
	assert.Equal(t, "gpt-5.2", mock.GetLastCall().Request.Model)
}

func TestCaster_WireDirectives(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":true}`)
	c := newTestCaster(t, mock)

	_, err := c.Bool(context.Background(), "Is water wet?")
	require.NoError(t, err)

	req := mock.GetLastCall().Request
	assert.Zero(t, req.Temperature)
	assert.NotEmpty(t, req.TraceID)
	require.Len(t, req.Tools, 1)
	assert.Equal(t, "answer", req.Tools[0].Name)
	assert.Equal(t, llm.ForceTool("answer"), req.ToolChoice)

	params := testutil.MustParseJSON[map[string]any](string(req.Tools[0].Parameters))
	assert.Equal(t, "object", params["type"])
	assert.Contains(t, params["properties"], "value")

	require.Len(t, req.Messages, 2)
	assert.Equal(t, types.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, types.RoleUser, req.Messages[1].Role)
	assert.Equal(t, "Is water wet?", req.Messages[1].Content)
}

func TestCaster_TraceIDFromContext(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":true}`)
	c := newTestCaster(t, mock)

	ctx := WithTraceID(context.Background(), "trace-42")
	_, err := c.Bool(ctx, "Is water wet?")
	require.NoError(t, err)

	assert.Equal(t, "trace-42", mock.GetLastCall().Request.TraceID)
}

func TestCaster_ContextCancelled(t *testing.T) {
	mock := mocks.NewMockProvider().WithDelay(time.Second)
	c := newTestCaster(t, mock)

	_, err := c.Bool(testutil.CancelledContext(), "Is water wet?")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCaster_ProviderWithoutToolSupport(t *testing.T) {
	mock := mocks.NewMockProvider().WithoutNativeFunctionCalling()
	c := newTestCaster(t, mock)

	_, err := c.Bool(context.Background(), "Is water wet?")
	require.Error(t, err)
	assert.Equal(t, types.ErrPrecondition, types.Code(err))
	assert.Zero(t, mock.GetCallCount(), "tool-shaped casts must fail before any provider call")

	// Free text needs no tool support.
	mock.Reset()
	text, err := newTestCaster(t, mock.WithContent("hello")).Text(context.Background(), "Say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestCaster_RetryExhaustionSurfacesLastError(t *testing.T) {
	upstream := types.NewError(types.ErrUpstream, "connection refused").WithProvider("mock")
	mock := mocks.NewErrorProvider(upstream)
	c := newTestCaster(t, mock)

	_, err := c.Bool(context.Background(), "Is water wet?")
	require.Error(t, err)
	require.ErrorIs(t, err, upstream, "the final attempt's error must surface unchanged")
	assert.Equal(t, 3, mock.GetCallCount())
}

func TestCaster_RetryRecoversAfterTransientFailures(t *testing.T) {
	upstream := types.NewError(types.ErrRateLimited, "slow down").WithHTTPStatus(429)
	mock := mocks.NewFlakyProvider(2, upstream, `{"value":true}`)
	c := newTestCaster(t, mock)

	got, err := c.Bool(context.Background(), "Is water wet?")
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 3, mock.GetCallCount())
}

func TestCaster_MissingToolCallIsRetriedThenFails(t *testing.T) {
	mock := mocks.NewMockProvider().WithContent("I would rather chat than call functions")
	c := newTestCaster(t, mock)

	_, err := c.Bool(context.Background(), "Is water wet?")
	require.Error(t, err)
	assert.Equal(t, types.ErrUpstream, types.Code(err))
	assert.Equal(t, 3, mock.GetCallCount())
}

func TestCaster_DecodeFailureIsNotRetried(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":`)
	c := newTestCaster(t, mock)

	_, err := c.Bool(context.Background(), "Is water wet?")
	require.Error(t, err)
	assert.Equal(t, types.ErrDecode, types.Code(err))
	assert.Equal(t, 1, mock.GetCallCount(), "decoding failures must not consume retry budget")
}
