package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/promptcast/internal/tlsutil"
	"github.com/BaSui01/promptcast/llm"
	"github.com/BaSui01/promptcast/types"
)

// Config holds the configuration for an OpenAI-compatible provider.
type Config struct {
	// ProviderName is the unique identifier for this provider
	// (e.g. "openai", "vllm").
	ProviderName string

	// APIKey is the authentication key. A missing key is not an error
	// until the first call is attempted.
	APIKey string

	// BaseURL is the base URL of the API (e.g. "https://api.openai.com").
	BaseURL string

	// DefaultModel is used when a request names no model.
	DefaultModel string

	// Timeout is the HTTP client timeout. Defaults to 60s if zero.
	Timeout time.Duration

	// EndpointPath is the chat completions path. Defaults to
	// "/v1/chat/completions".
	EndpointPath string

	// ModelsEndpoint is the models list path used by health checks.
	// Defaults to "/v1/models".
	ModelsEndpoint string

	// BuildHeaders optionally sets custom headers on each request. If
	// nil, "Authorization: Bearer <apiKey>" is used.
	BuildHeaders func(req *http.Request, apiKey string)

	// RequestHook optionally mutates the wire body before sending. Use
	// it for vendor-specific fields.
	RequestHook func(req *llm.Request, body *ChatRequest)

	// Limiter throttles outgoing calls when set. Waiting respects the
	// request context.
	Limiter *rate.Limiter

	// SupportsTools indicates whether the endpoint accepts tool
	// schemas. Defaults to true if not set.
	SupportsTools *bool
}

// Provider is the base implementation for OpenAI-compatible endpoints.
// Embed it in a vendor binding and override what differs.
type Provider struct {
	Cfg    Config
	Client *http.Client
	Logger *zap.Logger
}

// New creates an OpenAI-compatible provider with the given config.
func New(cfg Config, logger *zap.Logger) *Provider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/v1/chat/completions"
	}
	if cfg.ModelsEndpoint == "" {
		cfg.ModelsEndpoint = "/v1/models"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		Cfg:    cfg,
		Client: tlsutil.SecureHTTPClient(timeout),
		Logger: logger.With(zap.String("provider", cfg.ProviderName)),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return p.Cfg.ProviderName }

// SupportsNativeFunctionCalling reports whether the endpoint accepts
// tool schemas.
func (p *Provider) SupportsNativeFunctionCalling() bool {
	if p.Cfg.SupportsTools != nil {
		return *p.Cfg.SupportsTools
	}
	return true
}

// SetBuildHeaders replaces the header builder.
func (p *Provider) SetBuildHeaders(fn func(req *http.Request, apiKey string)) {
	p.Cfg.BuildHeaders = fn
}

// buildHeaders applies headers to the HTTP request.
func (p *Provider) buildHeaders(req *http.Request, apiKey string) {
	if p.Cfg.BuildHeaders != nil {
		p.Cfg.BuildHeaders(req, apiKey)
		return
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
}

// endpoint builds the full URL for a given path.
func (p *Provider) endpoint(path string) string {
	return fmt.Sprintf("%s%s", strings.TrimRight(p.Cfg.BaseURL, "/"), path)
}

// HealthCheck verifies the endpoint is reachable by listing models.
func (p *Provider) HealthCheck(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(p.Cfg.ModelsEndpoint), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	p.buildHeaders(httpReq, p.Cfg.APIKey)

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return types.NewError(types.ErrUpstream, err.Error()).
			WithHTTPStatus(http.StatusBadGateway).
			WithProvider(p.Name()).
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := ReadErrorMessage(resp.Body)
		return MapHTTPError(resp.StatusCode, msg, p.Name())
	}
	return nil
}

// Completion performs one non-streaming chat completion.
func (p *Provider) Completion(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if strings.TrimSpace(p.Cfg.APIKey) == "" {
		return nil, types.NewError(types.ErrUnauthorized, "api key is not configured").
			WithHTTPStatus(http.StatusUnauthorized).
			WithProvider(p.Name())
	}

	if p.Cfg.Limiter != nil {
		if err := p.Cfg.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	model := req.Model
	if model == "" {
		model = p.Cfg.DefaultModel
	}

	body := ChatRequest{
		Model:       model,
		Messages:    convertMessages(req.Messages),
		Tools:       convertTools(req.Tools),
		ToolChoice:  req.ToolChoice,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	if p.Cfg.RequestHook != nil {
		p.Cfg.RequestHook(req, &body)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(p.Cfg.EndpointPath), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	p.buildHeaders(httpReq, p.Cfg.APIKey)

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, types.NewError(types.ErrUpstream, err.Error()).
			WithHTTPStatus(http.StatusBadGateway).
			WithProvider(p.Name()).
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := ReadErrorMessage(resp.Body)
		p.Logger.Debug("completion rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("model", model))
		return nil, MapHTTPError(resp.StatusCode, msg, p.Name())
	}

	var wire ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, types.NewError(types.ErrUpstream, "malformed completion response").
			WithHTTPStatus(http.StatusBadGateway).
			WithProvider(p.Name()).
			WithCause(err)
	}

	return toResponse(wire, p.Name()), nil
}
