// Package openai binds the OpenAI platform endpoints to the shared
// OpenAI-compatible provider base.
package openai

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/promptcast/llm/providers/openaicompat"
)

const (
	// DefaultBaseURL is the hosted OpenAI API.
	DefaultBaseURL = "https://api.openai.com"

	// DefaultModel is the everyday model used when the caller does not
	// ask for more capability.
	DefaultModel = "gpt-5-mini"

	// HighCapabilityModel is the stronger model selected by the
	// high-capability option.
	HighCapabilityModel = "gpt-5.2"
)

// Config holds the OpenAI binding configuration.
type Config struct {
	// APIKey authenticates against the platform.
	APIKey string

	// BaseURL overrides the hosted endpoint, e.g. for a proxy.
	BaseURL string

	// Model overrides the default model.
	Model string

	// Organization is sent as the OpenAI-Organization header when set.
	Organization string

	// Timeout is the HTTP client timeout.
	Timeout time.Duration

	// Limiter throttles outgoing calls when set.
	Limiter *rate.Limiter
}

// Provider is the OpenAI platform binding.
type Provider struct {
	*openaicompat.Provider
}

// New creates an OpenAI provider. Zero-value config fields fall back
// to the hosted endpoint and the default model.
func New(cfg Config, logger *zap.Logger) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	p := &Provider{
		Provider: openaicompat.New(openaicompat.Config{
			ProviderName: "openai",
			APIKey:       cfg.APIKey,
			BaseURL:      baseURL,
			DefaultModel: model,
			Timeout:      cfg.Timeout,
			Limiter:      cfg.Limiter,
		}, logger),
	}

	if cfg.Organization != "" {
		org := cfg.Organization
		p.SetBuildHeaders(func(req *http.Request, apiKey string) {
			req.Header.Set("Authorization", "Bearer "+apiKey)
			req.Header.Set("OpenAI-Organization", org)
			req.Header.Set("Content-Type", "application/json")
		})
	}

	return p
}
