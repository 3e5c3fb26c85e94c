package promptcast

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/promptcast/config"
	"github.com/BaSui01/promptcast/internal/metrics"
	"github.com/BaSui01/promptcast/llm"
	"github.com/BaSui01/promptcast/llm/observability"
	"github.com/BaSui01/promptcast/llm/providers/openai"
	"github.com/BaSui01/promptcast/llm/retry"
	"github.com/BaSui01/promptcast/types"
)

// Caster runs the cast pipeline: prompt assembly, provider completion
// under retry, and schema-validated decoding. A Caster is safe for
// concurrent use; per-call state never leaks between invocations.
type Caster struct {
	provider  llm.Provider
	logger    *zap.Logger
	policy    retry.Policy
	models    config.ModelsConfig
	lists     config.ListsConfig
	obs       *observability.Metrics
	collector *metrics.Collector
}

// Option configures the Caster created by New.
type Option func(*Caster)

// WithProvider sets the completion provider. Required unless the Caster
// is built through NewFromConfig.
func WithProvider(p llm.Provider) Option {
	return func(c *Caster) { c.provider = p }
}

// WithLogger sets a custom zap logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *Caster) { c.logger = logger }
}

// WithRetryPolicy overrides the retry budget for upstream failures.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Caster) { c.policy = p }
}

// WithModels overrides the default and high-capability model names.
func WithModels(defaultModel, highCapability string) Option {
	return func(c *Caster) {
		c.models = config.ModelsConfig{Default: defaultModel, HighCapability: highCapability}
	}
}

// WithListBounds overrides the default list cardinality bounds applied
// when a call passes no WithMinValues/WithMaxValues.
func WithListBounds(minValues, maxValues int) Option {
	return func(c *Caster) {
		c.lists = config.ListsConfig{MinValues: minValues, MaxValues: maxValues}
	}
}

// WithCollector attaches a Prometheus collector. Nil disables Prometheus
// recording; OpenTelemetry instrumentation is always on and no-ops
// without a configured SDK.
func WithCollector(col *metrics.Collector) Option {
	return func(c *Caster) { c.collector = col }
}

// New creates a Caster. A provider is required; every other setting has
// a default.
func New(opts ...Option) (*Caster, error) {
	c := &Caster{
		logger: zap.NewNop(),
		policy: retry.DefaultPolicy(),
		models: config.DefaultModelsConfig(),
		lists:  config.DefaultListsConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.provider == nil {
		return nil, types.NewError(types.ErrPrecondition,
			"provider is required: use WithProvider or NewFromConfig")
	}

	obs, err := observability.NewMetrics()
	if err != nil {
		return nil, err
	}
	c.obs = obs
	return c, nil
}

// NewFromConfig builds the provider and pipeline settings from an
// explicit configuration. Options are applied afterwards and win over
// the configured values.
func NewFromConfig(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Caster, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, types.NewError(types.ErrPrecondition, "invalid configuration").WithCause(err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.Provider.RateLimitRPS > 0 {
		burst := cfg.Provider.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.Provider.RateLimitRPS), burst)
	}

	var provider llm.Provider
	switch cfg.Provider.Name {
	case "openai":
		provider = openai.New(openai.Config{
			APIKey:       cfg.Provider.APIKey,
			BaseURL:      cfg.Provider.BaseURL,
			Model:        cfg.Models.Default,
			Organization: cfg.Provider.Organization,
			Timeout:      cfg.Provider.Timeout,
			Limiter:      limiter,
		}, logger)
	default:
		return nil, types.NewErrorf(types.ErrPrecondition, "unsupported provider %q", cfg.Provider.Name)
	}

	base := []Option{
		WithProvider(provider),
		WithLogger(logger),
		WithRetryPolicy(retry.Policy{
			MaxAttempts:  cfg.Retry.MaxAttempts,
			InitialDelay: cfg.Retry.InitialDelay,
			Multiplier:   cfg.Retry.Multiplier,
			MaxDelay:     cfg.Retry.MaxDelay,
		}),
		WithModels(cfg.Models.Default, cfg.Models.HighCapability),
		WithListBounds(cfg.Lists.MinValues, cfg.Lists.MaxValues),
	}
	return New(append(base, opts...)...)
}

// Provider returns the configured completion provider.
func (c *Caster) Provider() llm.Provider {
	return c.provider
}

// model resolves the model name for one call.
func (c *Caster) model(o callOptions) string {
	if o.highCapability {
		if c.models.HighCapability != "" {
			return c.models.HighCapability
		}
		return openai.HighCapabilityModel
	}
	if c.models.Default != "" {
		return c.models.Default
	}
	return openai.DefaultModel
}
