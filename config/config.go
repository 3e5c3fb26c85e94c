package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the complete promptcast configuration.
type Config struct {
	// Provider configures the completion endpoint.
	Provider ProviderConfig `yaml:"provider" env:"PROVIDER"`

	// Models names the default and high-capability models.
	Models ModelsConfig `yaml:"models" env:"MODELS"`

	// Retry shapes the backoff schedule around completion calls.
	Retry RetryConfig `yaml:"retry" env:"RETRY"`

	// Lists sets the default cardinality window for list casts.
	Lists ListsConfig `yaml:"lists" env:"LISTS"`

	// Log configures the zap logger.
	Log LogConfig `yaml:"log" env:"LOG"`

	// Telemetry configures OTLP export.
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`

	// Metrics configures the Prometheus collector.
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`
}

// ProviderConfig configures the completion endpoint.
type ProviderConfig struct {
	// Name selects the binding, e.g. "openai".
	Name string `yaml:"name" env:"NAME"`
	// APIKey authenticates against the endpoint. A missing key fails at
	// the first call, never at load time.
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// BaseURL overrides the binding's hosted endpoint.
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// Organization is sent as the OpenAI-Organization header when set.
	Organization string `yaml:"organization" env:"ORGANIZATION"`
	// Timeout bounds each HTTP call.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// RateLimitRPS throttles outgoing calls when positive.
	RateLimitRPS float64 `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
	// RateLimitBurst is the limiter's burst size.
	RateLimitBurst int `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
}

// ModelsConfig names the models casts run against.
type ModelsConfig struct {
	// Default serves every cast unless more capability is requested.
	Default string `yaml:"default" env:"DEFAULT"`
	// HighCapability serves casts that opt into the stronger model.
	HighCapability string `yaml:"high_capability" env:"HIGH_CAPABILITY"`
}

// RetryConfig shapes the backoff schedule.
type RetryConfig struct {
	// MaxAttempts caps total tries, first call included.
	MaxAttempts int `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
	// InitialDelay is the wait after the first failure.
	InitialDelay time.Duration `yaml:"initial_delay" env:"INITIAL_DELAY"`
	// Multiplier scales the delay after each failure.
	Multiplier float64 `yaml:"multiplier" env:"MULTIPLIER"`
	// MaxDelay caps the delay growth; zero means uncapped.
	MaxDelay time.Duration `yaml:"max_delay" env:"MAX_DELAY"`
}

// ListsConfig sets the default cardinality window for list casts.
type ListsConfig struct {
	// MinValues is the smallest acceptable answer size.
	MinValues int `yaml:"min_values" env:"MIN_VALUES"`
	// MaxValues is the largest; longer answers are cut down to it.
	MaxValues int `yaml:"max_values" env:"MAX_VALUES"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL"`
	// Format: json or console.
	Format string `yaml:"format" env:"FORMAT"`
	// OutputPaths lists sinks, e.g. stdout or file paths.
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	// EnableCaller annotates entries with file:line.
	EnableCaller bool `yaml:"enable_caller" env:"ENABLE_CALLER"`
	// EnableStacktrace attaches stacks at error level.
	EnableStacktrace bool `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// TelemetryConfig configures OTLP export.
type TelemetryConfig struct {
	// Enabled switches span and meter export on.
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// OTLPEndpoint is the collector's gRPC address.
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	// ServiceName identifies this process in traces.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
	// SampleRate is the trace sampling ratio in [0, 1].
	SampleRate float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// DefaultConfig returns the configuration every load starts from.
func DefaultConfig() *Config {
	return &Config{
		Provider:  DefaultProviderConfig(),
		Models:    DefaultModelsConfig(),
		Retry:     DefaultRetryConfig(),
		Lists:     DefaultListsConfig(),
		Log:       DefaultLogConfig(),
		Telemetry: DefaultTelemetryConfig(),
		Metrics:   DefaultMetricsConfig(),
	}
}

// DefaultProviderConfig returns the default provider configuration.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Name:    "openai",
		Timeout: 60 * time.Second,
	}
}

// DefaultModelsConfig returns the default model pair.
func DefaultModelsConfig() ModelsConfig {
	return ModelsConfig{
		Default:        "gpt-5-mini",
		HighCapability: "gpt-5.2",
	}
}

// DefaultRetryConfig returns the default backoff schedule: ten
// attempts, 500ms initial delay, doubling.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  10,
		InitialDelay: 500 * time.Millisecond,
		Multiplier:   2,
	}
}

// DefaultListsConfig returns the default cardinality window.
func DefaultListsConfig() ListsConfig {
	return ListsConfig{
		MinValues: 1,
		MaxValues: 5,
	}
}

// DefaultLogConfig returns the default logging configuration. Logs go to
// stderr so that stdout stays free for results.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stderr"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig returns the default telemetry configuration.
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "promptcast",
		SampleRate:   0.1,
	}
}

// DefaultMetricsConfig returns the default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "promptcast",
	}
}

// Validate reports structural problems in the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.Models.Default == "" {
		errs = append(errs, "models.default must not be empty")
	}
	if c.Models.HighCapability == "" {
		errs = append(errs, "models.high_capability must not be empty")
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, "retry.max_attempts must be at least 1")
	}
	if c.Retry.InitialDelay < 0 {
		errs = append(errs, "retry.initial_delay must not be negative")
	}
	if c.Lists.MinValues < 0 {
		errs = append(errs, "lists.min_values must not be negative")
	}
	if c.Lists.MinValues >= c.Lists.MaxValues {
		errs = append(errs, "lists.min_values must be below lists.max_values")
	}
	if c.Provider.RateLimitRPS < 0 {
		errs = append(errs, "provider.rate_limit_rps must not be negative")
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		errs = append(errs, "telemetry.sample_rate must be within [0, 1]")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
