package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/BaSui01/promptcast/llm"

// Metrics collects spans and meters for cast operations.
type Metrics struct {
	tracer trace.Tracer
	meter  metric.Meter

	castTotal       metric.Int64Counter
	attemptTotal    metric.Int64Counter
	errorTotal      metric.Int64Counter
	truncationTotal metric.Int64Counter
	tokenTotal      metric.Int64Counter

	castDuration metric.Float64Histogram

	activeCasts metric.Int64UpDownCounter
}

// NewMetrics builds a collector on the global OpenTelemetry providers.
func NewMetrics() (*Metrics, error) {
	tracer := otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)

	m := &Metrics{
		tracer: tracer,
		meter:  meter,
	}

	var err error

	m.castTotal, err = meter.Int64Counter("cast.total",
		metric.WithDescription("Total number of completed casts"),
		metric.WithUnit("{cast}"))
	if err != nil {
		return nil, err
	}

	m.attemptTotal, err = meter.Int64Counter("cast.attempt.total",
		metric.WithDescription("Total completion attempts, retries included"),
		metric.WithUnit("{attempt}"))
	if err != nil {
		return nil, err
	}

	m.errorTotal, err = meter.Int64Counter("cast.error.total",
		metric.WithDescription("Total number of failed casts"),
		metric.WithUnit("{error}"))
	if err != nil {
		return nil, err
	}

	m.truncationTotal, err = meter.Int64Counter("cast.truncation.total",
		metric.WithDescription("List answers truncated to their maximum size"),
		metric.WithUnit("{truncation}"))
	if err != nil {
		return nil, err
	}

	m.tokenTotal, err = meter.Int64Counter("cast.token.total",
		metric.WithDescription("Tokens consumed by cast completions"),
		metric.WithUnit("{token}"))
	if err != nil {
		return nil, err
	}

	m.castDuration, err = meter.Float64Histogram("cast.duration",
		metric.WithDescription("End-to-end cast duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30))
	if err != nil {
		return nil, err
	}

	m.activeCasts, err = meter.Int64UpDownCounter("cast.active",
		metric.WithDescription("Number of casts in flight"),
		metric.WithUnit("{cast}"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// CastAttrs identifies one cast operation.
type CastAttrs struct {
	Operation string
	Provider  string
	Model     string
	TraceID   string
}

// ResultAttrs carries the outcome of a finished cast.
type ResultAttrs struct {
	Status           string
	ErrorCode        string
	Attempts         int
	TokensPrompt     int
	TokensCompletion int
	Truncated        bool
	Duration         time.Duration
}

// StartCast opens the span for a cast and marks it active.
func (m *Metrics) StartCast(ctx context.Context, attrs CastAttrs) (context.Context, trace.Span) {
	ctx, span := m.tracer.Start(ctx, "cast."+attrs.Operation,
		trace.WithAttributes(
			attribute.String("cast.operation", attrs.Operation),
			attribute.String("cast.provider", attrs.Provider),
			attribute.String("cast.model", attrs.Model),
			attribute.String("cast.trace_id", attrs.TraceID),
		))

	m.activeCasts.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", attrs.Operation),
			attribute.String("provider", attrs.Provider)))

	return ctx, span
}

// EndCast closes the span and records every counter for the cast.
func (m *Metrics) EndCast(ctx context.Context, span trace.Span, req CastAttrs, res ResultAttrs) {
	defer span.End()

	commonAttrs := []attribute.KeyValue{
		attribute.String("operation", req.Operation),
		attribute.String("provider", req.Provider),
		attribute.String("model", req.Model),
		attribute.String("status", res.Status),
	}

	m.activeCasts.Add(ctx, -1,
		metric.WithAttributes(
			attribute.String("operation", req.Operation),
			attribute.String("provider", req.Provider)))

	m.castTotal.Add(ctx, 1, metric.WithAttributes(commonAttrs...))
	m.castDuration.Record(ctx, res.Duration.Seconds(), metric.WithAttributes(commonAttrs...))

	if res.Attempts > 0 {
		m.attemptTotal.Add(ctx, int64(res.Attempts), metric.WithAttributes(commonAttrs...))
	}

	totalTokens := int64(res.TokensPrompt + res.TokensCompletion)
	if totalTokens > 0 {
		m.tokenTotal.Add(ctx, int64(res.TokensPrompt), metric.WithAttributes(
			attribute.String("operation", req.Operation),
			attribute.String("model", req.Model),
			attribute.String("type", "prompt")))

		m.tokenTotal.Add(ctx, int64(res.TokensCompletion), metric.WithAttributes(
			attribute.String("operation", req.Operation),
			attribute.String("model", req.Model),
			attribute.String("type", "completion")))
	}

	if res.ErrorCode != "" {
		m.errorTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", req.Operation),
			attribute.String("provider", req.Provider),
			attribute.String("error_code", res.ErrorCode)))

		span.SetAttributes(attribute.String("error.code", res.ErrorCode))
	}

	if res.Truncated {
		m.truncationTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", req.Operation),
			attribute.String("model", req.Model)))

		span.SetAttributes(attribute.Bool("cast.truncated", true))
	}

	span.SetAttributes(
		attribute.String("cast.status", res.Status),
		attribute.Int("cast.attempts", res.Attempts),
		attribute.Int("cast.tokens.prompt", res.TokensPrompt),
		attribute.Int("cast.tokens.completion", res.TokensCompletion),
		attribute.Float64("cast.duration_ms", float64(res.Duration.Milliseconds())))
}

// Tracer exposes the underlying tracer for nested spans.
func (m *Metrics) Tracer() trace.Tracer {
	return m.tracer
}
