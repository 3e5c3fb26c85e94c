package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector records cast metrics into a Prometheus registry.
type Collector struct {
	castsTotal       *prometheus.CounterVec
	castDuration     *prometheus.HistogramVec
	attemptsTotal    *prometheus.CounterVec
	tokensUsed       *prometheus.CounterVec
	truncationsTotal *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector creates a collector under the given namespace. A nil
// registerer falls back to the default registry.
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.castsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "casts_total",
			Help:      "Total number of finished casts",
		},
		[]string{"operation", "model", "status"},
	)

	c.castDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cast_duration_seconds",
			Help:      "End-to-end cast duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"operation", "model"},
	)

	c.attemptsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_attempts_total",
			Help:      "Total completion attempts, retries included",
		},
		[]string{"operation", "model"},
	)

	c.tokensUsed = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_used_total",
			Help:      "Total number of tokens used",
		},
		[]string{"model", "type"}, // type: prompt, completion
	)

	c.truncationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_truncations_total",
			Help:      "List answers cut down to their maximum size",
		},
		[]string{"operation"},
	)

	c.errorsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cast_errors_total",
			Help:      "Total number of failed casts",
		},
		[]string{"operation", "code"},
	)

	logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// RecordCast records one finished cast.
func (c *Collector) RecordCast(operation, model, status string, duration time.Duration, promptTokens, completionTokens int) {
	c.castsTotal.WithLabelValues(operation, model, status).Inc()
	c.castDuration.WithLabelValues(operation, model).Observe(duration.Seconds())
	c.tokensUsed.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	c.tokensUsed.WithLabelValues(model, "completion").Add(float64(completionTokens))
}

// RecordAttempts records how many completion calls one cast spent.
func (c *Collector) RecordAttempts(operation, model string, attempts int) {
	c.attemptsTotal.WithLabelValues(operation, model).Add(float64(attempts))
}

// RecordTruncation records a list answer cut down to its maximum.
func (c *Collector) RecordTruncation(operation string) {
	c.truncationsTotal.WithLabelValues(operation).Inc()
}

// RecordError records a failed cast by error code.
func (c *Collector) RecordError(operation, code string) {
	c.errorsTotal.WithLabelValues(operation, code).Inc()
}
