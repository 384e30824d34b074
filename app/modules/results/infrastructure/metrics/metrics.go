package resultsmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wordle"

// ResultsMetrics records ingestion outcomes.
type ResultsMetrics interface {
	RecordLines(ctx context.Context, read, skipped int)
	RecordKept(ctx context.Context, n int)
	RecordDropped(ctx context.Context, reason string, n int)
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
}

// PrometheusMetrics implements ResultsMetrics over a prometheus registry.
type PrometheusMetrics struct {
	lines      *prometheus.CounterVec
	kept       prometheus.Counter
	dropped    *prometheus.CounterVec
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_lines_total",
			Help:      "Chat log lines read, by outcome.",
		}, []string{"outcome"}),
		kept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_kept_total",
			Help:      "Results that survived normalization.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_dropped_total",
			Help:      "Results dropped during normalization, by reason.",
		}, []string{"reason"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Service operations, by operation and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{m.lines, m.kept, m.dropped, m.operations, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordLines(_ context.Context, read, skipped int) {
	m.lines.WithLabelValues("classified").Add(float64(read - skipped))
	m.lines.WithLabelValues("skipped").Add(float64(skipped))
}

func (m *PrometheusMetrics) RecordKept(_ context.Context, n int) {
	m.kept.Add(float64(n))
}

func (m *PrometheusMetrics) RecordDropped(_ context.Context, reason string, n int) {
	m.dropped.WithLabelValues(reason).Add(float64(n))
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "attempt").Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "success").Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "failure").Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, d time.Duration) {
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

// NewNoop returns metrics that record nothing.
func NewNoop() ResultsMetrics { return NoopMetrics{} }

func (NoopMetrics) RecordLines(context.Context, int, int) {}
func (NoopMetrics) RecordKept(context.Context, int) {}
func (NoopMetrics) RecordDropped(context.Context, string, int) {}
func (NoopMetrics) RecordOperationAttempt(context.Context, string) {}
func (NoopMetrics) RecordOperationSuccess(context.Context, string) {}
func (NoopMetrics) RecordOperationFailure(context.Context, string) {}
func (NoopMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
