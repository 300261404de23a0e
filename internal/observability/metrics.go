package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jittakal/ringbuffer/pkg/buffer"
)

// Metrics holds the Prometheus metrics the exerciser reports.
type Metrics struct {
	CostBytes  prometheus.Gauge
	CostCount  prometheus.Gauge
	Ops        *prometheus.CounterVec
	OpErrors   *prometheus.CounterVec
	OpDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		CostBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "buffer_cost_bytes",
			Help: "Current sum of live block capacities held by the buffer manager",
		}),
		CostCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "buffer_cost_count",
			Help: "Current number of live blocks held by the buffer manager",
		}),
		Ops: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buffer_ops_total",
				Help: "Total number of buffer operations, by operation name",
			},
			[]string{"op"},
		),
		OpErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buffer_op_errors_total",
				Help: "Total number of buffer operation failures, by operation name and error",
			},
			[]string{"op", "error"},
		),
		OpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "buffer_op_duration_seconds",
				Help:    "Duration of buffer operations, by operation name",
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
			[]string{"op"},
		),
	}
}

// ObserveLimit records a Limit() snapshot's cost_bytes/cost_count.
func (m *Metrics) ObserveLimit(costBytes, costCount int64) {
	m.CostBytes.Set(float64(costBytes))
	m.CostCount.Set(float64(costCount))
}

// ObserveOp records one operation's outcome and latency.
func (m *Metrics) ObserveOp(op string, duration float64, err error) {
	m.Ops.WithLabelValues(op).Inc()
	m.OpDuration.WithLabelValues(op).Observe(duration)
	if err != nil {
		m.OpErrors.WithLabelValues(op, errorLabel(err)).Inc()
	}
}

// errorLabel maps an error to the sentinel it wraps, keeping the metric's
// error label low-cardinality instead of the full formatted message.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, buffer.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, buffer.ErrBufferFull):
		return "buffer_full"
	case errors.Is(err, buffer.ErrLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, buffer.ErrOutOfMemory):
		return "out_of_memory"
	case errors.Is(err, buffer.ErrNotFound):
		return "not_found"
	case errors.Is(err, buffer.ErrMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
