package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskwell/autoassign/types"
)

// PrometheusCollector implements types.MetricsCollector backed by
// Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	assignments   *prometheus.CounterVec
	moves         *prometheus.CounterVec
	batchDuration *prometheus.HistogramVec
	utilization   prometheus.Histogram
	notifications *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "autoassign" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "autoassign"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.assignments = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "assignments_total",
			Help:      "Assignment outcomes (assigned, no_candidate, conflict, error).",
		}, []string{"outcome"})

		p.moves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "moves_total",
			Help:      "Redistribution move outcomes (moved, conflict, error).",
		}, []string{"outcome"})

		p.batchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of batch operations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms .. ~10s
		}, []string{"operation"})

		p.utilization = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "workload",
			Name:      "utilization_percent",
			Help:      "Candidate utilization percentages observed at scoring time.",
			Buckets:   []float64{10, 25, 50, 75, 87.5, 90, 100, 110, 125, 150},
		})

		p.notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "workload",
			Name:      "notifications_total",
			Help:      "Workload alert delivery attempts by result (success, failure).",
		}, []string{"result"})

		p.reg.MustRegister(p.assignments)
		p.reg.MustRegister(p.moves)
		p.reg.MustRegister(p.batchDuration)
		p.reg.MustRegister(p.utilization)
		p.reg.MustRegister(p.notifications)
	})
}

// RecordAssignment increments the assignment outcome counter.
func (p *PrometheusCollector) RecordAssignment(outcome string) {
	p.ensureRegistered()
	p.assignments.WithLabelValues(outcome).Inc()
}

// RecordMove increments the move outcome counter.
func (p *PrometheusCollector) RecordMove(outcome string) {
	p.ensureRegistered()
	p.moves.WithLabelValues(outcome).Inc()
}

// ObserveBatchDuration observes the wall time of one batch operation.
func (p *PrometheusCollector) ObserveBatchDuration(operation string, seconds float64) {
	p.ensureRegistered()
	p.batchDuration.WithLabelValues(operation).Observe(seconds)
}

// ObserveUtilization observes a utilization percentage seen at scoring time.
func (p *PrometheusCollector) ObserveUtilization(percent float64) {
	p.ensureRegistered()
	p.utilization.Observe(percent)
}

// RecordNotification increments the notification result counter.
func (p *PrometheusCollector) RecordNotification(success bool) {
	p.ensureRegistered()
	result := "success"
	if !success {
		result = "failure"
	}
	p.notifications.WithLabelValues(result).Inc()
}
