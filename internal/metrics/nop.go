// Package metrics provides types.MetricsCollector implementations: a no-op
// collector used by default and a Prometheus-backed one.
package metrics

import "github.com/taskwell/autoassign/types"

// NopMetrics implements a no-op metrics collector.
//
// All observations are discarded. This is the engine's default when no
// WithMetrics option is given.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordAssignment discards the assignment outcome.
func (n *NopMetrics) RecordAssignment(_ /* outcome */ string) {
	// No-op
}

// RecordMove discards the move outcome.
func (n *NopMetrics) RecordMove(_ /* outcome */ string) {
	// No-op
}

// ObserveBatchDuration discards the batch duration observation.
func (n *NopMetrics) ObserveBatchDuration(_ /* operation */ string, _ /* seconds */ float64) {
	// No-op
}

// ObserveUtilization discards the utilization observation.
func (n *NopMetrics) ObserveUtilization(_ /* percent */ float64) {
	// No-op
}

// RecordNotification discards the notification outcome.
func (n *NopMetrics) RecordNotification(_ /* success */ bool) {
	// No-op
}
