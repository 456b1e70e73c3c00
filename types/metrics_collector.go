package types

// MetricsCollector defines methods for recording engine metrics.
//
// Implementations must be safe for concurrent use and should never block;
// the engine calls them inline between batch items.
//
// This interface composes smaller, domain-focused interfaces so embedders
// can satisfy only the slice they care about and embed a no-op for the rest.
type MetricsCollector interface {
	AssignmentMetrics
	WorkloadMetrics
}

// AssignmentMetrics covers assignment and redistribution outcomes.
type AssignmentMetrics interface {
	// RecordAssignment records one task outcome in AssignUnassigned.
	//
	// Parameters:
	//   - outcome: "assigned", "no_candidate", "conflict", or "error"
	RecordAssignment(outcome string)

	// RecordMove records one task outcome in RedistributeWorkload.
	//
	// Parameters:
	//   - outcome: "moved", "conflict", or "error"
	RecordMove(outcome string)

	// ObserveBatchDuration records the wall time of one batch operation.
	//
	// Parameters:
	//   - operation: "assign_unassigned" or "redistribute"
	//   - seconds: Elapsed time in seconds
	ObserveBatchDuration(operation string, seconds float64)
}

// WorkloadMetrics covers derived workload observations.
type WorkloadMetrics interface {
	// ObserveUtilization records a user's utilization percentage as seen
	// at scoring time.
	ObserveUtilization(percent float64)

	// RecordNotification records a workload alert delivery attempt.
	RecordNotification(success bool)
}
