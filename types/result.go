package types

// AssignmentDetail records the outcome of a single task within a batch
// operation. Details serialize directly at any HTTP/JSON boundary the
// surrounding system exposes.
type AssignmentDetail struct {
	// TaskID identifies the processed task.
	TaskID string `json:"taskId"`

	// UserID is the target assignee, empty when no candidate was found.
	UserID string `json:"userId,omitempty"`

	// FromUserID is the previous holder, set for redistribution moves.
	FromUserID string `json:"fromUserId,omitempty"`

	// Score and SkillMatch echo the winning candidate's evaluation.
	Score      float64 `json:"score,omitempty"`
	SkillMatch float64 `json:"skillMatch,omitempty"`

	// Reason is a human-readable failure reason, empty on success.
	Reason string `json:"reason,omitempty"`
}

// Failed reports whether the detail records a failure.
func (d AssignmentDetail) Failed() bool {
	return d.Reason != ""
}

// AssignmentResult is the structured outcome of Engine.AssignUnassigned.
//
// Batch operations always return a result; per-task failures are recorded
// as details and never abort the batch.
type AssignmentResult struct {
	// RunID uniquely identifies the batch run, for log correlation.
	RunID string `json:"runId"`

	// Assigned is the number of tasks successfully assigned.
	Assigned int `json:"assignedCount"`

	// Failed is the number of tasks that could not be assigned.
	Failed int `json:"failedCount"`

	// Details holds one entry per processed task, in processing order.
	Details []AssignmentDetail `json:"details"`
}

// RedistributionResult is the structured outcome of
// Engine.RedistributeWorkload.
type RedistributionResult struct {
	// RunID uniquely identifies the batch run, for log correlation.
	RunID string `json:"runId"`

	// Moved is the number of tasks moved off overloaded users.
	Moved int `json:"redistributedCount"`

	// Failed is the number of items that failed while being processed.
	// Tasks skipped because no better candidate exists are not failures
	// and produce no detail.
	Failed int `json:"failedCount"`

	// Details holds one entry per move or failure, in processing order.
	Details []AssignmentDetail `json:"details"`
}
