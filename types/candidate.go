package types

// Candidate is one (user, task) evaluation produced by the scorer.
//
// The workload is the user's state at scoring time; the projected fields
// describe the user after a hypothetical assignment of the evaluated task.
type Candidate struct {
	// User is the evaluated user.
	User User `json:"user"`

	// Score is the composite suitability score, roughly in [0,1].
	Score float64 `json:"score"`

	// SkillMatch is the proficiency-weighted fraction of the task's
	// required skills covered by the user, in [0,1].
	SkillMatch float64 `json:"skillMatch"`

	// Workload is the user's workload at scoring time.
	Workload Workload `json:"workload"`

	// ProjectedWeekHours is CurrentWeekHours plus the task's estimate.
	ProjectedWeekHours int `json:"projectedWeekHours"`

	// ProjectedUtilization is the utilization percentage after a
	// hypothetical assignment of the task.
	ProjectedUtilization float64 `json:"projectedUtilization"`
}
