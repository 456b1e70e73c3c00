package types

// Workload is a user's derived weekly commitment.
//
// A workload is recomputed from current repository state on every call and
// never cached. The only consistency guarantee is "assignment state as of
// the read"; within a sequential batch run this is exactly what makes a
// later task's scoring observe an earlier task's assignment.
type Workload struct {
	// UserID identifies the user the workload was derived for.
	UserID string `json:"userId"`

	// CurrentWeekHours is the sum of estimated hours over the user's
	// assigned, non-completed tasks.
	CurrentWeekHours int `json:"currentWeekHours"`

	// MaxWeekHours is the weekly capacity cap the workload was computed
	// against.
	MaxWeekHours int `json:"maxWeekHours"`

	// UtilizationPercent is CurrentWeekHours / MaxWeekHours * 100,
	// or 0 when MaxWeekHours is 0.
	UtilizationPercent float64 `json:"utilizationPercentage"`

	// RemainingCapacity is MaxWeekHours - CurrentWeekHours. Negative
	// values represent over-commitment.
	RemainingCapacity int `json:"remainingCapacity"`
}

// Overloaded reports whether utilization meets or exceeds the given
// threshold (in percent).
func (w Workload) Overloaded(thresholdPercent float64) bool {
	return w.UtilizationPercent >= thresholdPercent
}
