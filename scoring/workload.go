package scoring

import (
	"context"
	"fmt"

	"github.com/taskwell/autoassign/types"
)

// TaskLister is the slice of the task repository the calculator needs.
// types.TaskRepository satisfies it.
type TaskLister interface {
	// FindByAssignee returns every task currently assigned to the user.
	FindByAssignee(ctx context.Context, userID string) ([]types.Task, error)
}

// Calculator derives a user's current weekly workload from their assigned
// tasks. It has no state beyond its policy and performs no writes.
type Calculator struct {
	tasks  TaskLister
	policy Policy
}

// NewCalculator creates a workload calculator.
//
// Parameters:
//   - tasks: Task source used to list a user's assignments
//   - policy: Scoring policy supplying the weekly cap
//
// Returns:
//   - *Calculator: Initialized calculator
func NewCalculator(tasks TaskLister, policy Policy) *Calculator {
	return &Calculator{tasks: tasks, policy: policy}
}

// Workload computes the user's committed hours, utilization percentage, and
// remaining capacity.
//
// The result is derived from current repository state on every call and is
// never cached. Completed tasks are excluded from the sum unless the policy
// opts into the legacy behavior; missing or negative estimates count as
// zero. Remaining capacity may be negative for over-committed users.
//
// Parameters:
//   - ctx: Context for cancellation
//   - userID: User to derive the workload for
//
// Returns:
//   - types.Workload: Derived workload
//   - error: types.ErrRepository-wrapped failure from the task source
func (c *Calculator) Workload(ctx context.Context, userID string) (types.Workload, error) {
	assigned, err := c.tasks.FindByAssignee(ctx, userID)
	if err != nil {
		return types.Workload{}, fmt.Errorf("%w: list tasks for user %s: %w", types.ErrRepository, userID, err)
	}

	hours := 0
	for _, task := range assigned {
		if !c.policy.IncludeCompleted && !task.Active() {
			continue
		}
		if task.EstimatedHours > 0 {
			hours += task.EstimatedHours
		}
	}

	workload := types.Workload{
		UserID:            userID,
		CurrentWeekHours:  hours,
		MaxWeekHours:      c.policy.MaxWeekHours,
		RemainingCapacity: c.policy.MaxWeekHours - hours,
	}
	// Guard against a zero cap; utilization is 0 rather than +Inf.
	if c.policy.MaxWeekHours > 0 {
		workload.UtilizationPercent = float64(hours) / float64(c.policy.MaxWeekHours) * 100
	}

	return workload, nil
}
