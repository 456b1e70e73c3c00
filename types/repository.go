package types

import "context"

// Severity classifies workload notifications.
type Severity string

// Notification severities.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// TaskRepository is the persistence contract the engine reads tasks from
// and writes assignments through.
//
// Write semantics: both writes are conditional updates so that concurrent
// assignment attempts cannot silently double-assign a task. Implementations
// must apply each write atomically and return ErrAssignmentConflict when
// the precondition no longer holds. No transactional isolation is assumed
// across a batch; each write stands alone.
type TaskRepository interface {
	// FindUnassigned returns tasks with no assignee and a status other
	// than completed, in no particular order.
	FindUnassigned(ctx context.Context) ([]Task, error)

	// FindByID resolves a single task.
	// Returns ErrTaskNotFound when the ID is unknown.
	FindByID(ctx context.Context, id string) (Task, error)

	// FindByAssignee returns every task currently assigned to the user,
	// regardless of status.
	FindByAssignee(ctx context.Context, userID string) ([]Task, error)

	// Assign sets the task's assignee and marks it auto-assigned, only
	// if the task is currently unassigned.
	// Returns ErrAssignmentConflict when the task already has an
	// assignee, ErrTaskNotFound when the ID is unknown.
	Assign(ctx context.Context, taskID, userID string) error

	// Reassign moves the task from fromUserID to toUserID, only if
	// fromUserID is still the current assignee.
	// Returns ErrAssignmentConflict when the holder changed,
	// ErrTaskNotFound when the ID is unknown.
	Reassign(ctx context.Context, taskID, fromUserID, toUserID string) error
}

// UserRepository is the contract the engine enumerates candidates through.
type UserRepository interface {
	// FindEligible returns users whose roles permit receiving task
	// assignments. The engine additionally checks CanReceiveTasks on
	// each returned user.
	FindEligible(ctx context.Context) ([]User, error)

	// FindByID resolves a single user.
	// Returns ErrUserNotFound when the ID is unknown.
	FindByID(ctx context.Context, id string) (User, error)
}

// NotificationSink receives workload alerts.
//
// Delivery is fire-and-forget from the engine's point of view: sink errors
// are logged and recorded in metrics but never fail an assignment.
type NotificationSink interface {
	// Notify delivers a workload alert for the given user.
	Notify(ctx context.Context, userID, message string, severity Severity) error
}
