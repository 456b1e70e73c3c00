package types

import "time"

// Status represents the lifecycle state of a task.
type Status string

// Task lifecycle states.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Priority represents task urgency. Batch assignment processes tasks in
// descending priority order so urgent work is matched against candidates
// while they still have capacity.
type Priority string

// Task priorities, least to most urgent.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns the numeric urgency of the priority for ordering.
// Higher means more urgent; unknown priorities rank below "low".
//
// Returns:
//   - int: 4 for urgent, 3 for high, 2 for medium, 1 for low, 0 otherwise
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Skill identifies a named competency. Tasks reference skills by ID in
// their required-skills set; users carry rated skills as SkillRating.
// Matching is by ID only, never by name.
type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is the read-only view of a task consumed by the engine.
//
// The engine mutates only the assignment fields (AssigneeID, AutoAssigned),
// and only through the TaskRepository's conditional writes. All other
// fields are owned by the surrounding CRUD layer.
type Task struct {
	// ID uniquely identifies the task.
	ID string `json:"id"`

	// Title is display-only.
	Title string `json:"title"`

	// RequiredSkills lists the IDs of skills the task calls for.
	// Membership only; the set carries no per-skill weighting.
	RequiredSkills []string `json:"requiredSkills,omitempty"`

	// EstimatedHours is the expected effort. Non-positive values are
	// treated as zero when summing workloads.
	EstimatedHours int `json:"estimatedHours"`

	// Status is the task's lifecycle state.
	Status Status `json:"status"`

	// Priority orders batch assignment.
	Priority Priority `json:"priority"`

	// DueDate is optional; tasks without one sort after tasks with one.
	DueDate *time.Time `json:"dueDate,omitempty"`

	// AssigneeID references the assigned user, empty when unassigned.
	// Assignment is exclusive: one assignee or none.
	AssigneeID string `json:"assigneeId,omitempty"`

	// AutoAssigned marks assignments written by the engine, as opposed to
	// manual assignment through the CRUD layer.
	AutoAssigned bool `json:"isAutoAssigned"`
}

// Assigned reports whether the task currently has an assignee.
func (t Task) Assigned() bool {
	return t.AssigneeID != ""
}

// Active reports whether the task still consumes capacity.
func (t Task) Active() bool {
	return t.Status != StatusCompleted
}
