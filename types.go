package autoassign

import "github.com/taskwell/autoassign/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces via type aliases. Internal packages depend on the types
// subpackage directly, which avoids import cycles while still giving users
// a convenient autoassign.Task, autoassign.Candidate, etc.
type (
	Task        = types.Task
	Status      = types.Status
	Priority    = types.Priority
	Skill       = types.Skill
	SkillRating = types.SkillRating
	User        = types.User
	Workload    = types.Workload
	Candidate   = types.Candidate
	Severity    = types.Severity

	AssignmentDetail     = types.AssignmentDetail
	AssignmentResult     = types.AssignmentResult
	RedistributionResult = types.RedistributionResult
)

// Re-export interfaces from the types subpackage for convenience.
type (
	TaskRepository   = types.TaskRepository
	UserRepository   = types.UserRepository
	NotificationSink = types.NotificationSink
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export status constants from the types subpackage.
const (
	StatusTodo       = types.StatusTodo
	StatusInProgress = types.StatusInProgress
	StatusCompleted  = types.StatusCompleted
)

// Re-export priority constants from the types subpackage.
const (
	PriorityLow    = types.PriorityLow
	PriorityMedium = types.PriorityMedium
	PriorityHigh   = types.PriorityHigh
	PriorityUrgent = types.PriorityUrgent
)

// Re-export severity constants from the types subpackage.
const (
	SeverityInfo     = types.SeverityInfo
	SeverityWarning  = types.SeverityWarning
	SeverityCritical = types.SeverityCritical
)
