package autoassign

import "github.com/taskwell/autoassign/types"

// Sentinel errors, aliased from the types package so embedders can check
// them with errors.Is without importing types directly.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrTaskRepositoryRequired is returned when the task repository is nil.
	ErrTaskRepositoryRequired = types.ErrTaskRepositoryRequired

	// ErrUserRepositoryRequired is returned when the user repository is nil.
	ErrUserRepositoryRequired = types.ErrUserRepositoryRequired

	// ErrTaskNotFound is returned when a task ID does not resolve.
	ErrTaskNotFound = types.ErrTaskNotFound

	// ErrUserNotFound is returned when a user ID does not resolve.
	ErrUserNotFound = types.ErrUserNotFound

	// ErrRepository indicates an I/O failure in a collaborator.
	ErrRepository = types.ErrRepository

	// ErrAssignmentConflict is returned by conditional assignment writes
	// when the task's assignee changed concurrently.
	ErrAssignmentConflict = types.ErrAssignmentConflict
)
