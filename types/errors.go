package types

import "errors"

// Sentinel errors for the autoassign library.
//
// All components use these for known error conditions and wrap external
// errors with context via fmt.Errorf("...: %w", err), so callers can check
// with errors.Is.

// Engine construction errors.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTaskRepositoryRequired is returned when the task repository is nil.
	ErrTaskRepositoryRequired = errors.New("task repository is required")

	// ErrUserRepositoryRequired is returned when the user repository is nil.
	ErrUserRepositoryRequired = errors.New("user repository is required")
)

// Repository errors.
var (
	// ErrTaskNotFound is returned when a task ID does not resolve.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound is returned when a user ID does not resolve.
	ErrUserNotFound = errors.New("user not found")

	// ErrRepository indicates an I/O failure in a collaborator. Inside
	// batch operations it is converted into a per-task failure detail
	// rather than aborting the run.
	ErrRepository = errors.New("repository failure")

	// ErrAssignmentConflict is returned by conditional assignment writes
	// when the precondition no longer holds (the task gained or changed
	// its assignee concurrently). Recoverable: batches record it as a
	// failure detail and continue.
	ErrAssignmentConflict = errors.New("assignment conflict")
)
