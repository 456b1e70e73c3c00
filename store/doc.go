// Package store provides in-memory implementations of the repository
// contracts.
//
// TaskStore and UserStore back tests, examples, and embedders that don't
// need a database. They honor the same conditional-write semantics a
// production repository must implement: Assign and Reassign are atomic
// check-and-set operations surfacing types.ErrAssignmentConflict.
package store
