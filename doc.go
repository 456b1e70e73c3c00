// Package autoassign provides automatic task assignment and workload
// balancing for project-management systems.
//
// The engine scores candidate assignees against a task's required skills
// and current workload, assigns unassigned tasks without exceeding a weekly
// hours cap, and redistributes work off overloaded users. Persistence,
// routing, and authentication stay with the surrounding system; the engine
// talks to it through small repository contracts.
//
// # Quick Start
//
// Basic usage with the in-memory store and default settings:
//
//	import (
//	    "github.com/taskwell/autoassign"
//	    "github.com/taskwell/autoassign/store"
//	)
//
//	tasks := store.NewTaskStore()
//	users := store.NewUserStore()
//	// ... seed tasks and users ...
//
//	cfg := autoassign.DefaultConfig()
//	engine, err := autoassign.NewEngine(&cfg, tasks, users)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := engine.AssignUnassigned(ctx)
//
// # Key Features
//
//   - Composite Scoring: skill match blended with remaining capacity,
//     monotonic in both and fully tunable via the scoring policy
//   - Capacity Guard: a candidate is never knowingly pushed past the
//     weekly cap while an alternative exists
//   - Deterministic Selection: ties break toward the least-loaded
//     candidate, then the lowest user ID
//   - Sequential Batches: each assignment is visible to the scoring of
//     every later task in the same run
//   - Conflict-Safe Writes: assignments are conditional updates, so racing
//     invocations surface a conflict instead of double-assigning
//   - Overload Alerting: a NotificationSink receives warnings when an
//     assignment pushes a user past the warning threshold
//
// # Operations
//
// The engine exposes three operations built on one scoring primitive:
//
//	FindBestCandidate    score all eligible users for one task
//	AssignUnassigned     assign every unassigned task, most urgent first
//	RedistributeWorkload move tasks off overloaded users
//
// Batch operations are fault-isolating per item: repository errors and
// write conflicts become failure details in the structured result rather
// than aborting the run.
package autoassign
