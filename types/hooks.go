package types

import "context"

// Hooks defines optional callbacks for engine events.
//
// Unlike notifications, hooks run synchronously between batch items so that
// callback order matches processing order. Hook errors are logged and never
// fail the operation. Implementations should return quickly; long I/O
// belongs behind a queue, not in a hook.
type Hooks struct {
	// OnAssigned is called after each successful assignment write.
	OnAssigned func(ctx context.Context, detail AssignmentDetail) error

	// OnMoved is called after each successful redistribution move.
	OnMoved func(ctx context.Context, detail AssignmentDetail) error

	// OnOverloadDetected is called once per overloaded user found by
	// RedistributeWorkload, before any of their tasks are moved.
	OnOverloadDetected func(ctx context.Context, workload Workload) error
}
