package autoassign

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	logger   Logger
	metrics  MetricsCollector
	notifier NotificationSink
	hooks    *Hooks
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	engine, err := autoassign.NewEngine(&cfg, tasks, users, autoassign.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "autoassign")
//	engine, err := autoassign.NewEngine(&cfg, tasks, users, autoassign.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithNotifier sets the sink that receives workload alerts.
//
// Alerts fire when an assignment or move pushes a user's projected
// utilization past the warning threshold. Delivery is fire-and-forget:
// sink failures are logged and never fail the assignment.
//
// Parameters:
//   - sink: NotificationSink implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	sink, _ := notify.NewNATSNotifier(nc)
//	engine, err := autoassign.NewEngine(&cfg, tasks, users, autoassign.WithNotifier(sink))
func WithNotifier(sink NotificationSink) Option {
	return func(o *engineOptions) {
		o.notifier = sink
	}
}

// WithHooks sets event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	hooks := &autoassign.Hooks{
//	    OnAssigned: func(ctx context.Context, d autoassign.AssignmentDetail) error {
//	        return audit.Record(ctx, d)
//	    },
//	}
//	engine, err := autoassign.NewEngine(&cfg, tasks, users, autoassign.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *engineOptions) {
		o.hooks = hooks
	}
}
