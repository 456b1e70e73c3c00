package autoassign

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/taskwell/autoassign/internal/logging"
	"github.com/taskwell/autoassign/internal/metrics"
	"github.com/taskwell/autoassign/scoring"
	"github.com/taskwell/autoassign/types"
)

// Engine orchestrates automatic task assignment and workload rebalancing.
//
// The engine reads tasks and users through the repository contracts, scores
// each candidate with scoring.Scorer (which derives workloads on every
// call), and writes winning assignments back through the task repository's
// conditional updates.
//
// All batch processing is strictly sequential: a later task's scoring must
// observe the writes made earlier in the same run, otherwise a batch could
// pile work onto one candidate past the weekly cap. The engine performs no
// internal parallelism and adds no synchronization across concurrent
// callers; the conditional writes are what keep racing invocations from
// double-assigning a task.
type Engine struct {
	cfg      Config
	tasks    types.TaskRepository
	users    types.UserRepository
	calc     *scoring.Calculator
	scorer   *scoring.Scorer
	logger   types.Logger
	metrics  types.MetricsCollector
	notifier types.NotificationSink
	hooks    *types.Hooks
}

// NewEngine creates an assignment engine.
//
// Parameters:
//   - cfg: Engine configuration; nil selects DefaultConfig. Missing values
//     are filled with defaults before validation.
//   - tasks: Task repository collaborator
//   - users: User repository collaborator
//   - opts: Optional dependencies (logger, metrics, notifier, hooks)
//
// Returns:
//   - *Engine: Initialized engine
//   - error: ErrTaskRepositoryRequired, ErrUserRepositoryRequired, or
//     ErrInvalidConfig-wrapped validation failure
//
// Example:
//
//	cfg := autoassign.DefaultConfig()
//	engine, err := autoassign.NewEngine(&cfg, taskRepo, userRepo,
//	    autoassign.WithNotifier(sink),
//	)
func NewEngine(cfg *Config, tasks types.TaskRepository, users types.UserRepository, opts ...Option) (*Engine, error) {
	if tasks == nil {
		return nil, ErrTaskRepositoryRequired
	}
	if users == nil {
		return nil, ErrUserRepositoryRequired
	}

	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	options := engineOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = logging.NewSlogDefault()
	}
	if options.metrics == nil {
		options.metrics = metrics.NewNop()
	}

	calc := scoring.NewCalculator(tasks, cfg.Scoring)

	return &Engine{
		cfg:      *cfg,
		tasks:    tasks,
		users:    users,
		calc:     calc,
		scorer:   scoring.NewScorer(calc, cfg.Scoring),
		logger:   options.logger,
		metrics:  options.metrics,
		notifier: options.notifier,
		hooks:    options.hooks,
	}, nil
}

// FindBestCandidate returns the most suitable assignee for the task, or nil
// when no admissible candidate exists. A nil candidate with a nil error is
// a normal negative result, not a failure.
//
// Selection is deterministic: highest score first, ties broken by lowest
// current utilization, then by lowest user ID.
//
// Parameters:
//   - ctx: Context for cancellation
//   - taskID: Task to find an assignee for
//
// Returns:
//   - *types.Candidate: Winning candidate, nil when none is admissible
//   - error: ErrTaskNotFound for an unknown ID, or a repository failure
func (e *Engine) FindBestCandidate(ctx context.Context, taskID string) (*types.Candidate, error) {
	task, err := e.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	return e.bestCandidate(ctx, task, "", 0)
}

// AssignUnassigned assigns every assignable unassigned task.
//
// Tasks are processed most-urgent first (priority rank descending, then
// earliest due date with missing due dates last, then task ID) so urgent
// work is matched while candidates still have capacity. Processing is a
// sequential fold: each assignment is written before the next task is
// scored. Per-task failures — repository errors, assignment conflicts, no
// eligible candidate — are recorded as failure details and never abort the
// batch.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - types.AssignmentResult: Counts and per-task details
//   - error: Non-nil only when the unassigned-task listing itself fails
func (e *Engine) AssignUnassigned(ctx context.Context) (types.AssignmentResult, error) {
	start := time.Now()
	result := types.AssignmentResult{RunID: uuid.NewString()}

	unassigned, err := e.tasks.FindUnassigned(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: list unassigned tasks: %w", ErrRepository, err)
	}

	for _, task := range sortForAssignment(unassigned) {
		if task.Assigned() || !task.Active() {
			continue
		}

		detail := e.assignOne(ctx, task)
		result.Details = append(result.Details, detail)
		if detail.Failed() {
			result.Failed++
		} else {
			result.Assigned++
		}
	}

	e.metrics.ObserveBatchDuration("assign_unassigned", time.Since(start).Seconds())
	e.logger.Info("assignment batch complete",
		"runId", result.RunID,
		"assigned", result.Assigned,
		"failed", result.Failed,
	)

	return result, nil
}

// assignOne finds and writes the best assignment for a single task,
// converting any failure into the returned detail.
func (e *Engine) assignOne(ctx context.Context, task types.Task) types.AssignmentDetail {
	detail := types.AssignmentDetail{TaskID: task.ID}

	candidate, err := e.bestCandidate(ctx, task, "", 0)
	if err != nil {
		e.metrics.RecordAssignment("error")
		e.logger.Error("candidate search failed", "taskId", task.ID, "error", err)
		detail.Reason = err.Error()

		return detail
	}
	if candidate == nil {
		e.metrics.RecordAssignment("no_candidate")
		e.logger.Debug("no eligible candidate", "taskId", task.ID)
		detail.Reason = "no eligible candidate"

		return detail
	}

	detail.UserID = candidate.User.ID
	detail.Score = candidate.Score
	detail.SkillMatch = candidate.SkillMatch

	if err := e.tasks.Assign(ctx, task.ID, candidate.User.ID); err != nil {
		outcome := "error"
		if errors.Is(err, ErrAssignmentConflict) {
			outcome = "conflict"
		}
		e.metrics.RecordAssignment(outcome)
		e.logger.Warn("assignment write failed",
			"taskId", task.ID,
			"userId", candidate.User.ID,
			"error", err,
		)
		detail.Reason = err.Error()

		return detail
	}

	e.metrics.RecordAssignment("assigned")
	e.logger.Debug("task assigned",
		"taskId", task.ID,
		"userId", candidate.User.ID,
		"score", candidate.Score,
		"skillMatch", candidate.SkillMatch,
	)
	e.fireAssigned(ctx, detail)
	e.notifyAfterWrite(ctx, *candidate)

	return detail
}

// bestCandidate scores every eligible user for the task and selects the
// winner. excludeUserID removes one user from consideration (the current
// holder during redistribution). maxUtilization, when positive, admits only
// users whose current utilization is strictly below it.
func (e *Engine) bestCandidate(ctx context.Context, task types.Task, excludeUserID string, maxUtilization float64) (*types.Candidate, error) {
	users, err := e.users.FindEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list eligible users: %w", ErrRepository, err)
	}

	var best *types.Candidate
	for _, user := range users {
		if user.ID == excludeUserID || !user.CanReceiveTasks {
			continue
		}

		candidate, ok, err := e.scorer.Score(ctx, task, user)
		if err != nil {
			return nil, err
		}
		e.metrics.ObserveUtilization(candidate.Workload.UtilizationPercent)

		if !ok {
			continue
		}
		if maxUtilization > 0 && candidate.Workload.UtilizationPercent >= maxUtilization {
			continue
		}

		if best == nil || betterCandidate(candidate, *best) {
			chosen := candidate
			best = &chosen
		}
	}

	return best, nil
}

// betterCandidate reports whether a should be preferred over b: higher
// score, then lower current utilization, then lower user ID.
func betterCandidate(a, b types.Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Workload.UtilizationPercent != b.Workload.UtilizationPercent {
		return a.Workload.UtilizationPercent < b.Workload.UtilizationPercent
	}

	return a.User.ID < b.User.ID
}

// sortForAssignment orders tasks most-urgent first: priority rank
// descending, then earliest due date with missing due dates last, then task
// ID for a stable total order. The input slice is not modified.
func sortForAssignment(tasks []types.Task) []types.Task {
	sorted := make([]types.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if ar, br := a.Priority.Rank(), b.Priority.Rank(); ar != br {
			return ar > br
		}

		switch {
		case a.DueDate == nil && b.DueDate == nil:
			// fall through to ID ordering
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}

		return a.ID < b.ID
	})

	return sorted
}

// notifyAfterWrite emits a workload alert when the write pushed the
// assignee past the warning threshold. Sink failures are logged, never
// propagated.
func (e *Engine) notifyAfterWrite(ctx context.Context, candidate types.Candidate) {
	if e.notifier == nil {
		return
	}

	utilization := candidate.ProjectedUtilization
	if utilization < e.cfg.WarningThresholdPercent {
		return
	}

	severity := types.SeverityWarning
	if utilization >= e.cfg.CriticalThresholdPercent {
		severity = types.SeverityCritical
	}

	message := fmt.Sprintf(
		"workload at %.1f%% of weekly capacity (%dh of %dh committed)",
		utilization, candidate.ProjectedWeekHours, candidate.Workload.MaxWeekHours,
	)
	if err := e.notifier.Notify(ctx, candidate.User.ID, message, severity); err != nil {
		e.metrics.RecordNotification(false)
		e.logger.Warn("workload notification failed",
			"userId", candidate.User.ID,
			"severity", severity,
			"error", err,
		)

		return
	}

	e.metrics.RecordNotification(true)
}

func (e *Engine) fireAssigned(ctx context.Context, detail types.AssignmentDetail) {
	if e.hooks == nil || e.hooks.OnAssigned == nil {
		return
	}
	if err := e.hooks.OnAssigned(ctx, detail); err != nil {
		e.logger.Warn("OnAssigned hook failed", "taskId", detail.TaskID, "error", err)
	}
}

func (e *Engine) fireMoved(ctx context.Context, detail types.AssignmentDetail) {
	if e.hooks == nil || e.hooks.OnMoved == nil {
		return
	}
	if err := e.hooks.OnMoved(ctx, detail); err != nil {
		e.logger.Warn("OnMoved hook failed", "taskId", detail.TaskID, "error", err)
	}
}

func (e *Engine) fireOverloadDetected(ctx context.Context, workload types.Workload) {
	if e.hooks == nil || e.hooks.OnOverloadDetected == nil {
		return
	}
	if err := e.hooks.OnOverloadDetected(ctx, workload); err != nil {
		e.logger.Warn("OnOverloadDetected hook failed", "userId", workload.UserID, "error", err)
	}
}
