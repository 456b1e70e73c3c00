package autoassign

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/taskwell/autoassign/types"
)

// RedistributeWorkload moves tasks off overloaded users onto better-fitting
// candidates.
//
// A user is overloaded when their utilization meets or exceeds the
// configured overload threshold. Overloaded holders are processed
// worst-first; each donates its active tasks largest-first, and stops
// donating as soon as its utilization drops below the threshold. A task
// moves only when a candidate exists that
//
//   - is eligible and not the current holder,
//   - is itself below the overload threshold,
//   - stays within the weekly cap after the move, and
//   - scores strictly higher for the task than the holder does.
//
// Redistribution is best-effort, never forced: tasks with no such candidate
// are skipped silently. Repository failures and move conflicts are recorded
// as failure details with per-item isolation, like assignment batches.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - types.RedistributionResult: Counts and per-move details
//   - error: Non-nil only when the eligible-user listing itself fails
func (e *Engine) RedistributeWorkload(ctx context.Context) (types.RedistributionResult, error) {
	start := time.Now()
	result := types.RedistributionResult{RunID: uuid.NewString()}

	users, err := e.users.FindEligible(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: list eligible users: %w", ErrRepository, err)
	}

	for _, holder := range e.overloadedHolders(ctx, users, &result) {
		e.relieveHolder(ctx, holder, &result)
	}

	e.metrics.ObserveBatchDuration("redistribute", time.Since(start).Seconds())
	e.logger.Info("redistribution complete",
		"runId", result.RunID,
		"moved", result.Moved,
		"failed", result.Failed,
	)

	return result, nil
}

// overloadedHolders derives each user's workload and returns the overloaded
// ones, worst-first. Workload derivation failures become failure details.
func (e *Engine) overloadedHolders(ctx context.Context, users []types.User, result *types.RedistributionResult) []types.User {
	type loaded struct {
		user     types.User
		workload types.Workload
	}

	var over []loaded
	for _, user := range users {
		workload, err := e.calc.Workload(ctx, user.ID)
		if err != nil {
			e.metrics.RecordMove("error")
			e.logger.Error("workload derivation failed", "userId", user.ID, "error", err)
			result.Failed++
			result.Details = append(result.Details, types.AssignmentDetail{
				FromUserID: user.ID,
				Reason:     err.Error(),
			})

			continue
		}

		if workload.Overloaded(e.cfg.OverloadThresholdPercent) {
			e.logger.Warn("user overloaded",
				"userId", user.ID,
				"utilization", workload.UtilizationPercent,
				"currentWeekHours", workload.CurrentWeekHours,
			)
			e.fireOverloadDetected(ctx, workload)
			over = append(over, loaded{user: user, workload: workload})
		}
	}

	sort.Slice(over, func(i, j int) bool {
		if over[i].workload.UtilizationPercent != over[j].workload.UtilizationPercent {
			return over[i].workload.UtilizationPercent > over[j].workload.UtilizationPercent
		}

		return over[i].user.ID < over[j].user.ID
	})

	holders := make([]types.User, len(over))
	for i, l := range over {
		holders[i] = l.user
	}

	return holders
}

// relieveHolder donates the holder's active tasks until the holder is no
// longer overloaded or no task can be moved.
func (e *Engine) relieveHolder(ctx context.Context, holder types.User, result *types.RedistributionResult) {
	held, err := e.tasks.FindByAssignee(ctx, holder.ID)
	if err != nil {
		e.metrics.RecordMove("error")
		e.logger.Error("listing holder tasks failed", "userId", holder.ID, "error", err)
		result.Failed++
		result.Details = append(result.Details, types.AssignmentDetail{
			FromUserID: holder.ID,
			Reason:     err.Error(),
		})

		return
	}

	for _, task := range donationOrder(held) {
		workload, err := e.calc.Workload(ctx, holder.ID)
		if err != nil {
			e.metrics.RecordMove("error")
			result.Failed++
			result.Details = append(result.Details, types.AssignmentDetail{
				TaskID:     task.ID,
				FromUserID: holder.ID,
				Reason:     err.Error(),
			})

			return
		}
		if !workload.Overloaded(e.cfg.OverloadThresholdPercent) {
			return
		}

		detail, moved := e.moveTask(ctx, task, holder)
		switch {
		case moved:
			result.Moved++
			result.Details = append(result.Details, detail)
		case detail.Failed():
			result.Failed++
			result.Details = append(result.Details, detail)
		}
		// Neither moved nor failed: no admissible candidate, skip.
	}
}

// moveTask attempts to move one task off its overloaded holder. The second
// return value reports a completed move; a false return with an empty
// Reason means the task was skipped.
func (e *Engine) moveTask(ctx context.Context, task types.Task, holder types.User) (types.AssignmentDetail, bool) {
	detail := types.AssignmentDetail{TaskID: task.ID, FromUserID: holder.ID}

	holderScore, _, err := e.scorer.Score(ctx, task, holder)
	if err != nil {
		e.metrics.RecordMove("error")
		detail.Reason = err.Error()

		return detail, false
	}

	candidate, err := e.bestCandidate(ctx, task, holder.ID, e.cfg.OverloadThresholdPercent)
	if err != nil {
		e.metrics.RecordMove("error")
		e.logger.Error("relocation search failed", "taskId", task.ID, "error", err)
		detail.Reason = err.Error()

		return detail, false
	}
	if candidate == nil || candidate.Score <= holderScore.Score {
		return detail, false
	}

	detail.UserID = candidate.User.ID
	detail.Score = candidate.Score
	detail.SkillMatch = candidate.SkillMatch

	if err := e.tasks.Reassign(ctx, task.ID, holder.ID, candidate.User.ID); err != nil {
		outcome := "error"
		if errors.Is(err, ErrAssignmentConflict) {
			outcome = "conflict"
		}
		e.metrics.RecordMove(outcome)
		e.logger.Warn("move write failed",
			"taskId", task.ID,
			"from", holder.ID,
			"to", candidate.User.ID,
			"error", err,
		)
		detail.Reason = err.Error()

		return detail, false
	}

	e.metrics.RecordMove("moved")
	e.logger.Info("task moved",
		"taskId", task.ID,
		"from", holder.ID,
		"to", candidate.User.ID,
		"score", candidate.Score,
	)
	e.fireMoved(ctx, detail)
	e.notifyAfterWrite(ctx, *candidate)

	return detail, true
}

// donationOrder filters a holder's tasks to active ones and orders them
// largest-first so the fewest moves resolve the overload, with task ID as
// the stable tie break. The input slice is not modified.
func donationOrder(tasks []types.Task) []types.Task {
	active := make([]types.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Active() {
			active = append(active, task)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].EstimatedHours != active[j].EstimatedHours {
			return active[i].EstimatedHours > active[j].EstimatedHours
		}

		return active[i].ID < active[j].ID
	})

	return active
}
