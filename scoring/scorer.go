package scoring

import (
	"context"

	"github.com/taskwell/autoassign/types"
)

// Scorer evaluates how well a user fits a task.
//
// The composite score blends skill match and available capacity:
//
//	score = SkillWeight*skillMatch + CapacityWeight*clamp01(remaining/max)
//
// With the default equal weights a fully idle user with no matching skills
// scores 0.5, while a lightly loaded user with a full skill match scores
// close to 1.0 and wins. The score is monotonic: raising skill match or
// remaining capacity never lowers it.
type Scorer struct {
	calc   *Calculator
	policy Policy
}

// NewScorer creates a candidate scorer on top of a workload calculator.
//
// Parameters:
//   - calc: Calculator used to derive candidate workloads
//   - policy: Scoring policy (weights, skill scale, neutral baseline)
//
// Returns:
//   - *Scorer: Initialized scorer
func NewScorer(calc *Calculator, policy Policy) *Scorer {
	return &Scorer{calc: calc, policy: policy}
}

// Score evaluates the user as a candidate for the task.
//
// The returned bool reports admissibility: false when the user cannot
// receive tasks, or when assigning the task would push the user past the
// weekly cap (the hard capacity rule — assignment must never knowingly
// create an over-committed user while an alternative exists). The candidate
// is fully populated either way, so callers can still compare an
// inadmissible current holder against alternatives during redistribution.
//
// Parameters:
//   - ctx: Context for cancellation
//   - task: Task under assignment
//   - user: Candidate user
//
// Returns:
//   - types.Candidate: Scored evaluation, valid even when inadmissible
//   - bool: true when the user may receive this task
//   - error: Workload derivation failure
func (s *Scorer) Score(ctx context.Context, task types.Task, user types.User) (types.Candidate, bool, error) {
	workload, err := s.calc.Workload(ctx, user.ID)
	if err != nil {
		return types.Candidate{}, false, err
	}

	candidate, ok := s.evaluate(task, user, workload)

	return candidate, ok, nil
}

// SkillMatch returns the proficiency-weighted fraction of the task's
// required skills covered by the user, in [0,1].
//
// Each required skill contributes level/MaxSkillLevel when the user has it
// and 0 when not; the result is the mean over all required skills. Tasks
// that require no skills score the policy's neutral baseline rather than a
// full match.
func (s *Scorer) SkillMatch(task types.Task, user types.User) float64 {
	if len(task.RequiredSkills) == 0 {
		return s.policy.NeutralSkillMatch
	}

	maxLevel := float64(s.policy.MaxSkillLevel)
	total := 0.0
	for _, skillID := range task.RequiredSkills {
		level := user.SkillLevel(skillID)
		if level <= 0 {
			continue
		}
		if level > s.policy.MaxSkillLevel {
			level = s.policy.MaxSkillLevel
		}
		total += float64(level) / maxLevel
	}

	return total / float64(len(task.RequiredSkills))
}

func (s *Scorer) evaluate(task types.Task, user types.User, workload types.Workload) (types.Candidate, bool) {
	match := s.SkillMatch(task, user)

	capacity := 0.0
	if workload.MaxWeekHours > 0 {
		capacity = float64(workload.RemainingCapacity) / float64(workload.MaxWeekHours)
	}
	capacity = clamp01(capacity)

	estimate := task.EstimatedHours
	if estimate < 0 {
		estimate = 0
	}
	projected := workload.CurrentWeekHours + estimate

	candidate := types.Candidate{
		User:               user,
		Score:              s.policy.SkillWeight*match + s.policy.CapacityWeight*capacity,
		SkillMatch:         match,
		Workload:           workload,
		ProjectedWeekHours: projected,
	}
	if workload.MaxWeekHours > 0 {
		candidate.ProjectedUtilization = float64(projected) / float64(workload.MaxWeekHours) * 100
	}

	ok := user.CanReceiveTasks && projected <= workload.MaxWeekHours

	return candidate, ok
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
