package autoassign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskwell/autoassign/store"
	autotesting "github.com/taskwell/autoassign/testing"
	"github.com/taskwell/autoassign/types"
)

// recordingSink captures notifications for assertions.
type recordingSink struct {
	alerts []sinkAlert
}

type sinkAlert struct {
	userID   string
	message  string
	severity types.Severity
}

func (r *recordingSink) Notify(_ context.Context, userID, message string, severity types.Severity) error {
	r.alerts = append(r.alerts, sinkAlert{userID: userID, message: message, severity: severity})

	return nil
}

// failingSink always fails delivery.
type failingSink struct{}

func (failingSink) Notify(_ context.Context, _, _ string, _ types.Severity) error {
	return errors.New("sink unavailable")
}

// flakyTasks injects write failures per task ID.
type flakyTasks struct {
	*store.TaskStore
	assignErr map[string]error
}

func (f *flakyTasks) Assign(ctx context.Context, taskID, userID string) error {
	if err, ok := f.assignErr[taskID]; ok {
		return err
	}

	return f.TaskStore.Assign(ctx, taskID, userID)
}

// failingUsers fails every listing.
type failingUsers struct{ err error }

func (f failingUsers) FindEligible(_ context.Context) ([]types.User, error) {
	return nil, f.err
}

func (f failingUsers) FindByID(_ context.Context, _ string) (types.User, error) {
	return types.User{}, f.err
}

func eligibleUser(id string, skills ...types.SkillRating) types.User {
	return types.User{ID: id, CanReceiveTasks: true, Skills: skills}
}

func newTestEngine(t *testing.T, tasks types.TaskRepository, users types.UserRepository, opts ...Option) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	opts = append(opts, WithLogger(autotesting.NewTestLogger(t)))
	engine, err := NewEngine(&cfg, tasks, users, opts...)
	require.NoError(t, err)

	return engine
}

func TestNewEngine(t *testing.T) {
	tasks := store.NewTaskStore()
	users := store.NewUserStore()

	t.Run("requires a task repository", func(t *testing.T) {
		_, err := NewEngine(nil, nil, users)
		require.ErrorIs(t, err, ErrTaskRepositoryRequired)
	})

	t.Run("requires a user repository", func(t *testing.T) {
		_, err := NewEngine(nil, tasks, nil)
		require.ErrorIs(t, err, ErrUserRepositoryRequired)
	})

	t.Run("nil config selects defaults", func(t *testing.T) {
		engine, err := NewEngine(nil, tasks, users)
		require.NoError(t, err)
		require.NotNil(t, engine)
	})

	t.Run("rejects an invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Scoring.SkillWeight = -1

		_, err := NewEngine(&cfg, tasks, users)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestEngine_FindBestCandidate(t *testing.T) {
	ctx := context.Background()

	t.Run("selects the only idle user for an unskilled task", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 10, Status: types.StatusTodo})
		engine := newTestEngine(t, tasks, users)

		candidate, err := engine.FindBestCandidate(ctx, "t-1")

		require.NoError(t, err)
		require.NotNil(t, candidate)
		require.Equal(t, "u-1", candidate.User.ID)
		require.Zero(t, candidate.Workload.CurrentWeekHours)
		require.Equal(t, 10, candidate.ProjectedWeekHours)
		// 25 hours remain after a hypothetical assignment.
		require.Equal(t, 25, candidate.Workload.MaxWeekHours-candidate.ProjectedWeekHours)
	})

	t.Run("returns nil when every candidate would exceed the cap", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		tasks.Put(types.Task{ID: "t-held", EstimatedHours: 30, Status: types.StatusTodo, AssigneeID: "u-1"})
		tasks.Put(types.Task{ID: "t-new", EstimatedHours: 10, Status: types.StatusTodo})
		engine := newTestEngine(t, tasks, users)

		candidate, err := engine.FindBestCandidate(ctx, "t-new")

		require.NoError(t, err)
		require.Nil(t, candidate)
	})

	t.Run("ranks a skilled busy user above an unskilled idle one", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-idle"))
		users.Put(eligibleUser("u-skilled", types.SkillRating{SkillID: "go", Level: 5}))
		tasks.Put(types.Task{ID: "t-held", EstimatedHours: 5, Status: types.StatusTodo, AssigneeID: "u-skilled"})
		tasks.Put(types.Task{ID: "t-new", RequiredSkills: []string{"go"}, EstimatedHours: 10, Status: types.StatusTodo})
		engine := newTestEngine(t, tasks, users)

		candidate, err := engine.FindBestCandidate(ctx, "t-new")

		require.NoError(t, err)
		require.NotNil(t, candidate)
		require.Equal(t, "u-skilled", candidate.User.ID)
	})

	t.Run("breaks score ties toward the least-loaded user", func(t *testing.T) {
		// Capacity weight zero makes the two scores exactly equal.
		cfg := DefaultConfig()
		cfg.Scoring.SkillWeight = 1
		cfg.Scoring.CapacityWeight = 0

		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-busy"))
		users.Put(eligibleUser("u-idle"))
		tasks.Put(types.Task{ID: "t-held", EstimatedHours: 5, Status: types.StatusTodo, AssigneeID: "u-busy"})
		tasks.Put(types.Task{ID: "t-new", EstimatedHours: 10, Status: types.StatusTodo})

		engine, err := NewEngine(&cfg, tasks, users, WithLogger(autotesting.NewTestLogger(t)))
		require.NoError(t, err)

		candidate, err := engine.FindBestCandidate(ctx, "t-new")

		require.NoError(t, err)
		require.NotNil(t, candidate)
		require.Equal(t, "u-idle", candidate.User.ID)
	})

	t.Run("breaks full ties toward the lowest user ID", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Scoring.SkillWeight = 1
		cfg.Scoring.CapacityWeight = 0

		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-b"))
		users.Put(eligibleUser("u-a"))
		tasks.Put(types.Task{ID: "t-new", EstimatedHours: 10, Status: types.StatusTodo})

		engine, err := NewEngine(&cfg, tasks, users, WithLogger(autotesting.NewTestLogger(t)))
		require.NoError(t, err)

		candidate, err := engine.FindBestCandidate(ctx, "t-new")

		require.NoError(t, err)
		require.NotNil(t, candidate)
		require.Equal(t, "u-a", candidate.User.ID)
	})

	t.Run("unknown task ID is a hard error", func(t *testing.T) {
		engine := newTestEngine(t, store.NewTaskStore(), store.NewUserStore())

		_, err := engine.FindBestCandidate(ctx, "t-missing")

		require.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestEngine_AssignUnassigned(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns the urgent task before the low-priority one", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		// Only one of the two 30h tasks fits; order decides which.
		tasks.Put(types.Task{ID: "t-a-low", EstimatedHours: 30, Status: types.StatusTodo, Priority: types.PriorityLow})
		tasks.Put(types.Task{ID: "t-b-urgent", EstimatedHours: 30, Status: types.StatusTodo, Priority: types.PriorityUrgent})
		engine := newTestEngine(t, tasks, users)

		result, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Equal(t, 1, result.Assigned)
		require.Equal(t, 1, result.Failed)
		require.Len(t, result.Details, 2)
		require.Equal(t, "t-b-urgent", result.Details[0].TaskID)
		require.Equal(t, "u-1", result.Details[0].UserID)
		require.Equal(t, "t-a-low", result.Details[1].TaskID)
		require.Equal(t, "no eligible candidate", result.Details[1].Reason)
	})

	t.Run("earliest due date wins within equal priority", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		soon := time.Now().Add(24 * time.Hour)
		later := time.Now().Add(7 * 24 * time.Hour)
		tasks.Put(types.Task{ID: "t-a-later", EstimatedHours: 20, Status: types.StatusTodo, Priority: types.PriorityMedium, DueDate: &later})
		tasks.Put(types.Task{ID: "t-b-soon", EstimatedHours: 20, Status: types.StatusTodo, Priority: types.PriorityMedium, DueDate: &soon})
		engine := newTestEngine(t, tasks, users)

		result, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Equal(t, 1, result.Assigned)
		require.Equal(t, "t-b-soon", result.Details[0].TaskID)
		require.Empty(t, result.Details[0].Reason)
	})

	t.Run("tasks without a due date sort last", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		due := time.Now().Add(24 * time.Hour)
		tasks.Put(types.Task{ID: "t-a-nodue", EstimatedHours: 20, Status: types.StatusTodo, Priority: types.PriorityMedium})
		tasks.Put(types.Task{ID: "t-b-due", EstimatedHours: 20, Status: types.StatusTodo, Priority: types.PriorityMedium, DueDate: &due})
		engine := newTestEngine(t, tasks, users)

		result, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Equal(t, "t-b-due", result.Details[0].TaskID)
		require.Equal(t, "u-1", result.Details[0].UserID)
	})

	t.Run("later tasks observe earlier assignments in the same run", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-a"))
		users.Put(eligibleUser("u-b"))
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 20, Status: types.StatusTodo})
		tasks.Put(types.Task{ID: "t-2", EstimatedHours: 20, Status: types.StatusTodo})
		engine := newTestEngine(t, tasks, users)

		result, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Equal(t, 2, result.Assigned)
		// The first assignment fills u-a past the point where t-2 fits,
		// so t-2 must land on u-b.
		assignees := map[string]string{}
		for _, d := range result.Details {
			assignees[d.TaskID] = d.UserID
		}
		require.Equal(t, "u-a", assignees["t-1"])
		require.Equal(t, "u-b", assignees["t-2"])
	})

	t.Run("a second run has nothing to assign", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 10, Status: types.StatusTodo})
		engine := newTestEngine(t, tasks, users)

		first, err := engine.AssignUnassigned(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, first.Assigned)

		second, err := engine.AssignUnassigned(ctx)
		require.NoError(t, err)
		require.Zero(t, second.Assigned)
		require.Zero(t, second.Failed)
		require.Empty(t, second.Details)
	})

	t.Run("assignment writes set the auto-assigned flag", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 10, Status: types.StatusTodo})
		engine := newTestEngine(t, tasks, users)

		_, err := engine.AssignUnassigned(ctx)
		require.NoError(t, err)

		task, err := tasks.FindByID(ctx, "t-1")
		require.NoError(t, err)
		require.Equal(t, "u-1", task.AssigneeID)
		require.True(t, task.AutoAssigned)
	})

	t.Run("a failing write is isolated to its task", func(t *testing.T) {
		base := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		base.Put(types.Task{ID: "t-1", EstimatedHours: 5, Status: types.StatusTodo})
		base.Put(types.Task{ID: "t-2", EstimatedHours: 5, Status: types.StatusTodo})
		tasks := &flakyTasks{TaskStore: base, assignErr: map[string]error{"t-1": errors.New("write timeout")}}
		engine := newTestEngine(t, tasks, users)

		result, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Equal(t, 1, result.Assigned)
		require.Equal(t, 1, result.Failed)
		for _, d := range result.Details {
			if d.TaskID == "t-1" {
				require.Contains(t, d.Reason, "write timeout")
			} else {
				require.Empty(t, d.Reason)
			}
		}
	})

	t.Run("an assignment conflict is a recoverable failure", func(t *testing.T) {
		base := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		base.Put(types.Task{ID: "t-1", EstimatedHours: 5, Status: types.StatusTodo})
		conflict := types.ErrAssignmentConflict
		tasks := &flakyTasks{TaskStore: base, assignErr: map[string]error{"t-1": conflict}}
		engine := newTestEngine(t, tasks, users)

		result, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Zero(t, result.Assigned)
		require.Equal(t, 1, result.Failed)
		require.Contains(t, result.Details[0].Reason, "assignment conflict")
	})

	t.Run("candidate search failures fail items, not the batch", func(t *testing.T) {
		tasks := store.NewTaskStore()
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 5, Status: types.StatusTodo})
		engine := newTestEngine(t, tasks, failingUsers{err: errors.New("db down")})

		result, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Zero(t, result.Assigned)
		require.Equal(t, 1, result.Failed)
		require.Contains(t, result.Details[0].Reason, "db down")
	})

	t.Run("crossing the warning threshold notifies the assignee", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		// 33/35 = 94.3% utilization after assignment.
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 33, Status: types.StatusTodo})
		sink := &recordingSink{}
		engine := newTestEngine(t, tasks, users, WithNotifier(sink))

		result, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Equal(t, 1, result.Assigned)
		require.Len(t, sink.alerts, 1)
		require.Equal(t, "u-1", sink.alerts[0].userID)
		require.Equal(t, types.SeverityWarning, sink.alerts[0].severity)
		require.Contains(t, sink.alerts[0].message, "94.3%")
	})

	t.Run("reaching the critical threshold escalates severity", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 35, Status: types.StatusTodo})
		sink := &recordingSink{}
		engine := newTestEngine(t, tasks, users, WithNotifier(sink))

		_, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Len(t, sink.alerts, 1)
		require.Equal(t, types.SeverityCritical, sink.alerts[0].severity)
	})

	t.Run("no notification below the warning threshold", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 10, Status: types.StatusTodo})
		sink := &recordingSink{}
		engine := newTestEngine(t, tasks, users, WithNotifier(sink))

		_, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Empty(t, sink.alerts)
	})

	t.Run("a failing sink never fails the assignment", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 35, Status: types.StatusTodo})
		engine := newTestEngine(t, tasks, users, WithNotifier(failingSink{}))

		result, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Equal(t, 1, result.Assigned)
	})

	t.Run("OnAssigned hook fires per successful assignment", func(t *testing.T) {
		tasks := store.NewTaskStore()
		users := store.NewUserStore()
		users.Put(eligibleUser("u-1"))
		tasks.Put(types.Task{ID: "t-1", EstimatedHours: 5, Status: types.StatusTodo})

		var seen []string
		hooks := &types.Hooks{
			OnAssigned: func(_ context.Context, d types.AssignmentDetail) error {
				seen = append(seen, d.TaskID)

				return nil
			},
		}
		engine := newTestEngine(t, tasks, users, WithHooks(hooks))

		_, err := engine.AssignUnassigned(ctx)

		require.NoError(t, err)
		require.Equal(t, []string{"t-1"}, seen)
	})

	t.Run("listing failure aborts before any processing", func(t *testing.T) {
		engine := newTestEngine(t, &brokenTaskList{}, store.NewUserStore())

		_, err := engine.AssignUnassigned(ctx)

		require.ErrorIs(t, err, ErrRepository)
	})
}

// brokenTaskList fails the unassigned listing itself.
type brokenTaskList struct {
	store.TaskStore
}

func (b *brokenTaskList) FindUnassigned(_ context.Context) ([]types.Task, error) {
	return nil, errors.New("table scan failed")
}
