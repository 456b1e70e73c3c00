package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/taskwell/autoassign/types"
)

// TaskStore is an in-memory types.TaskRepository.
//
// Reads go through a concurrent map; the conditional assignment writes
// serialize on a mutex so the check-and-set pair is atomic with respect to
// other writers.
type TaskStore struct {
	mu    sync.Mutex // guards the check-and-set in Assign/Reassign/Unassign
	tasks *xsync.Map[string, types.Task]
}

var _ types.TaskRepository = (*TaskStore)(nil)

// NewTaskStore creates an empty in-memory task repository.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: xsync.NewMap[string, types.Task]()}
}

// Put inserts or replaces a task. This is the seeding path for the
// surrounding CRUD layer; the engine itself never calls it.
func (s *TaskStore) Put(task types.Task) {
	s.tasks.Store(task.ID, task)
}

// FindUnassigned returns tasks with no assignee and a status other than
// completed, ordered by ID for deterministic output.
func (s *TaskStore) FindUnassigned(_ context.Context) ([]types.Task, error) {
	var unassigned []types.Task
	s.tasks.Range(func(_ string, task types.Task) bool {
		if !task.Assigned() && task.Active() {
			unassigned = append(unassigned, task)
		}

		return true
	})
	sort.Slice(unassigned, func(i, j int) bool { return unassigned[i].ID < unassigned[j].ID })

	return unassigned, nil
}

// FindByID resolves a single task.
func (s *TaskStore) FindByID(_ context.Context, id string) (types.Task, error) {
	task, ok := s.tasks.Load(id)
	if !ok {
		return types.Task{}, fmt.Errorf("%w: %s", types.ErrTaskNotFound, id)
	}

	return task, nil
}

// FindByAssignee returns every task currently assigned to the user,
// regardless of status, ordered by ID.
func (s *TaskStore) FindByAssignee(_ context.Context, userID string) ([]types.Task, error) {
	var held []types.Task
	s.tasks.Range(func(_ string, task types.Task) bool {
		if task.AssigneeID == userID {
			held = append(held, task)
		}

		return true
	})
	sort.Slice(held, func(i, j int) bool { return held[i].ID < held[j].ID })

	return held, nil
}

// Assign sets the task's assignee and marks it auto-assigned, only if the
// task is currently unassigned.
func (s *TaskStore) Assign(_ context.Context, taskID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks.Load(taskID)
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrTaskNotFound, taskID)
	}
	if task.Assigned() {
		return fmt.Errorf("%w: task %s already assigned to %s",
			types.ErrAssignmentConflict, taskID, task.AssigneeID)
	}

	task.AssigneeID = userID
	task.AutoAssigned = true
	s.tasks.Store(taskID, task)

	return nil
}

// Reassign moves the task from fromUserID to toUserID, only if fromUserID
// is still the current assignee.
func (s *TaskStore) Reassign(_ context.Context, taskID, fromUserID, toUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks.Load(taskID)
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrTaskNotFound, taskID)
	}
	if task.AssigneeID != fromUserID {
		return fmt.Errorf("%w: task %s is held by %q, expected %q",
			types.ErrAssignmentConflict, taskID, task.AssigneeID, fromUserID)
	}

	task.AssigneeID = toUserID
	task.AutoAssigned = true
	s.tasks.Store(taskID, task)

	return nil
}

// Unassign clears the task's assignee. This is the explicit unassignment
// hook for the surrounding CRUD layer; the engine never unassigns.
func (s *TaskStore) Unassign(_ context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks.Load(taskID)
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrTaskNotFound, taskID)
	}

	task.AssigneeID = ""
	task.AutoAssigned = false
	s.tasks.Store(taskID, task)

	return nil
}

// UserStore is an in-memory types.UserRepository.
type UserStore struct {
	users *xsync.Map[string, types.User]
}

var _ types.UserRepository = (*UserStore)(nil)

// NewUserStore creates an empty in-memory user repository.
func NewUserStore() *UserStore {
	return &UserStore{users: xsync.NewMap[string, types.User]()}
}

// Put inserts or replaces a user.
func (s *UserStore) Put(user types.User) {
	s.users.Store(user.ID, user)
}

// FindEligible returns users permitted to receive task assignments,
// ordered by ID for deterministic candidate enumeration.
func (s *UserStore) FindEligible(_ context.Context) ([]types.User, error) {
	var eligible []types.User
	s.users.Range(func(_ string, user types.User) bool {
		if user.CanReceiveTasks {
			eligible = append(eligible, user)
		}

		return true
	})
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })

	return eligible, nil
}

// FindByID resolves a single user.
func (s *UserStore) FindByID(_ context.Context, id string) (types.User, error) {
	user, ok := s.users.Load(id)
	if !ok {
		return types.User{}, fmt.Errorf("%w: %s", types.ErrUserNotFound, id)
	}

	return user, nil
}
