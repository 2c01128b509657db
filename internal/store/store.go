// Package store connects the task-list state transitions to a storage port:
// every transition that changes the list is followed by a full save.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/antopolskiy/tasklist/internal/state"
	"github.com/antopolskiy/tasklist/internal/storage"
	"github.com/antopolskiy/tasklist/internal/task"
)

// Options configures a Store.
type Options struct {
	ErrorTTL time.Duration
	Logger   *slog.Logger
	Now      func() time.Time
}

// Store owns the current state snapshot. It is not safe for concurrent use;
// callers drive it from a single goroutine.
type Store struct {
	port   storage.Port
	state  state.State
	logger *slog.Logger
	now    func() time.Time
}

// Open loads the slot through port and returns a Store over its contents.
func Open(ctx context.Context, port storage.Port, opts Options) (*Store, error) {
	s := &Store{port: port, logger: opts.Logger, now: opts.Now}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}

	tasks, err := port.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	s.state = state.New(tasks)
	if opts.ErrorTTL > 0 {
		s.state.ErrorTTL = opts.ErrorTTL
	}
	s.logger.Info("store opened", slog.Int("tasks", len(tasks)))
	return s, nil
}

// State returns the current snapshot.
func (s *Store) State() state.State {
	return s.state
}

// Tasks returns the full list in display order.
func (s *Store) Tasks() []task.Task {
	return task.Clone(s.state.Tasks)
}

// Visible returns the tasks selected by the current filter.
func (s *Store) Visible() []task.Task {
	return s.state.Visible()
}

// ErrorMessage returns the error message if it is still visible.
func (s *Store) ErrorMessage() string {
	if s.state.Error.Visible(s.now()) {
		return s.state.Error.Message
	}
	return ""
}

// ErrorTTL returns how long errors stay visible.
func (s *Store) ErrorTTL() time.Duration {
	return s.state.ErrorTTL
}

// Add appends a task. Blank text is ignored and returns (false, nil). A
// duplicate sets the error message and returns a DUPLICATE_TASK error.
func (s *Store) Add(ctx context.Context, text string) (bool, error) {
	next, added := state.Add(s.state, text, s.now())
	s.state = next
	if !added {
		text = strings.TrimSpace(text)
		if text == "" {
			return false, nil
		}
		s.logger.Info("rejected duplicate task", slog.String("text", text))
		return false, task.ValidateDuplicate(text)
	}
	t := next.Tasks[len(next.Tasks)-1]
	return true, s.persist(ctx, "add", t.ID)
}

// Toggle flips completion on the task with id.
func (s *Store) Toggle(ctx context.Context, id string) error {
	return s.apply(ctx, "toggle", id, state.Toggle(s.state, id))
}

// Delete removes the task with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.apply(ctx, "delete", id, state.Delete(s.state, id))
}

// BeginEdit starts editing the task with id.
func (s *Store) BeginEdit(id string) {
	s.state = state.BeginEdit(s.state, id)
}

// SetEditBuffer replaces the edit buffer.
func (s *Store) SetEditBuffer(text string) {
	s.state = state.SetEditBuffer(s.state, text)
}

// CancelEdit abandons the current edit.
func (s *Store) CancelEdit() {
	s.state = state.CancelEdit(s.state)
}

// SaveEdit writes the edit buffer into its task.
func (s *Store) SaveEdit(ctx context.Context) error {
	id := s.state.Edit.ID
	next, changed := state.SaveEdit(s.state)
	s.state = next
	if !changed {
		return nil
	}
	return s.persist(ctx, "edit", id)
}

// SetFilter changes the active filter.
func (s *Store) SetFilter(f task.Filter) {
	s.state = state.SetFilter(s.state, f)
}

// ExpireError clears the error message if its time is up.
func (s *Store) ExpireError() {
	s.state = state.ExpireError(s.state, s.now())
}

// Reload replaces the list with the slot's current contents.
func (s *Store) Reload(ctx context.Context) error {
	tasks, err := s.port.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading tasks: %w", err)
	}
	s.state = state.Replace(s.state, tasks)
	s.logger.Debug("store reloaded", slog.Int("tasks", len(tasks)))
	return nil
}

func (s *Store) apply(ctx context.Context, action, id string, next state.State) error {
	before := s.state.Tasks
	s.state = next
	if sameList(before, next.Tasks) {
		return nil
	}
	return s.persist(ctx, action, id)
}

// persist writes the whole list. The in-memory state has already advanced;
// a failed write is logged and returned but not rolled back.
func (s *Store) persist(ctx context.Context, action, id string) error {
	if err := s.port.Save(ctx, s.state.Tasks); err != nil {
		s.logger.Error("saving tasks failed",
			slog.String("action", action),
			slog.String("id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("saving tasks: %w", err)
	}
	s.logger.Info("task "+action, slog.String("id", id), slog.Int("tasks", len(s.state.Tasks)))
	return nil
}

func sameList(a, b []task.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
