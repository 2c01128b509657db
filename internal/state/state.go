// Package state holds the task list and its transient UI state as an
// immutable snapshot. Every transition takes a State and returns a new one;
// the input is never modified.
package state

import (
	"strings"
	"time"

	"github.com/antopolskiy/tasklist/internal/task"
)

// DefaultErrorTTL is how long an error message stays visible.
const DefaultErrorTTL = 2 * time.Second

// Edit tracks the single task being edited.
type Edit struct {
	ID     string
	Buffer string
}

// Active reports whether an edit is in progress.
func (e Edit) Active() bool {
	return e.ID != ""
}

// Notice is a user-facing message with an expiry.
type Notice struct {
	Message string
	Expires time.Time
}

// Visible reports whether the notice should be shown at now.
func (n Notice) Visible(now time.Time) bool {
	return n.Message != "" && now.Before(n.Expires)
}

// State is a snapshot of the task list and the UI state around it.
type State struct {
	Tasks    []task.Task
	Filter   task.Filter
	Edit     Edit
	Error    Notice
	ErrorTTL time.Duration
}

// New returns a State over tasks with the default filter and error TTL.
func New(tasks []task.Task) State {
	return State{
		Tasks:    task.Clone(tasks),
		Filter:   task.FilterAll,
		ErrorTTL: DefaultErrorTTL,
	}
}

// Visible returns the tasks selected by the current filter.
func (s State) Visible() []task.Task {
	return task.Apply(s.Tasks, s.Filter)
}

// Editing reports whether the task with id is the edit target.
func (s State) Editing(id string) bool {
	return s.Edit.Active() && s.Edit.ID == id
}

func (s State) ttl() time.Duration {
	if s.ErrorTTL <= 0 {
		return DefaultErrorTTL
	}
	return s.ErrorTTL
}

// Add appends a new task with the trimmed text. Whitespace-only text is
// ignored. Text equal to an existing task ignoring case is rejected: the list
// is unchanged and the duplicate message is shown until now+ErrorTTL.
// The second result reports whether a task was added.
func Add(s State, text string, now time.Time) (State, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s, false
	}
	if task.ContainsText(s.Tasks, text) {
		s.Error = Notice{Message: task.DuplicateMessage, Expires: now.Add(s.ttl())}
		return s, false
	}
	tasks := make([]task.Task, len(s.Tasks), len(s.Tasks)+1)
	copy(tasks, s.Tasks)
	s.Tasks = append(tasks, task.New(text))
	return s, true
}

// Toggle flips the completed flag on the task with id. Unknown ids are a
// no-op.
func Toggle(s State, id string) State {
	i := task.IndexOf(s.Tasks, id)
	if i < 0 {
		return s
	}
	s.Tasks = task.Clone(s.Tasks)
	s.Tasks[i].Completed = !s.Tasks[i].Completed
	return s
}

// Delete removes the task with id, keeping the order of the rest. An edit on
// the deleted task is dropped. Unknown ids are a no-op.
func Delete(s State, id string) State {
	i := task.IndexOf(s.Tasks, id)
	if i < 0 {
		return s
	}
	tasks := make([]task.Task, 0, len(s.Tasks)-1)
	tasks = append(tasks, s.Tasks[:i]...)
	s.Tasks = append(tasks, s.Tasks[i+1:]...)
	if s.Edit.ID == id {
		s.Edit = Edit{}
	}
	return s
}

// BeginEdit makes the task with id the edit target and loads its text into
// the buffer, abandoning any other unsaved edit. Unknown ids are a no-op.
func BeginEdit(s State, id string) State {
	i := task.IndexOf(s.Tasks, id)
	if i < 0 {
		return s
	}
	s.Edit = Edit{ID: id, Buffer: s.Tasks[i].Text}
	return s
}

// SetEditBuffer replaces the edit buffer. It does nothing without an edit.
func SetEditBuffer(s State, text string) State {
	if !s.Edit.Active() {
		return s
	}
	s.Edit.Buffer = text
	return s
}

// SaveEdit writes the buffer into the edit target as-is and clears the edit.
// Unlike Add it neither trims nor checks for duplicates or empty text.
// The second result reports whether a task changed.
func SaveEdit(s State) (State, bool) {
	edit := s.Edit
	s.Edit = Edit{}
	if !edit.Active() {
		return s, false
	}
	i := task.IndexOf(s.Tasks, edit.ID)
	if i < 0 {
		return s, false
	}
	s.Tasks = task.Clone(s.Tasks)
	s.Tasks[i].Text = edit.Buffer
	return s, true
}

// CancelEdit drops the edit without touching the list.
func CancelEdit(s State) State {
	s.Edit = Edit{}
	return s
}

// SetFilter changes the active filter.
func SetFilter(s State, f task.Filter) State {
	s.Filter = f
	return s
}

// ExpireError clears the error once now reaches its expiry. Calling it again
// after the error is gone is harmless.
func ExpireError(s State, now time.Time) State {
	if s.Error.Message != "" && !now.Before(s.Error.Expires) {
		s.Error = Notice{}
	}
	return s
}

// Replace swaps in a freshly loaded list. An edit whose target disappeared is
// dropped.
func Replace(s State, tasks []task.Task) State {
	s.Tasks = task.Clone(tasks)
	if s.Edit.Active() && task.IndexOf(s.Tasks, s.Edit.ID) < 0 {
		s.Edit = Edit{}
	}
	return s
}
