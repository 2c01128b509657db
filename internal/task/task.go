// Package task defines the task record, its slot encoding, and the helpers
// that select and look up tasks in an ordered list.
package task

import (
	"strings"

	"github.com/google/uuid"
)

// Task is a single to-do entry.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// New returns an incomplete task with a freshly generated ID.
// The text is stored as given; callers trim it first.
func New(text string) Task {
	return Task{ID: NewID(), Text: text}
}

// NewID generates a stable task identifier.
func NewID() string {
	return uuid.NewString()
}

// ShortID returns the first 8 characters of an ID for display.
func ShortID(id string) string {
	const shortLen = 8
	if len(id) <= shortLen {
		return id
	}
	return id[:shortLen]
}

// SameText reports whether two task texts are equal ignoring case.
func SameText(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Clone returns a copy of tasks that shares no backing array with the input.
func Clone(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
