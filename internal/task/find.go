package task

import (
	"strings"

	"github.com/antopolskiy/tasklist/internal/clierr"
)

// IndexOf returns the position of the task with the given ID, or -1.
func IndexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ContainsText reports whether any task has text equal to text ignoring case.
// Stored texts are compared as saved: an edit may leave surrounding spaces,
// and " buy milk " does not match "Buy milk".
func ContainsText(tasks []Task, text string) bool {
	for _, t := range tasks {
		if SameText(t.Text, text) {
			return true
		}
	}
	return false
}

// Resolve finds the task whose ID equals ref or starts with it. Prefixes must
// be unambiguous.
func Resolve(tasks []Task, ref string) (Task, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return Task{}, ValidateTaskRef(ref)
	}

	var matches []Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return Task{}, clierr.Newf(clierr.TaskNotFound, "task not found: %s", ref).
			WithDetails(map[string]any{"id": ref})
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return Task{}, clierr.Newf(clierr.AmbiguousID, "task ID %q matches %d tasks", ref, len(matches)).
			WithDetails(map[string]any{"id": ref, "matches": ids})
	}
}
