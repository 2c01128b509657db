package task

import "github.com/antopolskiy/tasklist/internal/clierr"

// Filter selects which tasks are displayed. It never changes stored state.
type Filter string

// Filters in display order.
const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
)

// Filters lists every filter in the order the UI presents them.
var Filters = []Filter{FilterAll, FilterCompleted, FilterIncomplete}

// Label returns the button label for a filter.
func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterIncomplete:
		return "Incomplete"
	default:
		return "All"
	}
}

// Matches reports whether t passes the filter. Unknown filters behave as all.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterIncomplete:
		return !t.Completed
	default:
		return true
	}
}

// ParseFilter converts a filter name into a Filter. The empty string is all.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", clierr.Newf(clierr.InvalidFilter, "invalid filter %q", s).
		WithDetails(map[string]any{
			"filter":  s,
			"allowed": Filters,
		})
}

// Apply returns the subsequence of tasks matching f, preserving order.
// The input slice is not modified.
func Apply(tasks []Task, f Filter) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}

// Count returns how many tasks match f.
func Count(tasks []Task, f Filter) int {
	n := 0
	for _, t := range tasks {
		if f.Matches(t) {
			n++
		}
	}
	return n
}
