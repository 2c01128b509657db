package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/tasklist/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
}

const maxTextWidth = 60

// TaskTable renders tasks as a formatted table. An empty list prints a
// notice to empty instead.
func TaskTable(w, empty io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(empty, "No tasks found.")
		return
	}

	const idW, doneW = 10, 6
	header := fmt.Sprintf("%-*s %-*s %s", idW, "ID", doneW, "DONE", "TEXT")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		mark := dimStyle.Render(padRight("[ ]", doneW))
		text := truncate(t.Text, maxTextWidth)
		if t.Completed {
			mark = padRight("[x]", doneW)
			text = doneStyle.Render(text)
		}
		fmt.Fprintf(w, "%-*s %s %s\n", idW, task.ShortID(t.ID), mark, text)
	}
}

// TaskCompact renders one line per task: "<id> [x] text".
func TaskCompact(w, empty io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(empty, "No tasks found.")
		return
	}
	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(w, "%s %s %s\n", task.ShortID(t.ID), mark, t.Text)
	}
}

// Summary returns "N tasks (D done)".
func Summary(tasks []task.Task) string {
	done := task.Count(tasks, task.FilterCompleted)
	noun := "tasks"
	if len(tasks) == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s (%d done)", len(tasks), noun, done)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
