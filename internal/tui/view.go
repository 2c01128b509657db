package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/tasklist/internal/task"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Padding(0, 1)

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(0, 1)

	activeFilterStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2) //nolint:mnd // dialog padding
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.mode == modeHelp {
		return m.viewHelp()
	}

	parts := []string{titleStyle.Render(m.title)}
	if msg := m.store.ErrorMessage(); msg != "" {
		parts = append(parts, bannerStyle.Render(msg), "")
	}
	parts = append(parts,
		m.renderForm(),
		"",
		m.renderFilters(),
		"",
		m.renderList(),
		"",
		m.renderStatusBar(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderForm() string {
	hint := dimStyle.Render("a to add")
	if m.mode == modeAdd {
		hint = dimStyle.Render("enter to add, esc to leave")
	}
	return m.add.View() + "\n" + hint
}

func (m *Model) renderFilters() string {
	current := m.store.State().Filter
	buttons := make([]string, len(task.Filters))
	for i, f := range task.Filters {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == current {
			buttons[i] = activeFilterStyle.Render(label)
		} else {
			buttons[i] = filterStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m *Model) renderList() string {
	visible := m.store.Visible()
	if len(visible) == 0 {
		return dimStyle.Render("  (no tasks)")
	}

	st := m.store.State()
	textWidth := m.width - 8 //nolint:mnd // cursor + checkbox + gaps
	lines := make([]string, len(visible))
	for i, t := range visible {
		cursor := "  "
		if i == m.cursor && m.mode != modeAdd {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}

		var text string
		switch {
		case m.mode == modeEdit && st.Editing(t.ID):
			text = m.edit.View()
		case t.Completed:
			text = doneStyle.Render(truncate(t.Text, textWidth))
		default:
			text = truncate(t.Text, textWidth)
		}
		lines[i] = cursor + box + " " + text
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatusBar() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}

	all := m.store.Tasks()
	left := fmt.Sprintf("%d tasks, %d done", len(all), task.Count(all, task.FilterCompleted))
	var hints string
	switch m.mode {
	case modeEdit:
		hints = "enter:save  esc:cancel"
	case modeAdd:
		hints = "enter:add  esc:back"
	default:
		hints = "a:add  space:toggle  e:edit  d:delete  tab:filter  ?:help  q:quit"
	}
	return statusBarStyle.Render(left + "  " + hints)
}

func (m *Model) viewHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Keyboard shortcuts"))
	sb.WriteString("\n")
	for _, b := range keys.helpBindings() {
		h := b.Help()
		fmt.Fprintf(&sb, "%-10s %s\n", h.Key, dimStyle.Render(h.Desc))
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Press any key to return"))
	return dialogStyle.Render(sb.String())
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
