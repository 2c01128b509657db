// Package tui implements an interactive terminal UI for a task list.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/antopolskiy/tasklist/internal/clierr"
	"github.com/antopolskiy/tasklist/internal/store"
	"github.com/antopolskiy/tasklist/internal/task"
)

// mode represents what currently receives key presses.
type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeHelp
)

const addPlaceholder = "What needs to be done?"

// Model is the top-level bubbletea model.
type Model struct {
	ctx    context.Context
	store  *store.Store
	title  string
	mode   mode
	cursor int
	width  int
	height int
	err    error

	add  textinput.Model
	edit textinput.Model
}

// ReloadMsg is sent by the file watcher to re-read the slot.
type ReloadMsg struct{}

// ErrMsg reports a background failure (e.g. from the watcher) in the status line.
type ErrMsg struct{ Err error }

// expireMsg fires once the error notice's lifetime has elapsed.
type expireMsg struct{}

// New creates a Model over st. ctx bounds every storage call made from Update.
func New(ctx context.Context, st *store.Store, title string) *Model {
	add := textinput.New()
	add.Placeholder = addPlaceholder
	add.Prompt = "> "

	edit := textinput.New()
	edit.Prompt = ""

	return &Model{ctx: ctx, store: st, title: title, add: add, edit: edit}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Err returns the last storage error shown in the status line, if any.
func (m *Model) Err() error {
	return m.err
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.add.Width = max(msg.Width-len(m.add.Prompt)-1, 0)
		return m, nil
	case ReloadMsg:
		m.err = m.store.Reload(m.ctx)
		if m.mode == modeEdit && !m.store.State().Edit.Active() {
			m.leaveEdit()
		}
		m.clampCursor()
		return m, nil
	case expireMsg:
		m.store.ExpireError()
		return m, nil
	case ErrMsg:
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Abort) {
		return m, tea.Quit
	}

	switch m.mode {
	case modeAdd:
		return m.handleAddKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	case modeHelp:
		m.mode = modeList
		return m, nil
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.mode = modeHelp
	case key.Matches(msg, keys.Add):
		m.mode = modeAdd
		return m, m.add.Focus()
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.store.Visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		if t, ok := m.selected(); ok {
			m.err = m.store.Toggle(m.ctx, t.ID)
			m.clampCursor()
		}
	case key.Matches(msg, keys.Delete):
		if t, ok := m.selected(); ok {
			m.err = m.store.Delete(m.ctx, t.ID)
			m.clampCursor()
		}
	case key.Matches(msg, keys.Edit):
		if t, ok := m.selected(); ok {
			m.store.BeginEdit(t.ID)
			m.mode = modeEdit
			m.edit.SetValue(t.Text)
			m.edit.CursorEnd()
			return m, m.edit.Focus()
		}
	case key.Matches(msg, keys.All):
		m.setFilter(task.FilterAll)
	case key.Matches(msg, keys.Done):
		m.setFilter(task.FilterCompleted)
	case key.Matches(msg, keys.Todo):
		m.setFilter(task.FilterIncomplete)
	case key.Matches(msg, keys.Next):
		m.setFilter(nextFilter(m.store.State().Filter))
	case key.Matches(msg, keys.Reload):
		return m.Update(ReloadMsg{})
	}
	return m, nil
}

func (m *Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.add.Blur()
		m.mode = modeList
		return m, nil
	case key.Matches(msg, keys.Submit):
		return m.submitAdd()
	}

	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

// submitAdd adds the form's text. On success the form is cleared; on a
// duplicate the text stays so it can be corrected, and the notice is
// scheduled to expire.
func (m *Model) submitAdd() (tea.Model, tea.Cmd) {
	added, err := m.store.Add(m.ctx, m.add.Value())
	var cerr *clierr.Error
	if errors.As(err, &cerr) && cerr.Code == clierr.DuplicateTask {
		return m, expireAfter(m.store.ErrorTTL())
	}
	m.err = err
	m.add.Reset()
	if added {
		m.cursor = max(len(m.store.Visible())-1, 0)
	}
	return m, nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.store.CancelEdit()
		m.leaveEdit()
		return m, nil
	case key.Matches(msg, keys.Submit):
		m.err = m.store.SaveEdit(m.ctx)
		m.leaveEdit()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.store.SetEditBuffer(m.edit.Value())
	return m, cmd
}

func (m *Model) leaveEdit() {
	m.edit.Blur()
	m.edit.Reset()
	m.mode = modeList
}

func (m *Model) setFilter(f task.Filter) {
	m.store.SetFilter(f)
	m.clampCursor()
}

func (m *Model) selected() (task.Task, bool) {
	visible := m.store.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return task.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.store.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextFilter(f task.Filter) task.Filter {
	for i, candidate := range task.Filters {
		if candidate == f {
			return task.Filters[(i+1)%len(task.Filters)]
		}
	}
	return task.FilterAll
}

func expireAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return expireMsg{} })
}
