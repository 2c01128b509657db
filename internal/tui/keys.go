package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Submit key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Edit   key.Binding
	Delete key.Binding
	All    key.Binding
	Done   key.Binding
	Todo   key.Binding
	Next   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
	Abort  key.Binding
}

var keys = keyMap{
	Add:    key.NewBinding(key.WithKeys("a", "/"), key.WithHelp("a, /", "add a task")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit / save edit")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave form / cancel edit")),
	Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k, ↑", "move up")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j, ↓", "move down")),
	Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space, x", "toggle complete")),
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
	All:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "show all")),
	Done:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "show completed")),
	Todo:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "show incomplete")),
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Abort:  key.NewBinding(key.WithKeys("ctrl+c")),
}

// helpBindings lists the bindings shown on the help screen, in order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Add, k.Submit, k.Back, k.Up, k.Down, k.Toggle, k.Edit, k.Delete,
		k.All, k.Done, k.Todo, k.Next, k.Reload, k.Help, k.Quit,
	}
}
