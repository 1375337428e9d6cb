package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New            key.Binding
	Edit           key.Binding
	Toggle         key.Binding
	ToggleAll      key.Binding
	Delete         key.Binding
	ClearCompleted key.Binding
	All            key.Binding
	Active         key.Binding
	Completed      key.Binding
	Tab            key.Binding
	Stats          key.Binding
	Export         key.Binding
	Help           key.Binding
	Enter          key.Binding
	Back           key.Binding
	Up             key.Binding
	Down           key.Binding
	Quit           key.Binding
}

var keys = keyMap{
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter", "e"),
		key.WithHelp("enter/e", "edit"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "toggle"),
	),
	ToggleAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "toggle all"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	ClearCompleted: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear completed"),
	),
	All: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "all"),
	),
	Active: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "active"),
	),
	Completed: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "completed"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next filter"),
	),
	Stats: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stats"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Toggle, k.Delete, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Edit, k.Toggle, k.Delete},
		{k.ToggleAll, k.ClearCompleted, k.Stats, k.Export},
		{k.All, k.Active, k.Completed, k.Tab},
		{k.Up, k.Down, k.Back, k.Help, k.Quit},
	}
}
