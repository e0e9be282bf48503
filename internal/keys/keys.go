// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the playground.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Pane cycling
	NextPane key.Binding
	PrevPane key.Binding

	// Fragment actions
	Mount     key.Binding
	Unmount   key.Binding
	Edit      key.Binding
	GoToPath  key.Binding
	FocusDemo key.Binding

	// General
	Help         key.Binding
	ToggleLogs   key.Binding
	ToggleStatus key.Binding
	Escape       key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "move right"),
		),

		// Pane cycling
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),

		// Fragment actions
		Mount: key.NewBinding(
			key.WithKeys("m", "enter"),
			key.WithHelp("m", "mount fragment"),
		),
		Unmount: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmount fragment"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit fields"),
		),
		GoToPath: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "go to path"),
		),
		FocusDemo: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "disable all but selection"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle logs"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextPane, k.PrevPane},   // Navigation
		{k.Mount, k.Unmount, k.Edit, k.GoToPath, k.FocusDemo},     // Fragments
		{k.Help, k.ToggleLogs, k.ToggleStatus, k.Escape, k.Quit},  // General
	}
}

// EditKeyMap defines the keybindings while a field editor is focused.
type EditKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Commit    key.Binding
	Cancel    key.Binding
}

// DefaultEditKeyMap returns the keybindings for field editing.
func DefaultEditKeyMap() EditKeyMap {
	return EditKeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "commit value"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop editing"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k EditKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Cancel}
}

// FullHelp returns keybindings for the full help view.
func (k EditKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{k.Commit, k.Cancel},
	}
}
