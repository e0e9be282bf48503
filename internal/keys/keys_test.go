package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_KeyAssignments(t *testing.T) {
	keymap := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{
			name:     "Up uses k and up",
			binding:  keymap.Up,
			expected: []string{"k", "up"},
		},
		{
			name:     "Down uses j and down",
			binding:  keymap.Down,
			expected: []string{"j", "down"},
		},
		{
			name:     "NextPane uses tab",
			binding:  keymap.NextPane,
			expected: []string{"tab"},
		},
		{
			name:     "Mount uses m and enter",
			binding:  keymap.Mount,
			expected: []string{"m", "enter"},
		},
		{
			name:     "Unmount uses u",
			binding:  keymap.Unmount,
			expected: []string{"u"},
		},
		{
			name:     "GoToPath uses slash",
			binding:  keymap.GoToPath,
			expected: []string{"/"},
		},
		{
			name:     "FocusDemo uses d",
			binding:  keymap.FocusDemo,
			expected: []string{"d"},
		},
		{
			name:     "ToggleLogs uses ctrl+l",
			binding:  keymap.ToggleLogs,
			expected: []string{"ctrl+l"},
		},
		{
			name:     "Quit uses q and ctrl+c",
			binding:  keymap.Quit,
			expected: []string{"q", "ctrl+c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpTextDefined(t *testing.T) {
	keymap := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", keymap.Up},
		{"Down", keymap.Down},
		{"Left", keymap.Left},
		{"Right", keymap.Right},
		{"NextPane", keymap.NextPane},
		{"PrevPane", keymap.PrevPane},
		{"Mount", keymap.Mount},
		{"Unmount", keymap.Unmount},
		{"Edit", keymap.Edit},
		{"GoToPath", keymap.GoToPath},
		{"FocusDemo", keymap.FocusDemo},
		{"Help", keymap.Help},
		{"ToggleLogs", keymap.ToggleLogs},
		{"ToggleStatus", keymap.ToggleStatus},
		{"Escape", keymap.Escape},
		{"Quit", keymap.Quit},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			help := b.binding.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		})
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	keymap := DefaultKeyMap()

	help := keymap.ShortHelp()
	require.Len(t, help, 2, "short help should contain 2 bindings")
	require.Equal(t, keymap.Help, help[0])
	require.Equal(t, keymap.Quit, help[1])
}

func TestKeyMap_FullHelp(t *testing.T) {
	keymap := DefaultKeyMap()

	help := keymap.FullHelp()
	require.Len(t, help, 3, "full help should contain 3 rows")

	// First row: navigation
	require.Contains(t, help[0], keymap.Up)
	require.Contains(t, help[0], keymap.Down)
	require.Contains(t, help[0], keymap.NextPane)

	// Second row: fragment actions
	require.Contains(t, help[1], keymap.Mount)
	require.Contains(t, help[1], keymap.Unmount)
	require.Contains(t, help[1], keymap.GoToPath)

	// Third row: general
	require.Contains(t, help[2], keymap.Quit)
}

func TestDefaultEditKeyMap_KeyAssignments(t *testing.T) {
	keymap := DefaultEditKeyMap()

	require.Equal(t, []string{"tab", "down"}, keymap.NextField.Keys())
	require.Equal(t, []string{"shift+tab", "up"}, keymap.PrevField.Keys())
	require.Equal(t, []string{"enter"}, keymap.Commit.Keys())
	require.Equal(t, []string{"esc"}, keymap.Cancel.Keys())
}

func TestEditKeyMap_Help(t *testing.T) {
	keymap := DefaultEditKeyMap()

	short := keymap.ShortHelp()
	require.Len(t, short, 2)
	require.Equal(t, keymap.Commit, short[0])
	require.Equal(t, keymap.Cancel, short[1])

	full := keymap.FullHelp()
	require.Len(t, full, 2)
	require.Contains(t, full[0], keymap.NextField)
	require.Contains(t, full[1], keymap.Commit)
}
