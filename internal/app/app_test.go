package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/keys"
	"github.com/formdeck/formdeck/internal/mode"
	"github.com/formdeck/formdeck/internal/mode/playground"
	"github.com/formdeck/formdeck/internal/session"
	"github.com/formdeck/formdeck/internal/ui/logoverlay"

	tea "github.com/charmbracelet/bubbletea"
)

// createTestModel creates a minimal Model for testing. No config file,
// no watcher, no tracing.
func createTestModel(debugMode bool) Model {
	cfg := config.Defaults()
	cfg.Playground.AutoMount = nil
	services := mode.Services{
		Session: session.New(),
		Config:  &cfg,
	}

	return Model{
		currentMode: mode.ModePlayground,
		playground:  playground.New(services),
		services:    services,
		keys:        keys.DefaultKeyMap(),
		debugMode:   debugMode,
		logOverlay:  logoverlay.New(),
		width:       100,
		height:      40,
	}
}

func TestApp_DefaultMode(t *testing.T) {
	m := createTestModel(false)
	assert.Equal(t, mode.ModePlayground, m.currentMode, "expected default mode to be playground")
}

func TestApp_NewWithConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Playground.AutoMount = nil

	m := NewWithConfig(cfg, nil, "", nil, false)

	assert.Equal(t, mode.ModePlayground, m.currentMode)
	assert.NotNil(t, m.playground, "playground mode should be initialized")
	assert.Nil(t, m.watcherHandle, "empty config path should not start a watcher")
	assert.Nil(t, m.recorder, "nil tracer should not create a recorder")

	assert.NoError(t, m.Close())
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m := createTestModel(false)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = newModel.(Model)

	assert.Equal(t, 120, m.width, "expected width to be updated")
	assert.Equal(t, 50, m.height, "expected height to be updated")

	// The resized playground should render its panes
	view := m.View()
	assert.Contains(t, view, "Fragments")
	assert.Contains(t, view, "Form Tree")
}

func TestApp_ViewDelegates(t *testing.T) {
	m := createTestModel(false)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = newModel.(Model)

	view := m.View()
	assert.NotEmpty(t, view, "expected non-empty view from playground mode")
}

func TestApp_QuitMsgQuits(t *testing.T) {
	m := createTestModel(false)

	_, cmd := m.Update(playground.QuitMsg{})

	assert.NotNil(t, cmd, "expected quit command")
	assert.IsType(t, tea.QuitMsg{}, cmd(), "expected tea.Quit")
}

func TestApp_KeysDelegateToPlayground(t *testing.T) {
	m := createTestModel(false)
	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = newModel.(Model)

	// "?" opens the playground help overlay; the app just passes it on.
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newModel.(Model)

	view := m.View()
	assert.Contains(t, view, "formdeck playground", "help overlay should be visible")
}

func TestApp_ToggleLogsRequiresDebugMode(t *testing.T) {
	m := createTestModel(false)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = newModel.(Model)

	assert.False(t, m.logOverlay.Visible(), "overlay must stay hidden without debug mode")
}

func TestApp_ToggleLogsInDebugMode(t *testing.T) {
	m := createTestModel(true)
	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = newModel.(Model)

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = newModel.(Model)
	assert.True(t, m.logOverlay.Visible(), "ctrl+l should show the overlay in debug mode")

	// While visible the overlay takes key precedence; esc closes it.
	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = newModel.(Model)
	assert.NotNil(t, cmd, "expected CloseMsg command")

	newModel, _ = m.Update(cmd())
	m = newModel.(Model)
	assert.False(t, m.logOverlay.Visible(), "overlay should hide after CloseMsg")
}

func TestApp_ConfigChangedWithoutFileKeepsRunning(t *testing.T) {
	m := createTestModel(false)

	// No config path: the reload fails and the app carries on.
	newModel, cmd := m.Update(configChangedMsg{})
	m = newModel.(Model)

	assert.NotNil(t, cmd, "listener should be re-armed even on failure")
	assert.Equal(t, mode.ModePlayground, m.currentMode)
}

func TestApp_ConfigReloadAppliesToMode(t *testing.T) {
	m := createTestModel(false)
	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = newModel.(Model)

	cfg := config.Defaults()
	cfg.UI.ShowSeq = false
	newModel, _ = m.Update(playground.ConfigReloadedMsg{Config: cfg})
	m = newModel.(Model)

	view := m.View()
	assert.Contains(t, view, "configuration reloaded")
}

func TestApp_CloseIsIdempotentWithoutResources(t *testing.T) {
	m := createTestModel(false)

	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close(), "closing twice must not error")
}
