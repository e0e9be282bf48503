// Package mode defines the mode controller interface and shared services.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/formdeck/formdeck/internal/cachemanager"
	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/session"
)

// AppMode identifies the current application mode. The playground is the
// only mode today; the indirection keeps the app model ready for more.
type AppMode int

const (
	ModePlayground AppMode = iota
)

// Controller defines the interface all modes must implement.
type Controller interface {
	// Init returns initial commands for the mode.
	Init() tea.Cmd

	// Update handles messages and returns updated model and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the mode's UI.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Session    *session.Session
	Config     *config.Config
	ConfigPath string

	// RenderCache keeps expensive render output (help markdown) warm
	// across overlay reopenings.
	RenderCache cachemanager.CacheManager[string, string]
}
