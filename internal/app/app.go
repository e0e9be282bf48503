// Package app contains the root application model.
package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/formdeck/formdeck/internal/cachemanager"
	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/keys"
	"github.com/formdeck/formdeck/internal/log"
	"github.com/formdeck/formdeck/internal/mode"
	"github.com/formdeck/formdeck/internal/mode/playground"
	"github.com/formdeck/formdeck/internal/session"
	"github.com/formdeck/formdeck/internal/tracing"
	"github.com/formdeck/formdeck/internal/ui/logoverlay"
	"github.com/formdeck/formdeck/internal/ui/styles"
	"github.com/formdeck/formdeck/internal/watcher"
)

// configChangedMsg fires after the watcher reports a (debounced) change
// to the config file.
type configChangedMsg struct{}

// Model is the root application state.
type Model struct {
	// Mode management
	currentMode mode.AppMode
	playground  mode.Controller

	// Shared services (passed to mode controllers)
	services mode.Services
	keys     keys.KeyMap

	// Global state
	width  int
	height int

	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *log.LogListener

	// Config hot reload
	watcherHandle *watcher.Watcher
	configChanges <-chan struct{}

	// Registry tracing for the session
	recorder *tracing.Recorder
}

// NewWithConfig creates the application model with the provided
// configuration. configPath is the config file to watch for live
// reloads; empty disables watching. tracer may be nil or disabled.
// debugMode enables the log overlay (Ctrl+L toggle).
func NewWithConfig(
	cfg config.Config,
	renderCache cachemanager.CacheManager[string, string],
	configPath string,
	tracer *tracing.Provider,
	debugMode bool,
) Model {
	sess := session.New()

	// Watch the config file for live reload if we know where it lives
	var (
		watcherHandle *watcher.Watcher
		configChanges <-chan struct{}
	)
	if configPath != "" {
		if w, err := watcher.New(watcher.DefaultConfig(configPath)); err == nil {
			if ch, err := w.Start(); err == nil {
				watcherHandle = w
				configChanges = ch
			} else {
				_ = w.Stop()
			}
		}
		// Hot reload is best-effort; the app works fine without it
	}

	// Record registration events as trace spans for the session
	var recorder *tracing.Recorder
	if tracer != nil && tracer.Enabled() {
		recorder = tracing.NewRecorder(sess.Context(), tracer.Tracer(), sess.ID().String(), sess.Registry())
	}

	// Create shared services
	services := mode.Services{
		Session:     sess,
		Config:      &cfg,
		ConfigPath:  configPath,
		RenderCache: renderCache,
	}

	// Log listener feeds the overlay; nil when logging is disabled
	var logListener *log.LogListener
	if debugMode {
		logListener = log.NewListener(sess.Context())
	}

	return Model{
		currentMode:   mode.ModePlayground,
		playground:    playground.New(services),
		services:      services,
		keys:          keys.DefaultKeyMap(),
		debugMode:     debugMode,
		logOverlay:    logoverlay.New(),
		logListener:   logListener,
		watcherHandle: watcherHandle,
		configChanges: configChanges,
		recorder:      recorder,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.playground.Init()}

	if m.configChanges != nil {
		cmds = append(cmds, m.listenConfigChanges())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.playground = m.playground.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)

		return m, nil

	case log.LogEvent:
		// Route to the overlay and re-arm the listener for the next entry
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		if m.logListener != nil {
			return m, tea.Batch(cmd, m.logListener.Listen())
		}
		return m, cmd

	case tea.KeyMsg:
		if m.debugMode && key.Matches(msg, m.keys.ToggleLogs) {
			m.logOverlay.Toggle()
			return m, nil
		}

		// A visible log overlay takes precedence for key handling
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

	case configChangedMsg:
		return m.handleConfigChanged()

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil

	case playground.QuitMsg:
		return m, tea.Quit
	}

	// Delegate all other messages to the active mode controller
	var cmd tea.Cmd
	m.playground, cmd = m.playground.Update(msg)
	return m, cmd
}

// handleConfigChanged re-reads the config file, applies theme changes
// globally, and hands the new configuration to the mode.
func (m Model) handleConfigChanged() (tea.Model, tea.Cmd) {
	rearm := m.listenConfigChanges()

	cfg, err := config.Load(m.services.ConfigPath)
	if err != nil {
		log.Warn(log.CatConfig, "config reload failed", "error", err)
		return m, rearm
	}
	log.Info(log.CatConfig, "configuration reloaded", "path", m.services.ConfigPath)

	// Other holders of the services pointer see the new values too
	*m.services.Config = cfg
	styles.ApplyTheme(cfg.Theme.Highlight, cfg.Theme.Subtle, cfg.Theme.Error, cfg.Theme.Success)
	styles.ApplyMode(cfg.Theme.Mode)

	var cmd tea.Cmd
	m.playground, cmd = m.playground.Update(playground.ConfigReloadedMsg{Config: cfg})
	return m, tea.Batch(cmd, rearm)
}

// listenConfigChanges waits for the next debounced watcher signal.
func (m Model) listenConfigChanges() tea.Cmd {
	ch := m.configChanges
	return func() tea.Msg {
		<-ch
		return configChangedMsg{}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch m.currentMode {
	case mode.ModePlayground:
		view = m.playground.View()
	}

	// Overlay log viewer on top (only in debug mode when visible)
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return view
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.recorder != nil {
		m.recorder.Close()
	}
	if m.services.Session != nil {
		m.services.Session.Close()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
