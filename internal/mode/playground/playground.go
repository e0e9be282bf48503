// Package playground provides the interactive form playground: a
// fragment sidebar, the live form tree, the registration event log,
// and a field editor, all wired to one session registry.
package playground

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/demoform"
	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
	"github.com/formdeck/formdeck/internal/keys"
	"github.com/formdeck/formdeck/internal/log"
	"github.com/formdeck/formdeck/internal/mode"
	"github.com/formdeck/formdeck/internal/registry"
	"github.com/formdeck/formdeck/internal/ui/eventlog"
	"github.com/formdeck/formdeck/internal/ui/fieldpane"
	"github.com/formdeck/formdeck/internal/ui/help"
	"github.com/formdeck/formdeck/internal/ui/modal"
	"github.com/formdeck/formdeck/internal/ui/styles"
	"github.com/formdeck/formdeck/internal/ui/treeview"
)

// FocusPane represents which pane has focus.
type FocusPane int

const (
	// FocusSidebar means the fragment list has focus.
	FocusSidebar FocusPane = iota
	// FocusTree means the form tree has focus.
	FocusTree
	// FocusEvents means the event log has focus.
	FocusEvents
	// FocusField means the field editor has focus.
	FocusField
)

// QuitMsg signals that the playground should exit.
type QuitMsg struct{}

// ConfigReloadedMsg carries freshly loaded configuration into the mode.
// The app sends it after the config file changes on disk.
type ConfigReloadedMsg struct {
	Config config.Config
}

// Model holds the playground state.
type Model struct {
	services mode.Services
	keys     keys.KeyMap
	reg      *registry.Registry

	// View state
	focus        FocusPane
	sidebarIndex int
	status       string

	// Fragment catalog and mounts parked on a missing parent
	catalog []demoform.Fragment
	parked  map[string]*registry.Subscription

	// Panes
	tree   *treeview.Model
	events *eventlog.Model
	field  fieldpane.Model
	help   help.Model
	prompt pathPrompt

	// Quit confirmation modal
	quitModal *modal.Model

	// Dimensions
	width         int
	height        int
	showHelp      bool
	showStatusBar bool
	quitting      bool
}

// New creates the playground over the session registry and mounts the
// configured auto-mount fragments in config order. Fragments whose
// parent path is not registered yet are parked and attach themselves
// when the parent appears.
func New(services mode.Services) Model {
	reg := services.Session.Registry()

	reg.Events().Subscribe(func(evt registry.Event) {
		log.Debug(log.CatRegistry, "registration event",
			"seq", evt.Seq, "kind", string(evt.Kind), "path", evt.Path)
	})

	m := Model{
		services:      services,
		keys:          keys.DefaultKeyMap(),
		reg:           reg,
		focus:         FocusSidebar,
		catalog:       demoform.Catalog(),
		parked:        map[string]*registry.Subscription{},
		tree:          treeview.New(reg),
		events:        eventlog.New(reg, services.Config.UI.ShowSeq),
		field:         fieldpane.New(),
		help:          help.New(services.RenderCache, services.Config.UI.MarkdownStyle),
		prompt:        newPathPrompt(),
		showStatusBar: services.Config.UI.ShowStatusBar,
	}

	for _, name := range services.Config.Playground.AutoMount {
		frag, ok := demoform.ByName(name)
		if !ok {
			log.Warn(log.CatUI, "unknown auto_mount fragment", "name", name)
			continue
		}
		m.mountFragment(frag, false)
	}
	m.tree.Refresh()
	m.syncSelection()

	return m
}

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements mode.Controller.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case modal.SubmitMsg:
		// User confirmed quit
		if m.quitModal != nil {
			m.quitting = true
			return m, func() tea.Msg { return QuitMsg{} }
		}
		return m, nil

	case modal.CancelMsg:
		// User cancelled quit
		m.quitModal = nil
		return m, nil

	case fieldpane.CommittedMsg:
		return m.handleCommitted(msg)

	case fieldpane.CancelledMsg:
		m.focus = FocusTree
		m.status = "edit cancelled"
		return m, nil

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config), nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Cursor blink and other component messages flow to the active input.
	if m.field.Editing() {
		var cmd tea.Cmd
		m.field, cmd = m.field.Update(msg)
		return m, cmd
	}
	if m.prompt.active {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	// Ctrl+C always handled first - quit immediately if modal open, else show modal
	if msg.String() == "ctrl+c" {
		if m.quitModal != nil {
			m.quitting = true
			return m, func() tea.Msg { return QuitMsg{} }
		}
		return m.openQuitModal()
	}

	// If quit modal is showing, forward to it
	if m.quitModal != nil {
		newModal, cmd := m.quitModal.Update(msg)
		m.quitModal = &newModal
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.prompt.active {
		return m.handlePromptKey(msg)
	}

	if m.field.Editing() {
		var cmd tea.Cmd
		m.field, cmd = m.field.Update(msg)
		return m, cmd
	}

	return m.handlePaneKeys(msg)
}

// handlePaneKeys handles keys when no overlay is active.
func (m Model) handlePaneKeys(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.openQuitModal()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.GoToPath):
		return m, m.prompt.open()

	case key.Matches(msg, m.keys.NextPane):
		m.focus = m.cyclePane(1)

	case key.Matches(msg, m.keys.PrevPane):
		m.focus = m.cyclePane(-1)

	case key.Matches(msg, m.keys.Left):
		m.focus = FocusSidebar

	case key.Matches(msg, m.keys.Right):
		if m.focus == FocusSidebar {
			m.focus = FocusTree
		}

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Mount):
		// Enter only mounts from the sidebar; "m" works anywhere.
		if m.focus == FocusSidebar || msg.String() == "m" {
			m.mountSelected()
		}

	case key.Matches(msg, m.keys.Unmount):
		m.unmountSelected()

	case key.Matches(msg, m.keys.Edit):
		if m.focus == FocusTree || m.focus == FocusField {
			if cmd := m.field.StartEdit(); cmd != nil {
				m.focus = FocusField
				return m, cmd
			}
			m.status = "only enabled fields are editable"
		}

	case key.Matches(msg, m.keys.FocusDemo):
		m.isolateSelected()

	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatusBar = !m.showStatusBar
		m.layout()

	case key.Matches(msg, m.keys.Escape):
		if m.focus != FocusSidebar {
			m.focus = FocusSidebar
		} else {
			m.status = ""
		}
	}

	return m, nil
}

// handlePromptKey handles keys while the go-to-path prompt is open.
func (m Model) handlePromptKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt.close()
		return m, nil

	case "enter":
		path, ok := m.prompt.resolve(m.reg)
		if !ok {
			return m, nil
		}
		m.prompt.close()
		if m.tree.SelectByPath(path) {
			m.focus = FocusTree
			m.syncSelection()
			m.status = "jumped to " + path.String()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	m.prompt.clearFeedback()
	return m, cmd
}

// handleCommitted records a committed field value and, for tab/shift+tab
// commits, advances to the adjacent enabled field and keeps editing.
func (m Model) handleCommitted(msg fieldpane.CommittedMsg) (mode.Controller, tea.Cmd) {
	m.status = fmt.Sprintf("%s = %v", msg.Path, msg.Value)
	log.Info(log.CatUI, "field committed", "path", msg.Path.String(), "value", fmt.Sprintf("%v", msg.Value))
	m.tree.Refresh()

	if msg.Move != 0 && m.moveToAdjacentField(msg.Move) {
		return m, m.field.StartEdit()
	}
	m.focus = FocusTree
	return m, nil
}

// openQuitModal shows the quit confirmation.
func (m Model) openQuitModal() (mode.Controller, tea.Cmd) {
	mdl := modal.New(modal.Config{
		Title:          "Quit Playground",
		Message:        "Form state lives only in this session. Quit anyway?",
		ConfirmVariant: modal.ButtonDanger,
	})
	mdl.SetSize(m.width, m.height)
	m.quitModal = &mdl
	return m, mdl.Init()
}

// cyclePane moves focus through sidebar, tree, events, field.
func (m Model) cyclePane(dir int) FocusPane {
	const paneCount = 4
	return FocusPane((int(m.focus) + dir + paneCount) % paneCount)
}

// moveSelection moves the cursor within the focused pane.
func (m *Model) moveSelection(delta int) {
	switch m.focus {
	case FocusSidebar:
		n := len(m.catalog)
		if n == 0 {
			return
		}
		m.sidebarIndex = (m.sidebarIndex + delta + n) % n
	case FocusTree:
		m.tree.MoveCursor(delta)
		m.syncSelection()
	case FocusEvents:
		if delta > 0 {
			m.events.ScrollDown(delta)
		} else {
			m.events.ScrollUp(-delta)
		}
	}
}

// moveToAdjacentField moves the tree cursor to the nearest enabled field
// in the given direction. Reports whether one was found.
func (m *Model) moveToAdjacentField(dir int) bool {
	rows := m.tree.Rows()
	for i := m.tree.Cursor() + dir; i >= 0 && i < len(rows); i += dir {
		field, ok := rows[i].Node.(*formtree.Field)
		if !ok || field.Disabled() {
			continue
		}
		m.tree.SelectByPath(rows[i].Path)
		m.syncSelection()
		return true
	}
	return false
}

// syncSelection points the field pane at the tree's selected row.
func (m *Model) syncSelection() {
	if row := m.tree.SelectedRow(); row != nil {
		m.field.SetNode(row.Path, row.Node)
	} else {
		m.field.SetNode(nil, nil)
	}
}

// mountSelected mounts the sidebar's selected fragment.
func (m *Model) mountSelected() {
	if m.sidebarIndex >= len(m.catalog) {
		return
	}
	frag := m.catalog[m.sidebarIndex]
	m.status = m.mountFragment(frag, true)
	m.syncSelection()
}

// mountFragment registers a fragment's subtree. A missing parent parks
// the fragment until the parent path is registered. When persist is
// true the mounted set is written back to the auto_mount config key.
func (m *Model) mountFragment(frag demoform.Fragment, persist bool) string {
	if _, mounted := m.reg.Control(frag.Path()); mounted {
		return frag.Name + " is already mounted"
	}

	_, err := demoform.Mount(m.reg, frag)
	switch {
	case err == nil:
		m.tree.Refresh()
		if persist {
			persistAutoMount(m.reg, m.catalog, m.services.ConfigPath)
		}
		return fmt.Sprintf("mounted %s at %s", frag.Name, frag.Path())

	case errors.Is(err, registry.ErrPathNotFound):
		return m.parkFragment(frag, persist)

	default:
		log.Warn(log.CatUI, "mount failed", "fragment", frag.Name, "error", err)
		return fmt.Sprintf("mount %s: %v", frag.Name, err)
	}
}

// parkFragment waits for the fragment's parent path and mounts the
// fragment from inside the registration broadcast that creates it.
func (m *Model) parkFragment(frag demoform.Fragment, persist bool) string {
	if _, waiting := m.parked[frag.Name]; waiting {
		return fmt.Sprintf("%s is already waiting for %s", frag.Name, frag.Parent)
	}

	parked := m.parked
	tree := m.tree
	reg := m.reg
	catalog := m.catalog
	configPath := m.services.ConfigPath

	sub := reg.WaitForPath(formpath.Parse(frag.Parent), func(formtree.Node) {
		delete(parked, frag.Name)
		if _, err := demoform.Mount(reg, frag); err != nil {
			log.Warn(log.CatUI, "parked mount failed", "fragment", frag.Name, "error", err)
			return
		}
		log.Info(log.CatUI, "parked fragment mounted", "fragment", frag.Name, "path", frag.Path().String())
		tree.Refresh()
		if persist {
			persistAutoMount(reg, catalog, configPath)
		}
	})
	m.parked[frag.Name] = sub

	log.Info(log.CatUI, "fragment parked", "fragment", frag.Name, "waiting_for", frag.Parent)
	return fmt.Sprintf("parked %s until %s mounts", frag.Name, frag.Parent)
}

// unmountSelected removes the tree selection when the tree is focused,
// otherwise it unmounts (or unparks) the sidebar's selected fragment.
func (m *Model) unmountSelected() {
	if m.focus == FocusTree {
		row := m.tree.SelectedRow()
		if row == nil {
			return
		}
		if m.reg.RemoveElement(row.Path) {
			m.status = "removed " + row.Path.String()
			m.tree.Refresh()
			m.syncSelection()
			persistAutoMount(m.reg, m.catalog, m.services.ConfigPath)
		}
		return
	}

	if m.sidebarIndex >= len(m.catalog) {
		return
	}
	frag := m.catalog[m.sidebarIndex]

	if sub, waiting := m.parked[frag.Name]; waiting {
		sub.Cancel()
		delete(m.parked, frag.Name)
		m.status = fmt.Sprintf("%s no longer waiting for %s", frag.Name, frag.Parent)
		return
	}

	if m.reg.RemoveElement(frag.Path()) {
		m.status = "unmounted " + frag.Name
		m.tree.Refresh()
		m.syncSelection()
		persistAutoMount(m.reg, m.catalog, m.services.ConfigPath)
	} else {
		m.status = frag.Name + " is not mounted"
	}
}

// isolateSelected disables every sibling of the tree selection.
func (m *Model) isolateSelected() {
	if m.focus != FocusTree {
		m.status = "focus the tree to isolate a node"
		return
	}
	row := m.tree.SelectedRow()
	if row == nil {
		return
	}

	parent := row.Path.Parent()
	m.reg.DisableAllExcept(parent, row.Path.Leaf())

	label := parent.String()
	if parent.IsRoot() {
		label = "the form"
	}
	m.status = fmt.Sprintf("disabled everything under %s except %s", label, row.Path.Leaf())
}

// applyConfig picks up reloaded configuration. Theme changes are applied
// globally by the app before this message arrives.
func (m Model) applyConfig(cfg config.Config) Model {
	m.events.SetShowSeq(cfg.UI.ShowSeq)
	m.showStatusBar = cfg.UI.ShowStatusBar
	m.help = m.help.SetStyle(cfg.UI.MarkdownStyle)
	m.layout()
	m.status = "configuration reloaded"
	return m
}

// persistAutoMount writes the currently mounted catalog fragments back
// to the config file's auto_mount key.
func persistAutoMount(reg *registry.Registry, catalog []demoform.Fragment, configPath string) {
	if configPath == "" {
		return
	}
	var mounted []string
	for _, frag := range catalog {
		if _, ok := reg.Control(frag.Path()); ok {
			mounted = append(mounted, frag.Name)
		}
	}
	if err := config.SaveAutoMount(configPath, mounted); err != nil {
		log.Warn(log.CatConfig, "saving auto_mount failed", "error", err)
	}
}

// SetSize implements mode.Controller.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.help = m.help.SetSize(width, height)
	if m.quitModal != nil {
		m.quitModal.SetSize(width, height)
	}
	m.layout()
	return m
}

// layout pushes pane dimensions down to the components.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	sidebarW := m.sidebarWidth()
	mainW := m.width - sidebarW - 1
	bodyH := m.bodyHeight()
	treeH, bottomH := splitHeights(bodyH)
	eventsW := mainW / 2
	fieldW := mainW - eventsW

	m.tree.SetSize(mainW-2, treeH-2)
	m.events.SetSize(eventsW-2, bottomH-2)
	m.field.SetSize(fieldW-2, bottomH-2)
}

// sidebarWidth returns the sidebar width (30% of total, min 20, max 30).
func (m Model) sidebarWidth() int {
	w := m.width * 30 / 100
	return max(min(w, 30), 20)
}

// bodyHeight returns the height available to the panes.
func (m Model) bodyHeight() int {
	h := m.height - 1 // footer
	if m.showStatusBar {
		h--
	}
	return max(h, 6)
}

// splitHeights divides the body between the tree and the bottom row.
func splitHeights(bodyH int) (treeH, bottomH int) {
	treeH = max(bodyH*3/5, 5)
	bottomH = max(bodyH-treeH, 4)
	return treeH, bottomH
}

// fragmentStates reports each catalog fragment as mounted, parked, or
// unmounted.
func (m Model) fragmentStates() map[string]fragmentState {
	states := make(map[string]fragmentState, len(m.catalog))
	for _, frag := range m.catalog {
		if _, waiting := m.parked[frag.Name]; waiting {
			states[frag.Name] = fragmentParked
			continue
		}
		if _, ok := m.reg.Control(frag.Path()); ok {
			states[frag.Name] = fragmentMounted
		}
	}
	return states
}

// View implements mode.Controller.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "Loading playground..."
	}

	sidebarW := m.sidebarWidth()
	mainW := m.width - sidebarW - 1
	bodyH := m.bodyHeight()
	treeH, bottomH := splitHeights(bodyH)
	eventsW := mainW / 2
	fieldW := mainW - eventsW

	states := m.fragmentStates()
	mountedCount := 0
	for _, s := range states {
		if s == fragmentMounted {
			mountedCount++
		}
	}

	sidebar := styles.RenderSection(
		padLines(renderSidebar(m.catalog, states, m.sidebarIndex, sidebarW-2, m.focus == FocusSidebar), bodyH-2),
		"Fragments", fmt.Sprintf("%d/%d", mountedCount, len(m.catalog)), sidebarW, m.focus == FocusSidebar)

	treePane := styles.RenderSection(padLines(m.tree.View(), treeH-2),
		"Form Tree", "", mainW, m.focus == FocusTree)
	eventsPane := styles.RenderSection(padLines(m.events.View(), bottomH-2),
		"Events", "", eventsW, m.focus == FocusEvents)
	fieldPane := styles.RenderSection(padLines(m.field.View(), bottomH-2),
		"Field", "", fieldW, m.focus == FocusField)

	main := treePane + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, eventsPane, fieldPane)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)

	sections := []string{body, m.renderFooter()}
	if m.showStatusBar {
		sections = append(sections, m.renderStatusBar())
	}
	view := strings.Join(sections, "\n")

	if m.prompt.active {
		view = m.prompt.overlay(m.width, m.height, view)
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.quitModal != nil {
		view = m.quitModal.Overlay(view)
	}
	return view
}

// renderFooter renders the single-line key hints.
func (m Model) renderFooter() string {
	footerStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Width(m.width)

	var footerParts []string
	if m.field.Editing() {
		footerParts = append(footerParts, "Enter: Commit", "Tab: Next field", "Esc: Cancel")
	} else {
		footerParts = append(footerParts,
			"Tab: Switch panes", "m: Mount", "u: Unmount", "e: Edit",
			"/: Go to path", "d: Isolate", "?: Help", "q: Quit")
	}
	return footerStyle.Render(styles.TruncateString(strings.Join(footerParts, "  │  "), m.width))
}

// renderStatusBar renders the transient action status or a summary line.
func (m Model) renderStatusBar() string {
	text := m.status
	if text == "" {
		text = fmt.Sprintf("%d events recorded │ session %s",
			len(m.reg.History()), shortID(m.services.Session.ID().String()))
	}
	return styles.StatusBarStyle.Render(styles.TruncateString(text, max(m.width-2, 1)))
}

// shortID trims a session UUID down to its first group.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// padLines splits a pane view into exactly height lines so the
// surrounding section keeps its box size.
func padLines(view string, height int) []string {
	var lines []string
	if view != "" {
		lines = strings.Split(strings.TrimRight(view, "\n"), "\n")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}
