// Package eventlog renders the registry's registration history as a
// scrollable, tail-following pane.
package eventlog

import (
	"fmt"
	"strings"

	"github.com/formdeck/formdeck/internal/registry"
	"github.com/formdeck/formdeck/internal/ui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Model holds the event log pane state.
type Model struct {
	reg       *registry.Registry
	width     int
	height    int
	scrollTop int
	follow    bool // stick to the newest event
	showSeq   bool
}

// New creates an event log pane over the registry's history. The pane
// starts in follow mode, tracking the newest event.
func New(reg *registry.Registry, showSeq bool) *Model {
	return &Model{
		reg:     reg,
		follow:  true,
		showSeq: showSeq,
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetShowSeq toggles the sequence number column. Applied on config
// reload.
func (m *Model) SetShowSeq(show bool) {
	m.showSeq = show
}

// Following reports whether the pane is tracking the newest event.
func (m *Model) Following() bool {
	return m.follow
}

// ScrollUp scrolls toward older events and disengages follow mode.
func (m *Model) ScrollUp(n int) {
	m.follow = false
	m.scrollTop = max(m.scrollTop-n, 0)
}

// ScrollDown scrolls toward newer events. Reaching the tail re-engages
// follow mode.
func (m *Model) ScrollDown(n int) {
	maxScroll := m.maxScroll()
	m.scrollTop = min(m.scrollTop+n, maxScroll)
	if m.scrollTop >= maxScroll {
		m.follow = true
	}
}

func (m *Model) maxScroll() int {
	return max(len(m.reg.History())-m.viewportHeight(), 0)
}

// viewportHeight returns the number of visible event rows.
func (m *Model) viewportHeight() int {
	reserved := 1
	if m.height > reserved {
		return m.height - reserved
	}
	return 1
}

// View renders the event log.
func (m *Model) View() string {
	history := m.reg.History()
	if len(history) == 0 {
		mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		return mutedStyle.Render("No registrations yet.")
	}

	if m.follow {
		m.scrollTop = m.maxScroll()
	}

	var sb strings.Builder

	viewportHeight := m.viewportHeight()
	endIdx := min(m.scrollTop+viewportHeight, len(history))

	if m.scrollTop > 0 {
		scrollStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString(scrollStyle.Render(fmt.Sprintf("  ↑ %d earlier", m.scrollTop)))
		sb.WriteString("\n")
	}

	for i := m.scrollTop; i < endIdx; i++ {
		sb.WriteString(m.renderEvent(history[i]))
		sb.WriteString("\n")
	}

	remaining := len(history) - endIdx
	if remaining > 0 {
		scrollStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString(scrollStyle.Render(fmt.Sprintf("  ↓ %d newer", remaining)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderEvent renders one history entry: seq, timestamp, kind, path.
func (m *Model) renderEvent(evt registry.Event) string {
	var sb strings.Builder

	if m.showSeq {
		seqStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
		sb.WriteString(seqStyle.Render(fmt.Sprintf("#%-3d", evt.Seq)))
		sb.WriteString(" ")
	}

	timeStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	sb.WriteString(timeStyle.Render(evt.Time.Format("15:04:05")))
	sb.WriteString(" ")

	sb.WriteString(renderKind(evt.Kind))
	sb.WriteString(" ")

	// Truncate the path to whatever width remains.
	pathStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	available := m.width - lipgloss.Width(sb.String())
	path := evt.Path
	if available > 0 {
		path = styles.TruncateString(path, available)
	}
	sb.WriteString(pathStyle.Render(path))

	return sb.String()
}

// renderKind renders the colored, width-padded kind column.
func renderKind(kind registry.EventKind) string {
	var color lipgloss.AdaptiveColor
	switch kind {
	case registry.KindForm:
		color = styles.EventFormColor
	default:
		color = styles.EventElementColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%-7s", string(kind)))
}
