// Package modal provides a confirmation dialog rendered over the
// current view.
package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/formdeck/formdeck/internal/ui/overlay"
	"github.com/formdeck/formdeck/internal/ui/styles"
)

// ButtonVariant controls the styling of the confirm button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota // Blue (default)
	ButtonDanger                       // Red (for destructive actions)
)

// Config controls modal appearance and behavior.
type Config struct {
	Title          string        // Modal title (e.g., "Quit Playground")
	Message        string        // Prompt text shown above the buttons
	ConfirmVariant ButtonVariant // Style for the confirm button
	MinWidth       int           // Minimum width (0 = default 40)
}

// SubmitMsg is sent when the user confirms (Enter on Confirm, or "y").
type SubmitMsg struct{}

// CancelMsg is sent when the user cancels (Esc, "n", or Cancel button).
type CancelMsg struct{}

// Field identifies which button is focused.
type Field int

const (
	FieldConfirm Field = iota
	FieldCancel
)

// Model is the modal component state.
type Model struct {
	config       Config
	focusedField Field
	width        int
	height       int
}

// New creates a confirmation modal with focus on the Confirm button.
func New(cfg Config) Model {
	return Model{config: cfg, focusedField: FieldConfirm}
}

// Init implements tea.Model. Confirmation modals have no startup work.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.focusedField = FieldConfirm
			return m, nil

		case "right", "l", "tab":
			m.focusedField = FieldCancel
			return m, nil

		case "y":
			return m, func() tea.Msg { return SubmitMsg{} }

		case "n", "esc":
			return m, func() tea.Msg { return CancelMsg{} }

		case "enter":
			if m.focusedField == FieldConfirm {
				return m, func() tea.Msg { return SubmitMsg{} }
			}
			return m, func() tea.Msg { return CancelMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the modal content (without overlay).
func (m Model) View() string {
	minWidth := 40
	if m.config.MinWidth > minWidth {
		minWidth = m.config.MinWidth
	}
	contentWidth := minWidth
	if titleLen := lipgloss.Width(m.config.Title); titleLen > contentWidth {
		contentWidth = titleLen
	}
	boxWidth := contentWidth + 2 // Account for content padding

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)

	dividerStyle := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	if m.config.Message != "" {
		msgStyle := lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Width(contentWidth)
		content.WriteString(msgStyle.Render(m.config.Message))
		content.WriteString("\n\n")
	}
	content.WriteString(m.renderButtons())

	var result strings.Builder
	result.WriteString(titleStyle.Render(m.config.Title))
	result.WriteString("\n")
	result.WriteString(divider)
	result.WriteString("\n")
	contentStyle := lipgloss.NewStyle().Padding(1, 1)
	result.WriteString(contentStyle.Render(content.String()))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth)

	return boxStyle.Render(result.String())
}

// renderButtons renders the Confirm and Cancel buttons.
func (m Model) renderButtons() string {
	var confirmStyle lipgloss.Style
	switch m.config.ConfirmVariant {
	case ButtonDanger:
		confirmStyle = styles.DangerButtonStyle
		if m.focusedField == FieldConfirm {
			confirmStyle = styles.DangerButtonFocusedStyle
		}
	default: // ButtonPrimary
		confirmStyle = styles.PrimaryButtonStyle
		if m.focusedField == FieldConfirm {
			confirmStyle = styles.PrimaryButtonFocusedStyle
		}
	}
	confirmBtn := confirmStyle.Render("Confirm")

	cancelStyle := styles.SecondaryButtonStyle
	if m.focusedField == FieldCancel {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}
	cancelBtn := cancelStyle.Render("Cancel")

	return confirmBtn + "  " + cancelBtn
}

// Overlay renders the modal centered on the given background.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize updates the modal's knowledge of viewport size for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// FocusedField returns the currently focused button.
func (m Model) FocusedField() Field {
	return m.focusedField
}
