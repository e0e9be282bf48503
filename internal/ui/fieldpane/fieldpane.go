// Package fieldpane shows the node under the tree cursor and edits
// field values in place.
package fieldpane

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
	"github.com/formdeck/formdeck/internal/keys"
	"github.com/formdeck/formdeck/internal/ui/styles"
)

const inputWidth = 36

// CommittedMsg is sent when an edit is committed to the field. Move
// asks the parent to advance the selection afterwards: -1 previous
// field, +1 next field, 0 stay.
type CommittedMsg struct {
	Path  formpath.Path
	Value any
	Move  int
}

// CancelledMsg is sent when an edit is abandoned.
type CancelledMsg struct{}

// Model is the field pane component state.
type Model struct {
	width  int
	height int

	path formpath.Path
	node formtree.Node

	editing bool
	input   textinput.Model
	keys    keys.EditKeyMap
}

// New creates an empty field pane.
func New() Model {
	return Model{keys: keys.DefaultEditKeyMap()}
}

// SetSize sets the pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetNode points the pane at a node. A nil node empties the pane.
// Changing the node while editing abandons the edit.
func (m *Model) SetNode(path formpath.Path, node formtree.Node) {
	m.path = path
	m.node = node
	m.editing = false
}

// Node returns the displayed node, nil when the pane is empty.
func (m Model) Node() formtree.Node {
	return m.node
}

// Editing reports whether an edit is in progress.
func (m Model) Editing() bool {
	return m.editing
}

// StartEdit begins editing the displayed field. Returns nil when the
// node is not an enabled field.
func (m *Model) StartEdit() tea.Cmd {
	field, ok := m.node.(*formtree.Field)
	if !ok || field.Disabled() {
		return nil
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = fmt.Sprintf("%T", field.Value())
	ti.Width = min(inputWidth, max(m.width-4, 10))
	ti.CharLimit = 256
	if field.Value() != nil {
		ti.SetValue(fmt.Sprintf("%v", field.Value()))
	}
	ti.Focus()
	m.input = ti
	m.editing = true

	return textinput.Blink
}

// Update handles messages while editing. Outside of an edit the pane is
// inert.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.editing {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Commit):
			return m.commit(0)
		case key.Matches(keyMsg, m.keys.NextField):
			return m.commit(1)
		case key.Matches(keyMsg, m.keys.PrevField):
			return m.commit(-1)
		case key.Matches(keyMsg, m.keys.Cancel):
			m.editing = false
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commit writes the input back to the field, firing its change hook.
func (m Model) commit(move int) (Model, tea.Cmd) {
	field, ok := m.node.(*formtree.Field)
	if !ok {
		m.editing = false
		return m, nil
	}

	value := parseValue(m.input.Value())
	field.SetValue(value)
	m.editing = false

	path := m.path
	return m, func() tea.Msg {
		return CommittedMsg{Path: path, Value: value, Move: move}
	}
}

// parseValue coerces the input text: bools, ints and floats keep their
// type across an edit, anything else stays a string.
func parseValue(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// View renders the pane content.
func (m Model) View() string {
	if m.node == nil {
		mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		return mutedStyle.Render("Nothing selected.")
	}

	if m.editing {
		return m.viewEditing()
	}

	switch n := m.node.(type) {
	case *formtree.Field:
		return m.viewField(n)
	case *formtree.Group:
		return m.viewGroup(n)
	default:
		return ""
	}
}

func (m Model) viewField(field *formtree.Field) string {
	var sb strings.Builder

	sb.WriteString(m.renderRow("Path", m.path.String()))
	sb.WriteString(m.renderRow("Kind", "field"))
	sb.WriteString(m.renderRow("State", renderState(field)))

	value := ""
	if field.Value() != nil {
		value = fmt.Sprintf("%v", field.Value())
	}
	sb.WriteString(m.renderRow("Value", wordwrap.String(value, m.wrapWidth())))

	if field.Disabled() {
		hintStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render("Field is disabled."))
	} else {
		hintStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render("Press 'e' to edit."))
	}

	return sb.String()
}

func (m Model) viewGroup(group *formtree.Group) string {
	var sb strings.Builder

	sb.WriteString(m.renderRow("Path", m.path.String()))
	sb.WriteString(m.renderRow("Kind", "group"))
	if group.Disabled() {
		sb.WriteString(m.renderRow("State", "disabled"))
	}
	sb.WriteString(m.renderRow("Items", fmt.Sprintf("%d", group.Len())))

	keyList := strings.Join(group.Keys(), ", ")
	sb.WriteString(m.renderRow("Keys", wordwrap.String(keyList, m.wrapWidth())))

	return sb.String()
}

func (m Model) viewEditing() string {
	var sb strings.Builder

	sb.WriteString(m.renderRow("Path", m.path.String()))
	sb.WriteString(m.renderRow("Value", m.input.View()))
	sb.WriteString("\n")

	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	var hints []string
	for _, b := range []key.Binding{m.keys.Commit, m.keys.NextField, m.keys.PrevField, m.keys.Cancel} {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	sb.WriteString(hintStyle.Render(strings.Join(hints, "  ")))

	return sb.String()
}

// renderRow renders one "Label  value" line with an aligned label column.
func (m Model) renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Width(7)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)

	// Indent wrapped continuation lines under the value column.
	indent := strings.Repeat(" ", 7)
	value = strings.ReplaceAll(value, "\n", "\n"+indent)

	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// wrapWidth returns the width available to wrapped values.
func (m Model) wrapWidth() int {
	return max(m.width-9, 10)
}

// renderState renders the colored state summary for a field.
func renderState(field *formtree.Field) string {
	glyph := styles.FormatFieldState(field.Disabled(), field.Touched(), field.Valid())

	var parts []string
	if field.Disabled() {
		parts = append(parts, "disabled")
	}
	if field.Touched() {
		parts = append(parts, "touched")
	}
	if !field.Valid() {
		parts = append(parts, "invalid")
	}
	if len(parts) == 0 {
		parts = append(parts, "pristine")
	}
	summary := strings.Join(parts, ", ")

	if glyph == "" {
		return summary
	}

	var color lipgloss.AdaptiveColor
	switch glyph {
	case "⊘":
		color = styles.FieldDisabledColor
	case "✗":
		color = styles.StatusErrorColor
	default:
		color = styles.FieldTouchedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(glyph) + " " + summary
}
