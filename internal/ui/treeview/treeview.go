// Package treeview renders the registered form tree as a navigable list.
package treeview

import (
	"fmt"
	"strings"

	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
	"github.com/formdeck/formdeck/internal/registry"
	"github.com/formdeck/formdeck/internal/ui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Row is one visible line of the flattened form tree.
type Row struct {
	Path  formpath.Path
	Key   string
	Node  formtree.Node
	Depth int

	// branches holds, for each ancestor level, whether that ancestor was
	// the last child of its parent. Used to draw the │ guide columns.
	branches []bool
	isLast   bool
}

// Model holds the tree view state.
type Model struct {
	reg       *registry.Registry
	rows      []Row
	cursor    int
	width     int
	height    int
	scrollTop int // First visible row index (for viewport scrolling)
}

// New creates a tree view over the registry's form tree.
func New(reg *registry.Registry) *Model {
	m := &Model{reg: reg}
	m.Refresh()
	return m
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Refresh rebuilds the flattened rows from the registry. Call after any
// registration, removal, or field mutation. The cursor is clamped.
func (m *Model) Refresh() {
	m.rows = m.rows[:0]
	m.appendRows(formpath.Path{}, m.reg.Form(), 0, nil)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) appendRows(base formpath.Path, group *formtree.Group, depth int, branches []bool) {
	keys := group.Keys()
	for i, key := range keys {
		node, ok := group.Child(key)
		if !ok {
			continue
		}
		isLast := i == len(keys)-1
		p := base.Join(key)
		m.rows = append(m.rows, Row{
			Path:     p,
			Key:      key,
			Node:     node,
			Depth:    depth,
			branches: append([]bool(nil), branches...),
			isLast:   isLast,
		})
		if child, isGroup := node.(*formtree.Group); isGroup {
			m.appendRows(p, child, depth+1, append(branches, isLast))
		}
	}
}

// Rows returns the flattened rows in display order.
func (m *Model) Rows() []Row {
	return m.rows
}

// Cursor returns the current cursor index.
func (m *Model) Cursor() int {
	return m.cursor
}

// MoveCursor moves the cursor by delta, respecting bounds.
func (m *Model) MoveCursor(delta int) {
	newPos := m.cursor + delta
	newPos = max(newPos, 0)
	newPos = min(newPos, len(m.rows)-1)
	newPos = max(newPos, 0) // Handle empty rows case
	m.cursor = newPos
	m.ensureCursorVisible()
}

// ensureCursorVisible adjusts scrollTop to keep cursor in view.
func (m *Model) ensureCursorVisible() {
	viewportHeight := m.viewportHeight()
	if viewportHeight <= 0 {
		return
	}

	// Scroll down if cursor is below viewport
	if m.cursor >= m.scrollTop+viewportHeight {
		m.scrollTop = m.cursor - viewportHeight + 1
	}

	// Scroll up if cursor is above viewport
	if m.cursor < m.scrollTop {
		m.scrollTop = m.cursor
	}

	// Clamp scrollTop
	maxScroll := max(len(m.rows)-viewportHeight, 0)
	m.scrollTop = min(m.scrollTop, maxScroll)
	m.scrollTop = max(m.scrollTop, 0)
}

// viewportHeight returns the number of visible rows.
func (m *Model) viewportHeight() int {
	// Reserve one line so the scroll indicators don't push content out.
	reserved := 1
	if m.height > reserved {
		return m.height - reserved
	}
	return 1
}

// SelectedRow returns the row under the cursor, or nil when the tree is
// empty.
func (m *Model) SelectedRow() *Row {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return &m.rows[m.cursor]
	}
	return nil
}

// SelectByPath moves the cursor to the row with the given path.
// Returns false if no such row is visible.
func (m *Model) SelectByPath(p formpath.Path) bool {
	for i, row := range m.rows {
		if row.Path.Equal(p) {
			m.cursor = i
			m.ensureCursorVisible()
			return true
		}
	}
	return false
}

// View renders the tree.
func (m *Model) View() string {
	if len(m.rows) == 0 {
		mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		var sb strings.Builder
		sb.WriteString(mutedStyle.Render("No fragments mounted."))
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("Press 'm' to mount the selected fragment."))
		return sb.String()
	}

	var sb strings.Builder

	// Calculate viewport bounds
	viewportHeight := m.viewportHeight()
	endIdx := min(m.scrollTop+viewportHeight, len(m.rows))

	// Show scroll indicator (up)
	if m.scrollTop > 0 {
		scrollStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString(scrollStyle.Render(fmt.Sprintf("  ↑ %d more above", m.scrollTop)))
		sb.WriteString("\n")
	}

	// Render visible rows only
	for i := m.scrollTop; i < endIdx; i++ {
		sb.WriteString(m.renderRow(&m.rows[i], i == m.cursor))
		sb.WriteString("\n")
	}

	// Show scroll indicator (down)
	remaining := len(m.rows) - endIdx
	if remaining > 0 {
		scrollStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString(scrollStyle.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderRow renders a single tree row.
func (m *Model) renderRow(row *Row, isSelected bool) string {
	var sb strings.Builder

	// Cursor indicator
	if isSelected {
		sb.WriteString(styles.SelectionIndicatorStyle.Render(">"))
	} else {
		sb.WriteString(" ")
	}

	// Tree prefix (indentation and branch characters)
	prefix := row.prefix()
	if isSelected && row.Depth > 0 {
		// Add horizontal guide line for selected rows by replacing spaces with ─
		prefix = addSelectionGuide(prefix)
	}
	sb.WriteString(prefix)

	// Node name, colored by kind and disabled state
	name := row.Key
	sb.WriteString(nameStyle(row.Node).Render(name))

	// State glyph
	glyph := renderStateGlyph(row.Node)
	if glyph != "" {
		sb.WriteString(" ")
		sb.WriteString(glyph)
	}

	// Right metadata: value preview for fields, child count for groups
	metaStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	meta := rowMetadata(row.Node)
	rightRendered := metaStyle.Render(meta)
	rightWidth := lipgloss.Width(rightRendered)
	if meta == "" {
		rightWidth = 0
	}

	// Right-align metadata when there is room for it
	currentWidth := lipgloss.Width(sb.String())
	minPadding := 2
	if rightWidth > 0 && m.width >= currentWidth+minPadding+rightWidth {
		paddingNeeded := max(m.width-currentWidth-rightWidth, minPadding)
		if isSelected {
			guideStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
			sb.WriteString(guideStyle.Render(strings.Repeat("─", paddingNeeded)))
		} else {
			sb.WriteString(strings.Repeat(" ", paddingNeeded))
		}
		sb.WriteString(rightRendered)
	}

	return sb.String()
}

// prefix builds the tree branch prefix for a row. Top-level fragments
// render flush left; descendants get │ guides and ├─/└─ connectors.
func (r *Row) prefix() string {
	if r.Depth == 0 {
		return ""
	}

	var parts []string

	// branches[0] is the top-level ancestor, which draws no guide column.
	for i := 1; i < len(r.branches); i++ {
		if r.branches[i] {
			parts = append(parts, "    ") // No line (space)
		} else {
			parts = append(parts, "│   ") // Continuing line
		}
	}

	// Add the connector for this row
	if r.isLast {
		parts = append(parts, "└─")
	} else {
		parts = append(parts, "├─")
	}

	return strings.Join(parts, "")
}

// addSelectionGuide replaces spaces in the prefix with horizontal lines for
// the selected row. This creates a visual guide from the cursor to the row
// content. Preserves │ characters and branch connectors (├─, └─).
func addSelectionGuide(prefix string) string {
	guideStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	var result strings.Builder

	for _, r := range prefix {
		if r == ' ' {
			result.WriteString(guideStyle.Render("─"))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// nameStyle picks the name color for a node.
func nameStyle(node formtree.Node) lipgloss.Style {
	if node.Disabled() {
		return lipgloss.NewStyle().Foreground(styles.FieldDisabledColor)
	}
	if node.Kind() == formtree.KindGroup {
		return lipgloss.NewStyle().Foreground(styles.GroupColor)
	}
	return lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
}

// renderStateGlyph renders the colored state marker for a node.
func renderStateGlyph(node formtree.Node) string {
	field, ok := node.(*formtree.Field)
	if !ok {
		if node.Disabled() {
			return lipgloss.NewStyle().Foreground(styles.FieldDisabledColor).Render("⊘")
		}
		return ""
	}

	glyph := styles.FormatFieldState(field.Disabled(), field.Touched(), field.Valid())
	switch glyph {
	case "⊘":
		return lipgloss.NewStyle().Foreground(styles.FieldDisabledColor).Render(glyph)
	case "✗":
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render(glyph)
	case "●":
		return lipgloss.NewStyle().Foreground(styles.FieldTouchedColor).Render(glyph)
	default:
		return ""
	}
}

// rowMetadata builds the right-aligned metadata for a node.
func rowMetadata(node formtree.Node) string {
	switch n := node.(type) {
	case *formtree.Group:
		return fmt.Sprintf("(%d)", n.Len())
	case *formtree.Field:
		if n.Value() == nil {
			return ""
		}
		preview := fmt.Sprintf("%v", n.Value())
		return styles.TruncateString(preview, 24)
	default:
		return ""
	}
}
