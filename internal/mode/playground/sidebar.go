package playground

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/formdeck/formdeck/internal/demoform"
	"github.com/formdeck/formdeck/internal/ui/styles"
)

// fragmentState is the sidebar's view of one catalog entry.
type fragmentState int

const (
	fragmentUnmounted fragmentState = iota
	fragmentParked
	fragmentMounted
)

// renderSidebar renders the fragment list at the given inner width.
// Mounted fragments carry a check mark, parked ones an ellipsis.
func renderSidebar(fragments []demoform.Fragment, states map[string]fragmentState, selectedIndex, width int, focused bool) string {
	var sb strings.Builder
	pad := " " // 1 char padding

	// Styles
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	normalStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	mountedStyle := lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	parkedStyle := lipgloss.NewStyle().Foreground(styles.StatusWarningColor)

	// Focus indicator
	if focused {
		selectedStyle = selectedStyle.Foreground(styles.SelectionIndicatorColor)
	}

	for i, frag := range fragments {
		var line string

		if i == selectedIndex {
			indicator := styles.SelectionIndicatorStyle.Render("●")
			name := selectedStyle.Render(frag.Name)
			line = pad + indicator + " " + name
		} else {
			name := normalStyle.Render(frag.Name)
			line = pad + "  " + name
		}

		switch states[frag.Name] {
		case fragmentMounted:
			line += " " + mountedStyle.Render("✓")
		case fragmentParked:
			line += " " + parkedStyle.Render("…")
		}

		sb.WriteString(styles.TruncateString(line, width))
		sb.WriteString("\n")
	}

	return sb.String()
}
