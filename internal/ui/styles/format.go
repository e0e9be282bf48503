// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	// Need to truncate - leave room for ellipsis
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	// Truncate rune by rune
	result := ""
	for _, r := range s {
		test := result + string(r)
		if lipgloss.Width(test) > maxWidth-3 {
			break
		}
		result = test
	}

	return result + "..."
}

// FormatFieldState returns the compact state marker shown next to a field
// in the tree and the editor: "⊘" disabled, "✗" invalid, "●" touched.
// A pristine valid field gets no marker. Disabled wins over the others
// since a disabled field is not editable regardless of its other flags.
func FormatFieldState(disabled, touched, valid bool) string {
	switch {
	case disabled:
		return "⊘"
	case !valid:
		return "✗"
	case touched:
		return "●"
	default:
		return ""
	}
}
