// Package overlay composites modal content on top of a background view
// without clearing the screen. The playground uses it for the help and
// log overlays (centered) and the go-to-path prompt (top).
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom places the overlay at the bottom center of the viewport.
	Bottom
)

// Config controls overlay placement.
type Config struct {
	// Width is the total viewport width.
	Width int
	// Height is the total viewport height.
	Height int
	// Position anchors the overlay (Center, Top, Bottom).
	Position Position
	// PadY insets the overlay from the top or bottom edge. Ignored for
	// Center.
	PadY int
}

// Place renders foreground content on top of background. Both sides may
// carry ANSI styling; the background is sliced with ANSI-aware
// truncation so colors survive around the overlay.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	// Pad background to full height
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	startX, startY := calculatePosition(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		bgY := startY + i
		if bgY >= len(bgLines) {
			break
		}
		bgLines[bgY] = compositeLine(bgLines[bgY], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// compositeLine splices one foreground line into a background line at
// column startX, keeping the background visible on both sides.
func compositeLine(bgLine, fgLine string, startX int) string {
	// Left portion of the background (ANSI-aware truncation)
	leftPart := ansi.Truncate(bgLine, startX, "")

	// Pad when the background line is shorter than startX
	leftWidth := ansi.StringWidth(leftPart)
	if leftWidth < startX {
		leftPart += strings.Repeat(" ", startX-leftWidth)
	}

	// Right portion of the background after the overlay
	endX := startX + ansi.StringWidth(fgLine)
	var rightPart string
	if endX < ansi.StringWidth(bgLine) {
		// TruncateLeft removes chars from the left, keeping the right
		rightPart = ansi.TruncateLeft(bgLine, endX, "")
	}

	return leftPart + fgLine + rightPart
}

// calculatePosition determines the x,y starting coordinates for the
// overlay, clamped to the viewport.
func calculatePosition(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	default: // Center
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}

	x = max(x, 0)
	y = max(y, 0)
	return x, y
}
