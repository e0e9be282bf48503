// Package help contains the help overlay component.
package help

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/formdeck/formdeck/internal/cachemanager"
	"github.com/formdeck/formdeck/internal/keys"
	"github.com/formdeck/formdeck/internal/log"
	"github.com/formdeck/formdeck/internal/ui/markdown"
	"github.com/formdeck/formdeck/internal/ui/overlay"
	"github.com/formdeck/formdeck/internal/ui/styles"
)

// guideTTL bounds how long a rendered guide stays warm. Reopening the
// overlay at the same size within the TTL skips the glamour pass.
const guideTTL = 30 * time.Minute

// RenderInput tells the guide renderer which glamour style to use and
// how wide to wrap.
type RenderInput struct {
	Style string
	Width int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	keys     keys.KeyMap
	editKeys keys.EditKeyMap
	style    string
	guide    *cachemanager.ReadThroughCache[string, string, RenderInput]
	width    int
	height   int
}

// New creates the help overlay. Rendered guide markdown is kept in
// cache keyed by style and width; a nil cache renders fresh every time.
func New(cache cachemanager.CacheManager[string, string], style string) Model {
	return Model{
		keys:     keys.DefaultKeyMap(),
		editKeys: keys.DefaultEditKeyMap(),
		style:    style,
		guide:    cachemanager.NewReadThroughCache(cache, renderGuide, cache == nil),
	}
}

// renderGuide is the cache loader: one glamour pass over the guide.
func renderGuide(_ context.Context, input RenderInput) (string, error) {
	r, err := markdown.New(input.Width, input.Style)
	if err != nil {
		return "", err
	}
	return r.Render(guideMarkdown)
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetStyle switches the glamour style, normally after a config reload.
func (m Model) SetStyle(style string) Model {
	m.style = style
	return m
}

// View renders the help overlay standalone, centered in the window.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box: keybinding columns on top, the
// rendered concepts guide below.
func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	var navCol strings.Builder
	navCol.WriteString(sectionStyle.Render("Navigation"))
	navCol.WriteString("\n")
	navCol.WriteString(m.renderBinding(m.keys.Up))
	navCol.WriteString(m.renderBinding(m.keys.Down))
	navCol.WriteString(m.renderBinding(m.keys.NextPane))
	navCol.WriteString(m.renderBinding(m.keys.PrevPane))
	navCol.WriteString(m.renderBinding(m.keys.GoToPath))

	var fragCol strings.Builder
	fragCol.WriteString(sectionStyle.Render("Fragments"))
	fragCol.WriteString("\n")
	fragCol.WriteString(m.renderBinding(m.keys.Mount))
	fragCol.WriteString(m.renderBinding(m.keys.Unmount))
	fragCol.WriteString(m.renderBinding(m.keys.Edit))
	fragCol.WriteString(m.renderBinding(m.keys.FocusDemo))

	var editCol strings.Builder
	editCol.WriteString(sectionStyle.Render("Editing"))
	editCol.WriteString("\n")
	editCol.WriteString(m.renderBinding(m.editKeys.Commit))
	editCol.WriteString(m.renderBinding(m.editKeys.NextField))
	editCol.WriteString(m.renderBinding(m.editKeys.PrevField))
	editCol.WriteString(m.renderBinding(m.editKeys.Cancel))

	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(m.renderBinding(m.keys.Help))
	generalCol.WriteString(m.renderBinding(m.keys.ToggleLogs))
	generalCol.WriteString(m.renderBinding(m.keys.ToggleStatus))
	generalCol.WriteString(m.renderBinding(m.keys.Quit))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(navCol.String()),
		columnStyle.Render(fragCol.String()),
		columnStyle.Render(editCol.String()),
		generalCol.String(),
	)

	columnsWidth := lipgloss.Width(columns)
	boxWidth := columnsWidth + 4 // Horizontal padding (2 each side)

	body := columns
	if guide := m.renderGuideSection(columnsWidth); guide != "" {
		body += "\n" + guide
	}
	body += "\n" + footerStyle.Render("Press ? or Esc to close")

	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("formdeck playground"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(contentStyle.Render(body))

	return boxStyle.Width(boxWidth).Render(content.String())
}

// renderGuideSection fetches the glamour-rendered guide, wrapped to the
// keybinding columns width so the box keeps one width. A render failure
// drops the section rather than the whole overlay.
func (m Model) renderGuideSection(width int) string {
	text, err := m.guide.Get(context.Background(), m.guideKey(width), RenderInput{Style: m.style, Width: width}, guideTTL)
	if err != nil {
		log.Warn(log.CatUI, "help guide render failed", "error", err)
		return ""
	}
	return strings.TrimRight(text, "\n")
}

func (m Model) guideKey(width int) string {
	return fmt.Sprintf("help:%s:%d", m.style, width)
}

func (m Model) renderBinding(b key.Binding) string {
	help := b.Help()
	return renderKeyDesc(help.Key, help.Desc)
}

func renderKeyDesc(key, desc string) string {
	return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
}
