package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
	"github.com/formdeck/formdeck/internal/registry"
	"github.com/formdeck/formdeck/internal/suggest"
	"github.com/formdeck/formdeck/internal/ui/overlay"
	"github.com/formdeck/formdeck/internal/ui/styles"
)

const maxSuggestions = 3

// pathPrompt is the go-to-path input. A lookup miss keeps the prompt
// open and offers the registered paths closest to what was typed.
type pathPrompt struct {
	input       textinput.Model
	active      bool
	errText     string
	suggestions []string
}

func newPathPrompt() pathPrompt {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "account.profile.display_name"
	ti.CharLimit = 128
	return pathPrompt{input: ti}
}

func (p *pathPrompt) open() tea.Cmd {
	p.active = true
	p.errText = ""
	p.suggestions = nil
	p.input.SetValue("")
	p.input.Focus()
	return textinput.Blink
}

func (p *pathPrompt) close() {
	p.active = false
	p.input.Blur()
}

// clearFeedback drops the miss message once the user keeps typing.
func (p *pathPrompt) clearFeedback() {
	p.errText = ""
	p.suggestions = nil
}

// resolve looks the typed path up in the registry. On a miss it records
// an error line and up to maxSuggestions near matches and reports false.
func (p *pathPrompt) resolve(reg *registry.Registry) (formpath.Path, bool) {
	raw := strings.TrimSpace(p.input.Value())
	path := formpath.Parse(raw)
	if !path.IsRoot() {
		if _, ok := reg.Control(path); ok {
			return path, true
		}
	}

	registered := formtree.Paths(reg.Form())
	candidates := make([]string, len(registered))
	for i, c := range registered {
		candidates[i] = c.String()
	}
	p.errText = fmt.Sprintf("no node at %q", raw)
	p.suggestions = suggest.Closest(raw, candidates, maxSuggestions)
	return nil, false
}

// overlay draws the prompt box near the top of the background view.
func (p pathPrompt) overlay(width, height int, background string) string {
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Top,
		PadY:     1,
	}, p.renderBox(width), background)
}

func (p pathPrompt) renderBox(totalWidth int) string {
	boxWidth := max(min(totalWidth-8, 64), 24)

	errStyle := lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
	mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	suggestionStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)

	lines := []string{" " + p.input.View()}
	if p.errText != "" {
		lines = append(lines, " "+errStyle.Render(styles.TruncateString(p.errText, boxWidth-4)))
		if len(p.suggestions) > 0 {
			lines = append(lines, " "+mutedStyle.Render("did you mean:"))
			for _, s := range p.suggestions {
				lines = append(lines, "   "+suggestionStyle.Render(styles.TruncateString(s, boxWidth-6)))
			}
		}
	}

	return styles.RenderSection(lines, "Go to path", "enter to jump, esc to close", boxWidth, true)
}
