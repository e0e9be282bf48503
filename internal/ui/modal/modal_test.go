package modal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNew(t *testing.T) {
	m := New(Config{
		Title:   "Quit Playground",
		Message: "Are you sure you want to exit?",
	})

	if m.focusedField != FieldConfirm {
		t.Errorf("expected focus on Confirm, got %d", m.focusedField)
	}
	if cmd := m.Init(); cmd != nil {
		t.Error("expected Init() to return nil")
	}
}

func TestUpdate_Submit(t *testing.T) {
	m := New(Config{Title: "Quit", Message: "Exit?"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from Enter on Confirm")
	}

	msg := cmd()
	if _, ok := msg.(SubmitMsg); !ok {
		t.Fatalf("expected SubmitMsg, got %T", msg)
	}
}

func TestUpdate_SubmitShortcut(t *testing.T) {
	m := New(Config{Title: "Quit", Message: "Exit?"})

	// "y" submits regardless of which button is focused.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.focusedField != FieldCancel {
		t.Fatalf("expected focus on Cancel, got %d", m.focusedField)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd == nil {
		t.Fatal("expected command from y key")
	}

	msg := cmd()
	if _, ok := msg.(SubmitMsg); !ok {
		t.Fatalf("expected SubmitMsg, got %T", msg)
	}
}

func TestUpdate_Cancel(t *testing.T) {
	m := New(Config{Title: "Quit", Message: "Exit?"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command from Esc key")
	}

	msg := cmd()
	if _, ok := msg.(CancelMsg); !ok {
		t.Fatalf("expected CancelMsg, got %T", msg)
	}
}

func TestUpdate_CancelButton(t *testing.T) {
	m := New(Config{Title: "Quit", Message: "Exit?"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.focusedField != FieldCancel {
		t.Fatalf("expected focus on Cancel, got %d", m.focusedField)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from Enter on Cancel")
	}

	msg := cmd()
	if _, ok := msg.(CancelMsg); !ok {
		t.Fatalf("expected CancelMsg, got %T", msg)
	}
}

func TestUpdate_FocusNavigation(t *testing.T) {
	m := New(Config{Title: "Quit"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedField() != FieldCancel {
		t.Errorf("tab: expected FieldCancel, got %d", m.FocusedField())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedField() != FieldConfirm {
		t.Errorf("shift+tab: expected FieldConfirm, got %d", m.FocusedField())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.FocusedField() != FieldCancel {
		t.Errorf("l: expected FieldCancel, got %d", m.FocusedField())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if m.FocusedField() != FieldConfirm {
		t.Errorf("h: expected FieldConfirm, got %d", m.FocusedField())
	}
}

func TestView_ContainsTitleAndButtons(t *testing.T) {
	m := New(Config{
		Title:          "Quit Playground",
		Message:        "Are you sure you want to exit?",
		ConfirmVariant: ButtonDanger,
	})

	view := m.View()
	if !strings.Contains(view, "Quit Playground") {
		t.Error("expected view to contain title")
	}
	if !strings.Contains(view, "Are you sure you want to exit?") {
		t.Error("expected view to contain message")
	}
	if !strings.Contains(view, "Confirm") {
		t.Error("expected view to contain Confirm button")
	}
	if !strings.Contains(view, "Cancel") {
		t.Error("expected view to contain Cancel button")
	}
}

func TestOverlay_PreservesBackgroundSize(t *testing.T) {
	m := New(Config{Title: "Quit", Message: "Exit?"})
	m.SetSize(100, 30)

	bgLine := strings.Repeat(".", 100)
	bgLines := make([]string, 30)
	for i := range bgLines {
		bgLines[i] = bgLine
	}
	bg := strings.Join(bgLines, "\n")

	out := m.Overlay(bg)
	lines := strings.Split(out, "\n")
	if len(lines) != 30 {
		t.Fatalf("expected 30 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "Quit") {
		t.Error("expected overlay to contain modal title")
	}
}
