package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMultiChoice_Navigation(t *testing.T) {
	m := NewMultiChoice("Pick one", []string{"a", "b", "c"})

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", m.Cursor)
	}
	m, _ = m.Update(key("1"))
	if m.Cursor != 0 {
		t.Errorf("cursor after '1' = %d, want 0", m.Cursor)
	}
	m, _ = m.Update(key("9"))
	if m.Cursor != 0 {
		t.Errorf("cursor after out-of-range key = %d, want 0", m.Cursor)
	}
}

func TestMultiChoice_RevealFreezesCursor(t *testing.T) {
	m := NewMultiChoice("Pick one", []string{"a", "b"})
	m.Reveal(1, 0)
	m, _ = m.Update(key("down"))
	if m.Cursor != 0 {
		t.Errorf("cursor moved while revealed")
	}
	if !m.Revealed() {
		t.Error("expected revealed")
	}
	m.Reset()
	if m.Revealed() {
		t.Error("expected reset")
	}
}

func TestMultiChoice_ViewLabelsOptions(t *testing.T) {
	m := NewMultiChoice("Pick one", []string{"alpha", "beta"})
	v := m.View()
	for _, want := range []string{"Pick one", "A)", "alpha", "B)", "beta"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestProgressBar_Filled(t *testing.T) {
	tests := []struct {
		percent float64
		want    int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{150, 20},
		{-5, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.percent, false, 20)
		if got := p.Filled(20); got != tt.want {
			t.Errorf("Filled(%v) = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { picked = "one"; return nil }},
		{Label: "off2", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { picked = "two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("selected moved past end: %d", m.Selected)
	}
	m.Update(key("enter"))
	if picked != "two" {
		t.Errorf("picked = %q, want two", picked)
	}
}
