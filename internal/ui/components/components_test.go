package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studynav/internal/quiz"
)

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "Dashboard"},
		{Label: "Also off", Disabled: true},
		{Label: "Quit"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down should skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up should skip disabled item, got %d", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "Go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("expected action to run on enter")
	}
	if cur, ok := m.Current(); !ok || cur.Label != "Go" {
		t.Errorf("Current = %+v, %v", cur, ok)
	}
	if !strings.Contains(m.View(), "▸ Go") {
		t.Errorf("view should mark selection:\n%s", m.View())
	}
}

func TestProgressBar_Filled(t *testing.T) {
	tests := []struct {
		pct, width, want int
	}{
		{0, 20, 0},
		{50, 20, 10},
		{65, 20, 13},
		{100, 20, 20},
		{140, 20, 20},
		{-5, 20, 0},
	}
	for _, tt := range tests {
		p := ProgressBar{Percent: tt.pct}
		if got := p.Filled(tt.width); got != tt.want {
			t.Errorf("Filled(%d%% of %d) = %d, want %d", tt.pct, tt.width, got, tt.want)
		}
	}
	if v := NewProgressBar("Week", 63, true, 30).View(); !strings.Contains(v, "63%") {
		t.Errorf("view missing percent: %q", v)
	}
}

func TestOptionListFor(t *testing.T) {
	q := &quiz.Quiz{
		ID: "q", Title: "T", PassingScore: 50,
		Questions: []quiz.Question{{ID: "1", Text: "?", Options: []string{"a", "b", "c"}, CorrectAnswer: 2}},
	}
	s := quiz.NewSession(q)
	s.SelectOption(1)

	list := OptionListFor(s.Snapshot(), 0)
	if list.Selected != 1 || list.Revealed {
		t.Fatalf("before submit: %+v", list)
	}

	s.SubmitAnswer()
	list = OptionListFor(s.Snapshot(), 0)
	if !list.Revealed || list.Selected != 1 || list.Correct != 2 {
		t.Fatalf("after submit: %+v", list)
	}
	view := list.View(40)
	if !strings.Contains(view, "C.  c  ✓") || !strings.Contains(view, "B.  b  ✗") {
		t.Errorf("revealed view:\n%s", view)
	}
}

func TestTextInput_Take(t *testing.T) {
	in := NewTextInput("Ask...", 0)
	in.SetValue("  what is a heap?  ")
	if got := in.Take(); got != "what is a heap?" {
		t.Errorf("Take = %q", got)
	}
	if in.Value() != "" {
		t.Errorf("Take should clear the field, got %q", in.Value())
	}
}
