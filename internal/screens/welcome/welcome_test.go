package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studynav/internal/router"
	"github.com/abhisek/studynav/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestRevealPhases(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 3)
	view := w.View(100, 30)
	if !strings.Contains(view, tagline) {
		t.Error("tagline should be visible after the banner phase")
	}
	if strings.Contains(view, "Smart Roadmaps") {
		t.Error("features should not be visible yet")
	}

	sendTicks(w, 6)
	view = w.View(100, 30)
	for _, f := range Features {
		if !strings.Contains(view, f.Title) {
			t.Errorf("missing feature %q", f.Title)
		}
	}
}

func TestTicksStopAtTotalDuration(t *testing.T) {
	w, _ := newTestWelcome()

	if cmd := sendTicks(w, int(totalDur/tickInterval)); cmd == nil {
		t.Fatal("expected ticking to continue until the reveal finishes")
	}
	if cmd := sendTicks(w, 1); cmd != nil {
		t.Error("expected ticking to stop once the reveal finished")
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, totalDur)
	}
	if !strings.Contains(w.View(100, 30), "press any key") {
		t.Error("expected the continue hint once revealed")
	}
}

func TestKeypressEmitsReplace(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 2)
	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 40)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
	if strings.Contains(RenderBanner(120), bannerCompact) {
		t.Error("wide terminals should get the block banner")
	}
}
