package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studynav/internal/catalog"
	"github.com/abhisek/studynav/internal/router"
)

func newTestDashboard(t *testing.T) *DashboardScreen {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(c)
}

func TestDashboard_CursorBounds(t *testing.T) {
	d := newTestDashboard(t)

	d.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if d.cursor != 0 {
		t.Errorf("cursor moved above first course: %d", d.cursor)
	}
	for i := 0; i < 10; i++ {
		d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if d.cursor != len(d.catalog.Courses)-1 {
		t.Errorf("cursor = %d, want last course", d.cursor)
	}
}

func TestDashboard_EnterOpensRoadmap(t *testing.T) {
	d := newTestDashboard(t)
	d.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != d.catalog.Courses[1].Name {
		t.Errorf("opened %q, want %q", push.Screen.Title(), d.catalog.Courses[1].Name)
	}
}

func TestDashboard_View(t *testing.T) {
	d := newTestDashboard(t)
	view := d.View(120, 40)
	for _, want := range []string{
		"Data Structures & Algorithms",
		"Next deadline:",
		"Weekly Study Plan · Week 6",
		"5 of 8h completed",
		"2/4 tasks",
		"47.5",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
