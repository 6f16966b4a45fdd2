package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/studynav/internal/catalog"
	"github.com/abhisek/studynav/internal/chat"
	"github.com/abhisek/studynav/internal/router"
	"github.com/abhisek/studynav/internal/screen"
	chatscreen "github.com/abhisek/studynav/internal/screens/chat"
	"github.com/abhisek/studynav/internal/screens/dashboard"
	"github.com/abhisek/studynav/internal/screens/history"
	"github.com/abhisek/studynav/internal/screens/placeholder"
	quizscreen "github.com/abhisek/studynav/internal/screens/quiz"
	uploadscreen "github.com/abhisek/studynav/internal/screens/upload"
	"github.com/abhisek/studynav/internal/store"
	"github.com/abhisek/studynav/internal/ui/components"
	"github.com/abhisek/studynav/internal/ui/layout"
	"github.com/abhisek/studynav/internal/ui/theme"
)

// Deps are the collaborators the home menu hands to the screens it opens.
// EventRepo and Copilot may be nil; the matching entries then open a
// placeholder.
type Deps struct {
	Catalog    *catalog.Catalog
	EventRepo  store.EventRepo
	Copilot    *chat.Copilot
	UploadTick time.Duration
	Logger     logrus.FieldLogger
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Dashboard", Hint: "courses, stats and this week's plan", Action: h.open(h.dashboard)},
		{Label: "Take Quiz", Hint: deps.Catalog.Quiz.Title, Action: h.open(h.quiz)},
		{Label: "Study Copilot", Hint: "ask about your materials", Action: h.open(h.copilot)},
		{Label: "Upload Materials", Hint: "PDF, PPT, DOC, TXT", Action: h.open(h.upload)},
		{Label: "History", Hint: "past quiz attempts", Action: h.open(h.history)},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) open(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) dashboard() screen.Screen {
	return dashboard.New(h.deps.Catalog)
}

func (h *HomeScreen) quiz() screen.Screen {
	q := h.deps.Catalog.Quiz
	return quizscreen.New(&q, h.deps.EventRepo, h.deps.Logger)
}

func (h *HomeScreen) copilot() screen.Screen {
	if h.deps.Copilot == nil {
		return placeholder.New("Study Copilot")
	}
	return chatscreen.New(h.deps.Copilot)
}

func (h *HomeScreen) upload() screen.Screen {
	return uploadscreen.New(h.deps.UploadTick)
}

func (h *HomeScreen) history() screen.Screen {
	if h.deps.EventRepo == nil {
		return placeholder.New("History")
	}
	return history.New(h.deps.EventRepo)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	p := h.deps.Catalog.Progress

	greeting := theme.Title.Render("Welcome back!") + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("You're on a %d-day streak. Keep it up!", p.CurrentStreak))

	weekly := components.NewProgressBar("Weekly goal", p.WeeklyPercent(), true, 44)
	weekly.Color = theme.Success
	remaining := theme.Dim.Render(fmt.Sprintf("%sh of %sh done, %sh to go",
		layout.FormatHours(p.WeeklyProgress), layout.FormatHours(p.WeeklyGoal),
		layout.FormatHours(p.WeeklyRemaining())))

	menu := theme.Card.Width(min(width-4, 60)).Render(strings.TrimRight(h.menu.View(), "\n"))

	content := lipgloss.JoinVertical(lipgloss.Left,
		greeting,
		"",
		weekly.View(),
		remaining,
		"",
		menu,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
