package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/router"
	"github.com/abhisek/studynav/internal/screen"
	"github.com/abhisek/studynav/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
	featuresAt   = 900 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

// Feature is one landing blurb.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// Features are shown beneath the banner.
var Features = []Feature{
	{"\U0001F5FA", "Smart Roadmaps", "Week-by-week study plans built around your syllabus and available time"},
	{"\U0001F3AF", "Adaptive Quizzes", "Questions that focus on the topics where your mastery is weakest"},
	{"\U0001F4AC", "Cited Answers", "Ask anything and get answers with citations from your materials"},
}

const tagline = "Master any course with personalized guidance"

type tickMsg time.Time

// WelcomeScreen reveals the banner and features, then hands off to home on
// the first key press.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory().
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the reveal.
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	badge := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render("✨ Study Companion")
	sections = append(sections, badge, "")

	if w.elapsed >= bannerAt {
		sections = append(sections,
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
		)
	}

	if w.elapsed >= featuresAt {
		sections = append(sections, "", renderFeatures(width))
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "", theme.Hint.Render("press any key to start learning"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderFeatures(width int) string {
	cardWidth := min((width-8)/len(Features), 30)
	if cardWidth < 20 {
		// Stack the blurbs as single lines on narrow terminals.
		var lines []string
		for _, f := range Features {
			lines = append(lines, f.Icon+" "+theme.Heading.Render(f.Title))
		}
		return strings.Join(lines, "\n")
	}

	cards := make([]string, 0, len(Features))
	for _, f := range Features {
		body := f.Icon + " " + theme.Heading.Render(f.Title) + "\n\n" + theme.Dim.Render(f.Description)
		cards = append(cards, theme.Card.Width(cardWidth).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
