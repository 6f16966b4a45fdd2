package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/screen"
	"github.com/abhisek/studynav/internal/store"
	"github.com/abhisek/studynav/internal/ui/layout"
	"github.com/abhisek/studynav/internal/ui/theme"
)

// recentLimit caps how many attempts the screen loads.
const recentLimit = 50

type historyLoadedMsg struct {
	Attempts []store.QuizAttemptRecord
	Summary  store.QuizSummary
	Err      error
}

// HistoryScreen displays past quiz attempts with an aggregate summary.
type HistoryScreen struct {
	eventRepo store.EventRepo
	attempts  []store.QuizAttemptRecord
	summary   store.QuizSummary
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := repo.QueryQuizAttempts(ctx, store.QueryOpts{Limit: recentLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		summary, err := repo.QuizSummary(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: attempts, Summary: summary}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.summary = msg.Summary
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			if len(s.attempts) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Take one from the home menu!")
	}

	var b strings.Builder
	b.WriteString("\n")

	sum := s.summary
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Heading.Render(
		fmt.Sprintf("%d attempts  ·  %d%% pass rate  ·  avg %d%%  ·  best %d%%",
			sum.Attempts, sum.PassRate(), sum.AvgScore, sum.BestScore))))
	b.WriteString("\n\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		verdict := theme.Correct.Render("PASSED")
		if !a.Passed {
			verdict = theme.Incorrect.Render("NEEDS REVIEW")
		}

		line := fmt.Sprintf("%s%s  %s  %d%% (%d/%d)  ",
			prefix, a.Timestamp.Format("Jan 02, 2006"), a.QuizTitle, a.Score, a.Correct, a.Total)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+verdict))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s  ·  took %s  ·  attempt %s",
				a.Timestamp.Format("15:04"), formatDuration(a.Duration), shortID(a.SessionID))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
