package quiz

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/studynav/internal/quiz"
	"github.com/abhisek/studynav/internal/ui/components"
	"github.com/abhisek/studynav/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if res, done := s.session.Result(); done {
		return s.renderResult(res, width, height)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	snap := s.session.Snapshot()
	q := s.session.Quiz()
	cw := min(width-4, 76)

	var b strings.Builder

	// Title badge and time limit.
	left := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  🧠 " + q.Title)
	right := ""
	if q.TimeLimit > 0 {
		right = theme.Dim.Render(fmt.Sprintf("⏱ %d min", q.TimeLimit))
	}
	line := left
	if pad := cw - lipgloss.Width(left) - lipgloss.Width(right); pad > 0 && right != "" {
		line += strings.Repeat(" ", pad) + right
	}
	b.WriteString(line)
	b.WriteString("\n")

	// Progress through the quiz.
	bar := components.NewProgressBar("", qz.Percent(snap.CurrentIndex+1, snap.Total), false, cw-10)
	bar.Color = theme.Accent
	b.WriteString("  " + bar.View() + theme.Dim.Render(fmt.Sprintf("  %d/%d", snap.CurrentIndex+1, snap.Total)))
	b.WriteString("\n\n")

	if d := snap.Question.Difficulty; d != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(difficultyColor(d)).Bold(true).Render("["+d.Label()+"]"))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Width(cw).PaddingLeft(2).Foreground(theme.Text).Bold(true).Render(snap.Question.Text))
	b.WriteString("\n\n")

	opts := components.OptionListFor(snap, s.cursor)
	for _, l := range strings.Split(strings.TrimRight(opts.View(cw-2), "\n"), "\n") {
		b.WriteString("  " + l + "\n")
	}
	b.WriteString("\n")

	if snap.Revealed {
		verdict := theme.Correct.Render("✓ Correct!")
		if !snap.Question.IsCorrect(snap.Answers[snap.CurrentIndex]) {
			verdict = theme.Incorrect.Render("✗ Not quite")
		}
		body := verdict + "\n\n" + theme.Heading.Render("Explanation") + "\n" +
			lipgloss.NewStyle().Width(cw-6).Foreground(theme.TextDim).Render(snap.Question.Explanation)
		b.WriteString(theme.Card.Width(cw).Render(body))
		b.WriteString("\n\n")

		next := "Next Question →"
		if snap.IsLast() {
			next = "See Results"
		}
		b.WriteString("  " + theme.Selected.Render("[ "+next+" ]"))
	} else {
		submit := theme.Dim.Render("[ Submit Answer ]")
		if snap.Selected != qz.NoAnswer {
			submit = theme.Selected.Render("[ Submit Answer ]")
		}
		b.WriteString("  " + submit)
	}

	return "\n" + b.String()
}

func (s *QuizScreen) renderResult(res qz.Result, width, height int) string {
	q := s.session.Quiz()
	snap := s.session.Snapshot()

	icon, heading, badge := theme.Correct.Render("✓"), "Congratulations!", theme.Correct.Render("PASSED")
	if !res.Passed {
		icon, heading, badge = theme.Incorrect.Render("✗"), "Keep Practicing!", theme.Incorrect.Render("NEEDS REVIEW")
	}

	var b strings.Builder
	b.WriteString(icon + "\n\n")
	b.WriteString(theme.Title.Render(heading) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("You scored %d%% (%d/%d correct)", res.Score, res.Correct, res.Total)))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Passing score: %d%%", q.PassingScore)))
	b.WriteString("\n\n" + badge + "\n\n")

	// Per-question review.
	var review []string
	for i, question := range q.Questions {
		mark := theme.Correct.Render("✓")
		if !question.IsCorrect(snap.Answers[i]) {
			mark = theme.Incorrect.Render("✗")
		}
		review = append(review, fmt.Sprintf("%s Q%d", mark, i+1))
	}
	b.WriteString(strings.Join(review, "  "))
	b.WriteString("\n\n")

	if s.saveErr != "" {
		b.WriteString(theme.Incorrect.Render(s.saveErr) + "\n\n")
	}
	b.WriteString(theme.Dim.Render("[R] Try Again    [Enter] Continue Learning"))

	card := theme.Card.Width(min(width-4, 60)).Align(lipgloss.Center).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func difficultyColor(d qz.Difficulty) color.Color {
	switch d {
	case qz.DifficultyEasy:
		return theme.Success
	case qz.DifficultyMedium:
		return theme.Warning
	default:
		return theme.Error
	}
}
