package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/quiz"
	"github.com/abhisek/studynav/internal/ui/theme"
)

// OptionList renders the lettered answer options of one quiz question.
// Before reveal the cursor and the selected option are highlighted; after
// reveal the correct option is green and a wrong choice red.
type OptionList struct {
	Options  []string
	Cursor   int
	Selected int // quiz.NoAnswer when nothing is chosen
	Revealed bool
	Correct  int
}

// OptionListFor builds the list for snap with the keyboard cursor at cursor.
func OptionListFor(snap quiz.Snapshot, cursor int) OptionList {
	selected := snap.Selected
	if snap.Revealed {
		selected = snap.Answers[snap.CurrentIndex]
	}
	return OptionList{
		Options:  snap.Question.Options,
		Cursor:   cursor,
		Selected: selected,
		Revealed: snap.Revealed,
		Correct:  snap.Question.CorrectAnswer,
	}
}

// View renders one option per line.
func (o OptionList) View(width int) string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor && !o.Revealed {
			prefix = "▸ "
		}
		marker := "○"
		if i == o.Selected {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s.  %s", prefix, marker, quiz.OptionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case o.Revealed && i == o.Correct:
			style = theme.Correct
			line += "  ✓"
		case o.Revealed && i == o.Selected:
			style = theme.Incorrect
			line += "  ✗"
		case o.Revealed:
			style = theme.Dim
		case i == o.Selected:
			style = theme.Selected
		case i == o.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
