package roadmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/catalog"
	"github.com/abhisek/studynav/internal/screen"
	"github.com/abhisek/studynav/internal/ui/layout"
	"github.com/abhisek/studynav/internal/ui/theme"
)

// TopicDetailScreen shows one topic with its resources and prerequisites.
type TopicDetailScreen struct {
	course catalog.Course
	topic  catalog.Topic
	index  int
}

var _ screen.Screen = (*TopicDetailScreen)(nil)
var _ screen.KeyHintProvider = (*TopicDetailScreen)(nil)

func newTopicDetail(course catalog.Course, topic catalog.Topic, index int) *TopicDetailScreen {
	return &TopicDetailScreen{course: course, topic: topic, index: index}
}

func (d *TopicDetailScreen) Init() tea.Cmd { return nil }
func (d *TopicDetailScreen) Title() string { return d.topic.Name }

func (d *TopicDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *TopicDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *TopicDetailScreen) View(width, height int) string {
	t := d.topic
	contentWidth := min(width-8, 70)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(statusColor(t.Status)).Bold(true).
		Render(fmt.Sprintf("  %s  %s", statusIcon(t.Status), t.Name)))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  Module %d of %s · %s", d.index+1, d.course.Code, t.Status.Label())))
	b.WriteString("\n\n")

	if t.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(t.Description))
		b.WriteString("\n\n")
	}

	val := lipgloss.NewStyle().Foreground(theme.Text)
	b.WriteString(theme.Dim.Render("  Mastery:    ") +
		lipgloss.NewStyle().Foreground(theme.Mastery(t.MasteryLevel)).Render(fmt.Sprintf("%d%%", t.MasteryLevel)) + "\n")
	b.WriteString(theme.Dim.Render("  Estimated:  ") + val.Render(layout.FormatHours(t.EstimatedHours)+" hours") + "\n\n")

	if len(t.Resources) > 0 {
		b.WriteString(theme.Heading.Render("  Resources"))
		b.WriteString("\n")
		for _, r := range t.Resources {
			line := fmt.Sprintf("  %s %s", resourceIcon(r.Type), r.Title)
			if r.Duration != "" {
				line += theme.Dim.Render("  " + r.Duration)
			}
			b.WriteString(val.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(t.Prerequisites) > 0 {
		b.WriteString(theme.Heading.Render("  Prerequisites"))
		b.WriteString("\n")
		for _, id := range t.Prerequisites {
			name, done := id, false
			for _, other := range d.course.Topics {
				if other.ID == id {
					name = other.Name
					done = other.Status == catalog.TopicCompleted || other.Status == catalog.TopicMastered
				}
			}
			icon, style := "○", theme.Dim
			if done {
				icon, style = "●", lipgloss.NewStyle().Foreground(theme.Success)
			}
			b.WriteString(style.Render(fmt.Sprintf("  %s %s", icon, name)))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}

func resourceIcon(kind string) string {
	switch kind {
	case "pdf":
		return "📄"
	case "video":
		return "🎬"
	case "slides":
		return "📊"
	case "quiz":
		return "📝"
	default:
		return "📎"
	}
}
