package roadmap

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/catalog"
	"github.com/abhisek/studynav/internal/router"
	"github.com/abhisek/studynav/internal/screen"
	"github.com/abhisek/studynav/internal/ui/components"
	"github.com/abhisek/studynav/internal/ui/layout"
	"github.com/abhisek/studynav/internal/ui/theme"
)

// RoadmapScreen displays a course's topics as a vertical learning path.
// The cursor only rests on topics that are not locked.
type RoadmapScreen struct {
	course       catalog.Course
	cursor       int // -1 when every topic is locked
	scrollOffset int
}

var _ screen.Screen = (*RoadmapScreen)(nil)
var _ screen.KeyHintProvider = (*RoadmapScreen)(nil)

// New creates a RoadmapScreen for course.
func New(course catalog.Course) *RoadmapScreen {
	r := &RoadmapScreen{course: course, cursor: -1}
	for i, t := range course.Topics {
		if t.Clickable() {
			r.cursor = i
			break
		}
	}
	return r
}

func (r *RoadmapScreen) Init() tea.Cmd  { return nil }
func (r *RoadmapScreen) Title() string { return r.course.Name }

func (r *RoadmapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Topic"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *RoadmapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "up", "k":
		r.moveCursor(-1)
	case "down", "j":
		r.moveCursor(1)
	case "enter":
		return r, r.openTopic()
	case "q":
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return r, nil
}

// moveCursor moves by delta, skipping locked topics.
func (r *RoadmapScreen) moveCursor(delta int) {
	if r.cursor < 0 {
		return
	}
	for next := r.cursor + delta; next >= 0 && next < len(r.course.Topics); next += delta {
		if r.course.Topics[next].Clickable() {
			r.cursor = next
			return
		}
	}
}

func (r *RoadmapScreen) openTopic() tea.Cmd {
	if r.cursor < 0 {
		return nil
	}
	t := r.course.Topics[r.cursor]
	if !t.Clickable() {
		return nil
	}
	detail := newTopicDetail(r.course, t, r.cursor)
	return func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
}

func (r *RoadmapScreen) View(width, height int) string {
	cw := min(width-4, 80)

	c := r.course
	header := lipgloss.NewStyle().Foreground(theme.Named(c.Color)).Bold(true).
		Render(fmt.Sprintf("%s  %s", c.Icon, c.Name)) +
		"\n" + theme.Dim.Render(c.Code) +
		"\n" + lipgloss.NewStyle().Width(cw-4).Foreground(theme.Text).Render(c.Description)

	var rows []string
	for i, t := range c.Topics {
		rows = append(rows, r.renderNode(i, t, cw))
	}

	// Each node is three lines plus a connector.
	body := strings.Join(rows, "\n")
	lines := strings.Split(body, "\n")
	r.adjustScroll(height-6, 4)
	if r.scrollOffset < len(lines) {
		lines = lines[r.scrollOffset:]
	}

	return "\n" + theme.Card.Width(cw).Render(header) + "\n\n" +
		theme.Heading.Render("  Learning Path") + "\n" +
		strings.Join(lines, "\n")
}

func (r *RoadmapScreen) adjustScroll(height, rowHeight int) {
	if height <= 0 || r.cursor < 0 {
		return
	}
	top := r.cursor * rowHeight
	if top < r.scrollOffset {
		r.scrollOffset = top
	}
	if top+rowHeight > r.scrollOffset+height {
		r.scrollOffset = top + rowHeight - height
	}
}

func (r *RoadmapScreen) renderNode(i int, t catalog.Topic, width int) string {
	selected := i == r.cursor
	col := statusColor(t.Status)

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	icon := lipgloss.NewStyle().Foreground(col).Render(statusIcon(t.Status))

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case selected:
		nameStyle = theme.Selected
	case !t.Clickable():
		nameStyle = theme.Dim
	}

	title := fmt.Sprintf("  %s%s  %s  %s  %s",
		cursor, icon,
		theme.Dim.Render(fmt.Sprintf("Module %d", i+1)),
		nameStyle.Render(t.Name),
		lipgloss.NewStyle().Foreground(col).Render("["+t.Status.Label()+"]"),
	)

	meta := fmt.Sprintf("%sh", layout.FormatHours(t.EstimatedHours))
	if n := len(t.Resources); n > 0 {
		meta += fmt.Sprintf(" · %d resources", n)
	}
	detail := "       " + theme.Dim.Render(meta)
	if t.Status != catalog.TopicLocked && t.MasteryLevel > 0 {
		bar := components.NewProgressBar("", t.MasteryLevel, true, min(width-30, 30))
		bar.Color = theme.Mastery(t.MasteryLevel)
		detail += "   " + bar.View()
	}

	connector := "       " + lipgloss.NewStyle().Foreground(theme.Border).Render("│")
	if i == len(r.course.Topics)-1 {
		connector = ""
	}
	return title + "\n" + detail + "\n" + connector
}

func statusIcon(s catalog.TopicStatus) string {
	switch s {
	case catalog.TopicLocked:
		return "🔒"
	case catalog.TopicAvailable:
		return "○"
	case catalog.TopicInProgress:
		return "◐"
	case catalog.TopicCompleted:
		return "✓"
	case catalog.TopicMastered:
		return "★"
	default:
		return "·"
	}
}

func statusColor(s catalog.TopicStatus) color.Color {
	switch s {
	case catalog.TopicAvailable, catalog.TopicMastered:
		return theme.Accent
	case catalog.TopicInProgress:
		return theme.Warning
	case catalog.TopicCompleted:
		return theme.Success
	default:
		return theme.TextDim
	}
}
