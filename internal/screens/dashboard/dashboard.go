package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/catalog"
	"github.com/abhisek/studynav/internal/router"
	"github.com/abhisek/studynav/internal/screen"
	"github.com/abhisek/studynav/internal/screens/roadmap"
	"github.com/abhisek/studynav/internal/ui/components"
	"github.com/abhisek/studynav/internal/ui/layout"
	"github.com/abhisek/studynav/internal/ui/theme"
)

// DashboardScreen shows aggregate stats, the enrolled courses and the
// weekly study plan.
type DashboardScreen struct {
	catalog *catalog.Catalog
	cursor  int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen over c.
func New(c *catalog.Catalog) *DashboardScreen {
	return &DashboardScreen{catalog: c}
}

func (d *DashboardScreen) Init() tea.Cmd  { return nil }
func (d *DashboardScreen) Title() string { return "Dashboard" }

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Course"},
		{Key: "Enter", Description: "Roadmap"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.catalog.Courses)-1 {
			d.cursor++
		}
	case "enter":
		if d.cursor < len(d.catalog.Courses) {
			next := roadmap.New(d.catalog.Courses[d.cursor])
			return d, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	cw := min(width-4, 100)
	left := (cw * 3) / 5
	right := cw - left - 2

	courses := d.renderCourses(left)
	side := lipgloss.JoinVertical(lipgloss.Left,
		d.renderStats(right),
		d.renderPlan(right),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, courses, "  ", side)
	if layout.IsCompactWidth(width) {
		body = lipgloss.JoinVertical(lipgloss.Left, d.renderStats(cw), d.renderCourses(cw))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+body)
}

func (d *DashboardScreen) renderStats(width int) string {
	p := d.catalog.Progress
	dim := theme.Dim
	val := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	lines := []string{
		theme.Heading.Render("Your Progress"),
		dim.Render("Study hours     ") + val.Render(layout.FormatHours(p.TotalStudyHours)),
		dim.Render("Courses         ") + val.Render(fmt.Sprintf("%d", p.CoursesEnrolled)),
		dim.Render("Quizzes done    ") + val.Render(fmt.Sprintf("%d", p.QuizzesCompleted)),
		dim.Render("Avg mastery     ") + lipgloss.NewStyle().Foreground(theme.Mastery(p.AverageMastery)).Bold(true).
			Render(fmt.Sprintf("%d%%", p.AverageMastery)),
		dim.Render("Streak          ") + val.Render(fmt.Sprintf("%d days (best %d)", p.CurrentStreak, p.LongestStreak)),
	}
	return theme.Card.Width(width).Render(strings.Join(lines, "\n"))
}

func (d *DashboardScreen) renderCourses(width int) string {
	var cards []string
	cards = append(cards, theme.Heading.Render("Your Courses"))
	for i, c := range d.catalog.Courses {
		cards = append(cards, renderCourseCard(c, i == d.cursor, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderCourseCard(c catalog.Course, selected bool, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Named(c.Color)).Bold(true).Render(c.Name)
	code := theme.Dim.Render(c.Code + "  ·  " + string(c.Difficulty))

	bar := components.NewProgressBar("", c.Progress, true, width-4)
	bar.Color = theme.Accent
	if c.OnTrack() {
		bar.Color = theme.Success
	}

	meta := theme.Dim.Render(fmt.Sprintf("%d/%d topics   %dh/week", c.CompletedTopics, c.TotalTopics, c.WeeklyHours))
	lines := []string{c.Icon + " " + name, code, bar.View(), meta}
	if c.NextDeadline != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Render("Next deadline: ")+
			theme.Body.Render(c.NextDeadline))
	}

	style := theme.Card
	if selected {
		style = theme.SelectedCard
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (d *DashboardScreen) renderPlan(width int) string {
	plan := d.catalog.StudyPlan

	header := theme.Heading.Render(fmt.Sprintf("Weekly Study Plan · Week %d", plan.WeekNumber))
	if course, ok := d.catalog.PlanCourse(); ok {
		header += "\n" + theme.Dim.Render(course.Code+"  "+plan.StartDate+" → "+plan.EndDate)
	}

	bar := components.NewProgressBar("", plan.Percent(), true, width-4)
	hours := theme.Dim.Render(fmt.Sprintf("%s of %sh completed",
		layout.FormatHours(plan.CompletedHours), layout.FormatHours(plan.TotalHours)))

	lines := []string{header, bar.View(), hours, ""}
	for _, g := range plan.Goals {
		check := theme.Dim.Render("○")
		if g.Completed {
			check = theme.Correct.Render("●")
		}
		lines = append(lines,
			check+" "+theme.Body.Render(g.TopicName)+
				theme.Dim.Render(fmt.Sprintf("  %d/%d tasks", g.CompletedActivities(), len(g.Activities))),
			theme.Dim.Render(fmt.Sprintf("  mastery %d%% → %d%%", g.CurrentMastery, g.TargetMastery)),
		)
	}
	return theme.Card.Width(width).Render(strings.Join(lines, "\n"))
}
