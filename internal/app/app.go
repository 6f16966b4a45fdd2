package app

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/studynav/internal/catalog"
	"github.com/abhisek/studynav/internal/chat"
	"github.com/abhisek/studynav/internal/quiz"
	"github.com/abhisek/studynav/internal/router"
	"github.com/abhisek/studynav/internal/screen"
	"github.com/abhisek/studynav/internal/screens/home"
	quizscreen "github.com/abhisek/studynav/internal/screens/quiz"
	"github.com/abhisek/studynav/internal/screens/welcome"
	"github.com/abhisek/studynav/internal/store"
	"github.com/abhisek/studynav/internal/ui/layout"
)

// Options holds dependencies for the app.
type Options struct {
	Catalog    *catalog.Catalog
	EventRepo  store.EventRepo
	Copilot    *chat.Copilot
	UploadTick time.Duration
	Logger     logrus.FieldLogger

	// StartQuiz skips the welcome screen and opens this quiz over home.
	StartQuiz *quiz.Quiz
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	stats  layout.HeaderStats
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the welcome screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	deps := home.Deps{
		Catalog:    opts.Catalog,
		EventRepo:  opts.EventRepo,
		Copilot:    opts.Copilot,
		UploadTick: opts.UploadTick,
		Logger:     opts.Logger,
	}
	p := opts.Catalog.Progress
	m := AppModel{
		stats: layout.HeaderStats{
			Streak:      p.CurrentStreak,
			WeeklyHours: p.WeeklyProgress,
			WeeklyGoal:  p.WeeklyGoal,
		},
	}

	if opts.StartQuiz != nil {
		m.router = router.New(home.New(deps))
		m.start = m.router.Push(quizscreen.New(opts.StartQuiz, opts.EventRepo, opts.Logger))
		return m
	}

	welcomeScreen := welcome.New(func() screen.Screen { return home.New(deps) })
	m.router = router.New(welcomeScreen)
	m.start = welcomeScreen.Init()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// capturing reports whether the active screen owns the keyboard.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.Capturing()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Catalog == nil {
		return fmt.Errorf("app: catalog is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
