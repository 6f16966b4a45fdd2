package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/screen"
	"github.com/abhisek/studynav/internal/ui/components"
	"github.com/abhisek/studynav/internal/ui/layout"
	"github.com/abhisek/studynav/internal/ui/theme"
	"github.com/abhisek/studynav/internal/upload"
)

// tickMsg advances the simulated pipeline.
type tickMsg time.Time

// UploadScreen takes material paths and shows their simulated intake.
type UploadScreen struct {
	queue     *upload.Queue
	input     components.TextInput
	interval  time.Duration
	ticking   bool
	listFocus bool
	cursor    int
	errMsg    string
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)
var _ screen.InputCapturer = (*UploadScreen)(nil)

// New creates an UploadScreen advancing every interval; zero means the
// default progress interval.
func New(interval time.Duration) *UploadScreen {
	if interval <= 0 {
		interval = upload.ProgressInterval
	}
	return &UploadScreen{
		queue:    upload.NewQueue(),
		input:    components.NewTextInput("Path to a syllabus, slides, or notes...", 1024),
		interval: interval,
	}
}

func (s *UploadScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *UploadScreen) Title() string {
	return "Upload Materials"
}

// Queue exposes the intake queue.
func (s *UploadScreen) Queue() *upload.Queue {
	return s.queue
}

func (s *UploadScreen) Capturing() bool {
	return !s.listFocus && s.input.Value() != ""
}

func (s *UploadScreen) KeyHints() []layout.KeyHint {
	if s.listFocus {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "X", Description: "Remove"},
			{Key: "Tab", Description: "Path"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Upload"}}
	if s.queue.Len() > 0 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Files"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		s.queue.Advance(time.Time(msg))
		if s.queue.Done() {
			s.ticking = false
			return s, nil
		}
		return s, s.tick()

	case tea.KeyMsg:
		if s.listFocus {
			return s.handleListKey(msg)
		}
		switch msg.String() {
		case "enter":
			return s, s.add()
		case "tab":
			if s.queue.Len() > 0 {
				s.listFocus = true
				s.input.Blur()
			}
			return s, nil
		case "esc":
			s.input.Take()
			return s, nil
		}
	}

	if s.listFocus {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *UploadScreen) handleListKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	files := s.queue.Files()
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(files)-1 {
			s.cursor++
		}
	case "x", "delete", "backspace":
		if s.cursor < len(files) {
			s.queue.Remove(files[s.cursor].ID)
			if s.cursor >= s.queue.Len() && s.cursor > 0 {
				s.cursor--
			}
		}
		if s.queue.Len() == 0 {
			return s, s.focusInput()
		}
	case "tab":
		return s, s.focusInput()
	}
	return s, nil
}

func (s *UploadScreen) focusInput() tea.Cmd {
	s.listFocus = false
	return s.input.Focus()
}

// add inspects the typed path and enqueues it.
func (s *UploadScreen) add() tea.Cmd {
	path := expandHome(s.input.Value())
	if path == "" {
		return nil
	}
	f, err := upload.Inspect(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.errMsg = fmt.Sprintf("No such file: %s", path)
		} else {
			s.errMsg = err.Error()
		}
		return nil
	}
	s.input.Take()
	s.errMsg = ""
	s.queue.Add(f)

	if s.ticking || f.Done() {
		return nil
	}
	s.ticking = true
	return s.tick()
}

func (s *UploadScreen) tick() tea.Cmd {
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func (s *UploadScreen) View(width, height int) string {
	cw := min(width-4, 80)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  ⬆ Upload Course Materials"))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render("  Drop your syllabus, slides, or notes"))
	b.WriteString("\n\n")

	b.WriteString(s.input.View(cw))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  PDF, PPT, DOC, TXT up to 50MB"))
	b.WriteString("\n")
	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Render("  " + s.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	files := s.queue.Files()
	if len(files) == 0 {
		return b.String()
	}

	counts := s.queue.Counts()
	b.WriteString(theme.Heading.Render(fmt.Sprintf("  Files (%d)", len(files))))
	b.WriteString(theme.Dim.Render(fmt.Sprintf("   %d complete", counts[upload.StatusComplete])))
	b.WriteString("\n")
	for i, f := range files {
		b.WriteString(s.renderFile(i, f, cw))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *UploadScreen) renderFile(i int, f upload.File, width int) string {
	style := theme.Card
	if s.listFocus && i == s.cursor {
		style = theme.SelectedCard
	}

	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(f.Kind().Icon() + " " + f.Name)
	meta := theme.Dim.Render(upload.FormatSize(f.Size))

	var status string
	switch f.Status {
	case upload.StatusUploading:
		bar := components.NewProgressBar("", f.Progress, true, min(width-8, 50))
		bar.Color = theme.Accent
		status = bar.View()
	case upload.StatusProcessing:
		status = lipgloss.NewStyle().Foreground(theme.Warning).Render("⟳ Processing...")
	case upload.StatusComplete:
		status = theme.Correct.Render("✓ Ready")
	case upload.StatusError:
		status = theme.Incorrect.Render("✗ " + f.Err)
	}

	return style.Width(width).Render(name + "  " + meta + "\n" + status)
}
