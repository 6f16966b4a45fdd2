package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/chat"
	"github.com/abhisek/studynav/internal/screen"
	"github.com/abhisek/studynav/internal/ui/components"
	"github.com/abhisek/studynav/internal/ui/layout"
	"github.com/abhisek/studynav/internal/ui/theme"
)

const thinkingInterval = 120 * time.Millisecond

var thinkingFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// replyMsg carries the assistant message once the copilot has answered.
type replyMsg struct {
	Message chat.Message
	Err     error
}

// thinkingTickMsg animates the pending-reply indicator.
type thinkingTickMsg time.Time

// ChatScreen is the study copilot conversation view.
type ChatScreen struct {
	copilot    *chat.Copilot
	input      components.TextInput
	suggestion int
	frame      int
	errMsg     string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.InputCapturer = (*ChatScreen)(nil)

// New creates a ChatScreen over copilot. The transcript lives on the
// copilot, so reopening the screen resumes the conversation.
func New(copilot *chat.Copilot) *ChatScreen {
	return &ChatScreen{
		copilot: copilot,
		input:   components.NewTextInput("Ask about your courses...", 500),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init()}
	if s.copilot.Waiting() {
		cmds = append(cmds, thinkingTick())
	}
	return tea.Batch(cmds...)
}

func (s *ChatScreen) Title() string {
	return "Study Copilot"
}

// Capturing holds Esc while the field has text; Esc then clears it.
func (s *ChatScreen) Capturing() bool {
	return s.input.Value() != ""
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Send"}}
	if s.copilot.Transcript().UserTurns() == 0 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Suggestion"})
	}
	if s.Capturing() {
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Clear"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			s.errMsg = "The copilot could not answer. Try again."
		}
		return s, nil

	case thinkingTickMsg:
		if !s.copilot.Waiting() {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(thinkingFrames)
		return s, thinkingTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "tab":
			if s.copilot.Transcript().UserTurns() == 0 {
				s.input.SetValue(chat.SuggestedQuestions[s.suggestion])
				s.suggestion = (s.suggestion + 1) % len(chat.SuggestedQuestions)
			}
			return s, nil
		case "esc":
			s.input.Take()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send submits the field contents and schedules the reply.
func (s *ChatScreen) send() tea.Cmd {
	text := s.input.Value()
	if _, err := s.copilot.Submit(text); err != nil {
		if errors.Is(err, chat.ErrReplyPending) {
			s.errMsg = "Wait for the current answer first."
		}
		return nil
	}
	s.input.Take()
	s.errMsg = ""
	s.frame = 0

	copilot := s.copilot
	return tea.Batch(
		func() tea.Msg {
			m, err := copilot.Reply(context.Background())
			return replyMsg{Message: m, Err: err}
		},
		thinkingTick(),
	)
}

func thinkingTick() tea.Cmd {
	return tea.Tick(thinkingInterval, func(t time.Time) tea.Msg {
		return thinkingTickMsg(t)
	})
}

func (s *ChatScreen) View(width, height int) string {
	cw := min(width-4, 100)

	header := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  ✦ Learning Copilot") + "\n" +
		theme.Dim.Render("  Ask anything about your courses")

	var body []string
	if s.copilot.Transcript().UserTurns() == 0 {
		body = append(body, s.renderSuggestions()...)
	}
	for _, m := range s.copilot.Transcript().Messages() {
		body = append(body, renderMessage(m, cw))
	}
	if s.copilot.Waiting() {
		body = append(body, "  "+lipgloss.NewStyle().Foreground(theme.Accent).Render(thinkingFrames[s.frame])+
			theme.Dim.Render(" Thinking..."))
	}

	footer := ""
	if s.errMsg != "" {
		footer = theme.Incorrect.Render("  "+s.errMsg) + "\n"
	}
	footer += s.input.View(cw)

	// Keep the newest lines visible.
	avail := height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	lines := strings.Split(strings.Join(body, "\n\n"), "\n")
	if avail > 0 && len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	transcript := lipgloss.NewStyle().Height(max(avail, 0)).Render(strings.Join(lines, "\n"))

	return header + "\n\n" + transcript + "\n" + footer
}

func (s *ChatScreen) renderSuggestions() []string {
	out := []string{"  " + theme.Heading.Render("How can I help you today?")}
	var rows []string
	for i, q := range chat.SuggestedQuestions {
		marker := "  "
		if i == s.suggestion {
			marker = "▸ "
		}
		rows = append(rows, "  "+marker+theme.Hint.Render(q))
	}
	return append(out, strings.Join(rows, "\n"))
}

func renderMessage(m chat.Message, width int) string {
	bubbleWidth := width * 3 / 4
	if m.Role == chat.RoleUser {
		content := lipgloss.NewStyle().MaxWidth(bubbleWidth).Render(theme.UserBubble.Render(wrap(m.Content, bubbleWidth-2)))
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, content)
	}

	text := theme.AssistantBubble.Render(wrap(m.Content, bubbleWidth-2))
	if len(m.Sources) == 0 {
		return "  " + strings.ReplaceAll(text, "\n", "\n  ")
	}

	var src []string
	for _, source := range m.Sources {
		src = append(src, theme.Dim.Render("    📄 "+formatSource(source)))
	}
	return "  " + strings.ReplaceAll(text, "\n", "\n  ") + "\n" +
		theme.Dim.Render("    Sources:") + "\n" + strings.Join(src, "\n")
}

func formatSource(s chat.Source) string {
	out := s.Title
	if s.Page > 0 {
		out += fmt.Sprintf(" · p.%d", s.Page)
	}
	return out + fmt.Sprintf(" · %d%% match", int(s.Relevance*100+0.5))
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 10)).Render(text)
}
