package chat

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studynav/internal/chat"
)

func newScreen() *ChatScreen {
	return New(chat.New(chat.Options{ReplyDelay: -1}))
}

func press(s *ChatScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

// runBatch executes cmd and every command it batches, returning the
// resulting messages.
func runBatch(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runBatch(c)...)
	}
	return out
}

func TestChatScreen_EmptyShowsSuggestions(t *testing.T) {
	s := newScreen()
	view := s.View(100, 40)
	for _, want := range []string{"How can I help you today?", chat.SuggestedQuestions[0], chat.SuggestedQuestions[3]} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestChatScreen_TabCyclesSuggestions(t *testing.T) {
	s := newScreen()
	press(s, tea.KeyTab)
	if s.input.Value() != chat.SuggestedQuestions[0] {
		t.Fatalf("input = %q", s.input.Value())
	}
	press(s, tea.KeyTab)
	if s.input.Value() != chat.SuggestedQuestions[1] {
		t.Fatalf("input = %q", s.input.Value())
	}
	if !s.Capturing() {
		t.Error("non-empty input should capture Esc")
	}

	press(s, tea.KeyEscape)
	if s.input.Value() != "" || s.Capturing() {
		t.Error("esc should clear the field")
	}
}

func TestChatScreen_EmptyEnterIgnored(t *testing.T) {
	s := newScreen()
	s.input.SetValue("   ")
	if cmd := press(s, tea.KeyEnter); cmd != nil {
		t.Error("blank input should not send")
	}
	if s.copilot.Transcript().Len() != 0 {
		t.Error("blank input reached the transcript")
	}
}

func TestChatScreen_SendAndReply(t *testing.T) {
	s := newScreen()
	s.input.SetValue("Quiz me on trees")

	cmd := press(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected reply command")
	}
	if s.input.Value() != "" {
		t.Error("input should clear after send")
	}
	if !strings.Contains(s.View(100, 40), "Thinking...") {
		t.Error("pending reply should show Thinking...")
	}

	// A second send while waiting is refused.
	s.input.SetValue("another")
	if c := press(s, tea.KeyEnter); c != nil {
		t.Error("send while waiting should not schedule a reply")
	}
	if !strings.Contains(s.View(100, 40), "Wait for the current answer") {
		t.Error("expected pending warning")
	}

	var got bool
	for _, msg := range runBatch(cmd) {
		if r, ok := msg.(replyMsg); ok {
			got = true
			if r.Err != nil {
				t.Fatalf("reply error: %v", r.Err)
			}
			s.Update(r)
		}
	}
	if !got {
		t.Fatal("no replyMsg produced")
	}

	msgs := s.copilot.Transcript().Messages()
	if len(msgs) != 2 || msgs[1].Role != chat.RoleAssistant {
		t.Fatalf("transcript = %+v", msgs)
	}

	view := s.View(120, 60)
	for _, want := range []string{"Quiz me on trees", "Sources:", "p.42", "92% match"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "How can I help you today?") {
		t.Error("suggestions should hide after the first turn")
	}
	if strings.Contains(view, "Thinking...") {
		t.Error("Thinking... should clear once answered")
	}
}

func TestChatScreen_ThinkingTickStopsWhenIdle(t *testing.T) {
	s := newScreen()
	if _, cmd := s.Update(thinkingTickMsg{}); cmd != nil {
		t.Error("idle copilot should not keep ticking")
	}
}

func TestFormatSource(t *testing.T) {
	if got := formatSource(chat.Source{Title: "Notes", Relevance: 0.86}); got != "Notes · 86% match" {
		t.Errorf("formatSource = %q", got)
	}
	if got := formatSource(chat.Source{Title: "Ch 1", Page: 3, Relevance: 1}); got != "Ch 1 · p.3 · 100% match" {
		t.Errorf("formatSource = %q", got)
	}
}
