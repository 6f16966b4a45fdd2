package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/studynav/internal/quiz"
	"github.com/abhisek/studynav/internal/router"
	"github.com/abhisek/studynav/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	attempts []store.QuizAttemptData
	err      error
}

func (m *mockEventRepo) AppendQuizAttempt(_ context.Context, data store.QuizAttemptData) error {
	if m.err != nil {
		return m.err
	}
	m.attempts = append(m.attempts, data)
	return nil
}
func (m *mockEventRepo) QueryQuizAttempts(_ context.Context, _ store.QueryOpts) ([]store.QuizAttemptRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) QuizSummary(_ context.Context) (store.QuizSummary, error) {
	return store.QuizSummary{}, nil
}
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMRequestEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMRequestEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.LLMUsageStats, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(_ context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

func testQuiz() *qz.Quiz {
	return &qz.Quiz{
		ID:           "q-test",
		Title:        "Tree Basics",
		PassingScore: 50,
		TimeLimit:    10,
		Questions: []qz.Question{
			{ID: "1", Text: "Root has how many parents?", Options: []string{"0", "1", "2"}, CorrectAnswer: 0, Explanation: "The root is the top.", Difficulty: qz.DifficultyEasy},
			{ID: "2", Text: "Inorder of a BST is?", Options: []string{"Random", "Sorted"}, CorrectAnswer: 1, Explanation: "Left, node, right.", Difficulty: qz.DifficultyMedium},
		},
	}
}

func key(s *QuizScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestQuizScreen_LetterSelectsAndEnterSubmits(t *testing.T) {
	s := New(testQuiz(), nil, nil)

	key(s, 'b')
	snap := s.Session().Snapshot()
	if snap.Selected != 1 || snap.State != qz.StateOptionSelected {
		t.Fatalf("after 'b': selected=%d state=%s", snap.Selected, snap.State)
	}

	key(s, tea.KeyEnter)
	snap = s.Session().Snapshot()
	if !snap.Revealed || snap.Answers[0] != 1 {
		t.Fatalf("after enter: revealed=%v answers=%v", snap.Revealed, snap.Answers)
	}

	view := s.View(100, 40)
	for _, want := range []string{"Not quite", "Explanation", "The root is the top.", "Next Question"} {
		if !strings.Contains(view, want) {
			t.Errorf("revealed view missing %q", want)
		}
	}
}

func TestQuizScreen_EnterWithoutSelectionIsNoop(t *testing.T) {
	s := New(testQuiz(), nil, nil)
	key(s, tea.KeyDown)
	key(s, tea.KeyEnter)

	snap := s.Session().Snapshot()
	if snap.Revealed || snap.Answers[0] != qz.NoAnswer {
		t.Fatalf("enter with nothing chosen submitted: revealed=%v answers=%v", snap.Revealed, snap.Answers)
	}

	key(s, tea.KeySpace)
	key(s, tea.KeyEnter)
	snap = s.Session().Snapshot()
	if !snap.Revealed || snap.Answers[0] != 1 {
		t.Fatalf("space then enter: revealed=%v answers=%v", snap.Revealed, snap.Answers)
	}
}

func TestQuizScreen_LetterKeysBeyondI(t *testing.T) {
	opts := make([]string, 12)
	for i := range opts {
		opts[i] = qz.OptionLabel(i)
	}
	q := &qz.Quiz{
		ID: "wide", Title: "Wide",
		Questions: []qz.Question{{ID: "1", Text: "?", Options: opts, CorrectAnswer: 10}},
	}

	tests := []struct {
		key  rune
		want int
	}{
		{'j', 9},
		{'k', 10},
		{'l', 11},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			s := New(q, nil, nil)
			key(s, tt.key)
			if got := s.Session().Snapshot().Selected; got != tt.want {
				t.Errorf("selected = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuizScreen_VimKeysNavigateShortOptionLists(t *testing.T) {
	s := New(testQuiz(), nil, nil)
	key(s, 'j')
	key(s, 'j')
	key(s, 'k')
	if s.cursor != 1 {
		t.Errorf("cursor = %d, want 1", s.cursor)
	}
	if s.Session().Snapshot().Selected != qz.NoAnswer {
		t.Error("navigation should not select")
	}
}

func TestQuizScreen_SelectionIgnoredAfterReveal(t *testing.T) {
	s := New(testQuiz(), nil, nil)
	key(s, 'a')
	key(s, tea.KeyEnter)
	key(s, 'c')

	if got := s.Session().Snapshot().Answers[0]; got != 0 {
		t.Errorf("answer changed after reveal: %d", got)
	}
}

func TestQuizScreen_CompletionSavesAttempt(t *testing.T) {
	repo := &mockEventRepo{}
	s := New(testQuiz(), repo, nil)

	key(s, 'a')
	key(s, tea.KeyEnter)
	if cmd := key(s, tea.KeyEnter); cmd != nil {
		t.Fatal("advancing to question 2 should not save")
	}
	if !strings.Contains(s.View(100, 40), "2/2") {
		t.Error("expected question counter 2/2")
	}

	key(s, 'a')
	key(s, tea.KeyEnter)
	if !strings.Contains(s.View(100, 40), "See Results") {
		t.Error("last question should offer See Results")
	}
	cmd := key(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("completing the quiz should return a save command")
	}
	msg := cmd()
	s.Update(msg)

	if len(repo.attempts) != 1 {
		t.Fatalf("saved %d attempts", len(repo.attempts))
	}
	got := repo.attempts[0]
	if got.QuizID != "q-test" || got.Score != 50 || got.Correct != 1 || got.Total != 2 || !got.Passed {
		t.Errorf("attempt = %+v", got)
	}
	if got.SessionID != s.Session().ID {
		t.Errorf("session id = %q", got.SessionID)
	}

	view := s.View(100, 40)
	for _, want := range []string{"Congratulations!", "You scored 50% (1/2 correct)", "PASSED", "Try Again"} {
		if !strings.Contains(view, want) {
			t.Errorf("result view missing %q", want)
		}
	}
}

func TestQuizScreen_FailedAttempt(t *testing.T) {
	s := New(testQuiz(), nil, nil)
	for _, wrong := range []rune{'3', '1'} {
		key(s, wrong)
		key(s, tea.KeyEnter)
		key(s, tea.KeyEnter)
	}
	res, done := s.Session().Result()
	if !done || res.Passed || res.Score != 0 {
		t.Fatalf("result = %+v done=%v", res, done)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Keep Practicing!") || !strings.Contains(view, "NEEDS REVIEW") {
		t.Error("failed result view missing headline")
	}
}

func TestQuizScreen_SaveError(t *testing.T) {
	repo := &mockEventRepo{err: errors.New("disk full")}
	s := New(&qz.Quiz{
		ID: "one", Title: "One", PassingScore: 50,
		Questions: []qz.Question{{ID: "1", Text: "?", Options: []string{"x", "y"}, CorrectAnswer: 1}},
	}, repo, nil)

	key(s, 'b')
	key(s, tea.KeyEnter)
	cmd := key(s, tea.KeyEnter)
	s.Update(cmd())

	if !strings.Contains(s.View(100, 40), "Could not save") {
		t.Error("expected save error in result view")
	}
}

func TestQuizScreen_TryAgainRestarts(t *testing.T) {
	s := New(testQuiz(), nil, nil)
	firstID := s.Session().ID
	for i := 0; i < 2; i++ {
		key(s, 'a')
		key(s, tea.KeyEnter)
		key(s, tea.KeyEnter)
	}

	key(s, 'r')
	snap := s.Session().Snapshot()
	if snap.Complete || snap.CurrentIndex != 0 || snap.Selected != qz.NoAnswer {
		t.Fatalf("restart snapshot = %+v", snap)
	}
	if s.Session().ID == firstID {
		t.Error("restart should start a new attempt id")
	}
}

func TestQuizScreen_ContinueLearningPops(t *testing.T) {
	s := New(&qz.Quiz{
		ID: "one", Title: "One",
		Questions: []qz.Question{{ID: "1", Text: "?", Options: []string{"x", "y"}}},
	}, nil, nil)
	key(s, 'a')
	key(s, tea.KeyEnter)
	key(s, tea.KeyEnter)

	cmd := key(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
