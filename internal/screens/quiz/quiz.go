package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	qz "github.com/abhisek/studynav/internal/quiz"
	"github.com/abhisek/studynav/internal/router"
	"github.com/abhisek/studynav/internal/screen"
	"github.com/abhisek/studynav/internal/store"
	"github.com/abhisek/studynav/internal/ui/layout"
)

// QuizScreen hosts one quiz session: question, options, explanation and
// finally the result view. Finished attempts are appended to the store.
type QuizScreen struct {
	session *qz.Session
	repo    store.EventRepo
	log     logrus.FieldLogger
	cursor  int
	saveErr string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over q. repo and log may be nil.
func New(q *qz.Quiz, repo store.EventRepo, log logrus.FieldLogger) *QuizScreen {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &QuizScreen{
		session: qz.NewSession(q),
		repo:    repo,
		log:     log.WithField("component", "quiz"),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.log.WithFields(logrus.Fields{
		"session_id": s.session.ID,
		"quiz_id":    s.session.Quiz().ID,
	}).Info("quiz started")
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Session exposes the underlying engine state.
func (s *QuizScreen) Session() *qz.Session {
	return s.session
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	snap := s.session.Snapshot()
	switch {
	case snap.Complete:
		return []layout.KeyHint{
			{Key: "R", Description: "Try Again"},
			{Key: "Enter", Description: "Continue Learning"},
		}
	case snap.Revealed:
		label := "Next Question"
		if snap.IsLast() {
			label = "See Results"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Space/A-D", Description: "Choose"},
			{Key: "Enter", Description: "Submit Answer"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptSavedMsg:
		if msg.Err != nil {
			s.saveErr = "Could not save this attempt."
			s.log.WithError(msg.Err).WithField("session_id", msg.SessionID).Error("save quiz attempt")
		}
		return s, nil

	case tea.KeyMsg:
		if s.session.Snapshot().Complete {
			return s.handleResultKey(msg)
		}
		return s.handleQuestionKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	snap := s.session.Snapshot()
	key := msg.String()

	if snap.Revealed {
		if key == "enter" {
			return s, s.advance()
		}
		return s, nil
	}

	n := len(snap.Question.Options)
	// A letter naming a rendered option wins over j/k navigation.
	if idx, ok := optionKey(key); ok && idx < n {
		s.cursor = idx
		s.session.SelectOption(idx)
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < n-1 {
			s.cursor++
		}
	case "space":
		s.session.SelectOption(s.cursor)
	case "enter":
		s.session.SubmitAnswer()
	}
	return s, nil
}

func (s *QuizScreen) handleResultKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "r":
		s.session.Restart()
		s.cursor = 0
		s.saveErr = ""
		s.log.WithField("session_id", s.session.ID).Info("quiz restarted")
	case "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// advance moves past a revealed question. When that completes the quiz it
// returns the command that records the attempt.
func (s *QuizScreen) advance() tea.Cmd {
	if err := s.session.Advance(); err != nil {
		s.log.WithError(err).Warn("advance rejected")
		return nil
	}
	s.cursor = 0

	res, done := s.session.Result()
	if !done {
		return nil
	}

	q := s.session.Quiz()
	data := store.QuizAttemptData{
		SessionID: s.session.ID,
		QuizID:    q.ID,
		QuizTitle: q.Title,
		Score:     res.Score,
		Correct:   res.Correct,
		Total:     res.Total,
		Passed:    res.Passed,
		Duration:  time.Since(s.session.StartedAt),
	}
	s.log.WithFields(logrus.Fields{
		"session_id": data.SessionID,
		"quiz_id":    data.QuizID,
		"score":      data.Score,
		"passed":     data.Passed,
	}).Info("quiz completed")

	if s.repo == nil {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		err := repo.AppendQuizAttempt(context.Background(), data)
		return attemptSavedMsg{SessionID: data.SessionID, Err: err}
	}
}

// optionKey maps a-z and 1-9 to option indexes.
func optionKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	}
	return 0, false
}
