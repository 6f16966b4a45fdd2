package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// NoAnswer marks an unanswered slot or an empty selection.
const NoAnswer = -1

var (
	// ErrNotRevealed is returned by Advance before the current answer is submitted.
	ErrNotRevealed = errors.New("quiz: advance before answer was revealed")

	// ErrComplete is returned by Advance once the session has been scored.
	ErrComplete = errors.New("quiz: session already complete")
)

// State is the observable phase of a session.
type State int

const (
	StateAnswering      State = iota // No option chosen for the current question
	StateOptionSelected              // Option chosen, not yet submitted
	StateRevealed                    // Answer submitted, explanation visible
	StateComplete                    // All questions answered and scored
)

func (s State) String() string {
	switch s {
	case StateAnswering:
		return "answering"
	case StateOptionSelected:
		return "option-selected"
	case StateRevealed:
		return "revealed"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Result is the outcome of a completed session.
type Result struct {
	Score   int // 0..100
	Correct int
	Total   int
	Passed  bool
}

// Snapshot is a read-only copy of session state for rendering.
type Snapshot struct {
	State        State
	CurrentIndex int
	Total        int
	Question     Question
	Answers      []int
	Selected     int
	Revealed     bool
	Complete     bool
}

// Answered reports whether the current question has been submitted.
func (s Snapshot) Answered() bool {
	return s.Answers[s.CurrentIndex] != NoAnswer
}

// IsLast reports whether the current question is the final one.
func (s Snapshot) IsLast() bool {
	return s.CurrentIndex == s.Total-1
}

// Session drives a learner through one quiz. It is not safe for concurrent
// use; the owning view serializes calls.
type Session struct {
	ID        string
	StartedAt time.Time

	quiz     *Quiz
	current  int
	answers  []int
	selected int
	revealed bool
	complete bool
	result   Result
}

// NewSession starts a session over q. The quiz must have at least one
// question; use Validate for untrusted input.
func NewSession(q *Quiz) *Session {
	s := &Session{quiz: q}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.ID = uuid.New().String()
	s.StartedAt = time.Now()
	s.current = 0
	s.answers = make([]int, len(s.quiz.Questions))
	for i := range s.answers {
		s.answers[i] = NoAnswer
	}
	s.selected = NoAnswer
	s.revealed = false
	s.complete = false
	s.result = Result{}
}

// Quiz returns the quiz this session runs over.
func (s *Session) Quiz() *Quiz {
	return s.quiz
}

// State returns the current phase.
func (s *Session) State() State {
	switch {
	case s.complete:
		return StateComplete
	case s.revealed:
		return StateRevealed
	case s.selected != NoAnswer:
		return StateOptionSelected
	default:
		return StateAnswering
	}
}

// CurrentIndex returns the zero-based index of the active question.
func (s *Session) CurrentIndex() int {
	return s.current
}

// Current returns the active question.
func (s *Session) Current() Question {
	return s.quiz.Questions[s.current]
}

// SelectOption marks index as the pending choice. Ignored after reveal,
// after completion, or when index is out of range.
func (s *Session) SelectOption(index int) {
	if s.complete || s.revealed {
		return
	}
	if index < 0 || index >= len(s.Current().Options) {
		return
	}
	s.selected = index
}

// SubmitAnswer commits the pending choice and reveals correctness. No-op
// when nothing is selected.
func (s *Session) SubmitAnswer() {
	if s.complete || s.revealed || s.selected == NoAnswer {
		return
	}
	s.answers[s.current] = s.selected
	s.revealed = true
}

// Advance moves to the next question, or scores the session when the
// current question is the last one.
func (s *Session) Advance() error {
	if s.complete {
		return ErrComplete
	}
	if !s.revealed {
		return ErrNotRevealed
	}

	if s.current < len(s.quiz.Questions)-1 {
		s.current++
		s.selected = NoAnswer
		s.revealed = false
		return nil
	}

	s.result = score(s.quiz, s.answers)
	s.complete = true
	return nil
}

// Restart returns the session to its initial state with the same quiz.
func (s *Session) Restart() {
	s.reset()
}

// Result returns the score once the session is complete.
func (s *Session) Result() (Result, bool) {
	return s.result, s.complete
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	answers := make([]int, len(s.answers))
	copy(answers, s.answers)
	return Snapshot{
		State:        s.State(),
		CurrentIndex: s.current,
		Total:        len(s.quiz.Questions),
		Question:     s.Current(),
		Answers:      answers,
		Selected:     s.selected,
		Revealed:     s.revealed,
		Complete:     s.complete,
	}
}

// score counts matching answers and rounds the percentage half up.
func score(q *Quiz, answers []int) Result {
	total := len(q.Questions)
	correct := 0
	for i, question := range q.Questions {
		if question.IsCorrect(answers[i]) {
			correct++
		}
	}
	return Result{
		Score:   Percent(correct, total),
		Correct: correct,
		Total:   total,
		Passed:  Percent(correct, total) >= q.PassingScore,
	}
}

// Percent returns round_half_up(100*part/whole) using integer arithmetic.
// A zero whole yields 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}
