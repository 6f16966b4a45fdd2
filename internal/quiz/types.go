package quiz

// Difficulty tags a question for display. The engine never reads it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Label returns a capitalized label for the difficulty badge.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// Question is a single multiple-choice item.
type Question struct {
	ID            string     `json:"id" validate:"required"`
	Text          string     `json:"question" validate:"required"`
	Options       []string   `json:"options" validate:"min=2,dive,required"`
	CorrectAnswer int        `json:"correctAnswer" validate:"gte=0"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// IsCorrect reports whether option index answers the question correctly.
func (q Question) IsCorrect(index int) bool {
	return index == q.CorrectAnswer
}

// Quiz is an ordered list of questions with a pass threshold.
type Quiz struct {
	ID        string     `json:"id" validate:"required"`
	TopicID   string     `json:"topicId"`
	Title     string     `json:"title" validate:"required"`
	Questions []Question `json:"questions" validate:"min=1,dive"`

	// TimeLimit is in minutes and shown to the learner only.
	TimeLimit int `json:"timeLimit,omitempty" validate:"gte=0"`

	// PassingScore is a percentage in [0, 100].
	PassingScore int `json:"passingScore" validate:"gte=0,lte=100"`
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	return len(q.Questions)
}

// OptionLabel returns the letter shown next to option i ("A", "B", ...).
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}
