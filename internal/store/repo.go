package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// QuizAttemptData is one finished quiz.
type QuizAttemptData struct {
	SessionID string
	QuizID    string
	QuizTitle string
	Score     int
	Correct   int
	Total     int
	Passed    bool
	Duration  time.Duration
}

// QuizAttemptRecord is a stored quiz attempt.
type QuizAttemptRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizAttemptData
}

// QuizSummary aggregates all stored attempts.
type QuizSummary struct {
	Attempts  int
	Passed    int
	AvgScore  int
	BestScore int
}

// PassRate returns passed attempts as a percentage, 0 with no attempts.
func (s QuizSummary) PassRate() int {
	if s.Attempts == 0 {
		return 0
	}
	return (200*s.Passed + s.Attempts) / (2 * s.Attempts)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates token usage per purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the study history.
type EventRepo interface {
	// AppendQuizAttempt records a finished quiz.
	AppendQuizAttempt(ctx context.Context, data QuizAttemptData) error

	// QueryQuizAttempts returns attempts newest first.
	QueryQuizAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptRecord, error)

	// QuizSummary aggregates every stored attempt.
	QuizSummary(ctx context.Context) (QuizSummary, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
