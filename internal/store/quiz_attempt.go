package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var quizAttemptColumns = []string{
	"session_id", "quiz_id", "quiz_title", "score", "correct", "total", "passed", "duration_ms",
}

func (r *eventRepo) AppendQuizAttempt(ctx context.Context, data QuizAttemptData) error {
	err := r.insert(ctx, quizAttemptsTable, quizAttemptColumns, []any{
		data.SessionID,
		data.QuizID,
		data.QuizTitle,
		data.Score,
		data.Correct,
		data.Total,
		data.Passed,
		data.Duration.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptRecord, error) {
	query, args := selectEvents(quizAttemptsTable, opts, quizAttemptColumns...).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer rows.Close()

	var out []QuizAttemptRecord
	for rows.Next() {
		var (
			rec       QuizAttemptRecord
			ts, durMs int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts,
			&rec.SessionID, &rec.QuizID, &rec.QuizTitle,
			&rec.Score, &rec.Correct, &rec.Total, &rec.Passed, &durMs,
		); err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		rec.Duration = msDuration(durMs)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) QuizSummary(ctx context.Context) (QuizSummary, error) {
	query, args := builder().
		Select(
			entsql.Count("*"),
			"COALESCE("+entsql.Sum("passed")+", 0)",
			"COALESCE("+entsql.Avg("score")+", 0)",
			"COALESCE("+entsql.Max("score")+", 0)",
		).
		From(entsql.Table(quizAttemptsTable)).
		Query()

	var (
		s   QuizSummary
		avg float64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.Attempts, &s.Passed, &avg, &s.BestScore); err != nil {
		return QuizSummary{}, fmt.Errorf("summarize quiz attempts: %w", err)
	}
	s.AvgScore = int(avg + 0.5)
	return s, nil
}
