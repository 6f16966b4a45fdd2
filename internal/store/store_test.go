package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// A per-test file keeps parallel tests from sharing one in-memory cache.
	s, err := Open(filepath.Join(t.TempDir(), "studynav.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open("file::memory:?cache=shared")
	require.NoError(t, err)
	defer s.Close()
	require.NotNil(t, s.DB())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studynav.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendQuizAttempt(context.Background(), QuizAttemptData{QuizID: "q"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	attempts, err := s.EventRepo().QueryQuizAttempts(context.Background(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSequenceCounterConcurrent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const n = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool, n)
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := s.seq.Next(ctx)
			if err != nil {
				t.Errorf("next: %v", err)
				return
			}
			mu.Lock()
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n, "every sequence number should be unique")
}

func TestQuizAttempts_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, score := range []int{40, 80, 100} {
		require.NoError(t, repo.AppendQuizAttempt(ctx, QuizAttemptData{
			SessionID: fmt.Sprintf("s%d", i),
			QuizID:    "quiz-trees-bst",
			QuizTitle: "Trees & Binary Search Trees",
			Score:     score,
			Correct:   score / 20,
			Total:     5,
			Passed:    score >= 70,
			Duration:  90 * time.Second,
		}))
	}

	attempts, err := repo.QueryQuizAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 3)

	// Newest first.
	assert.Equal(t, 100, attempts[0].Score)
	assert.Equal(t, "s2", attempts[0].SessionID)
	assert.True(t, attempts[0].Passed)
	assert.Equal(t, 90*time.Second, attempts[0].Duration)
	assert.Greater(t, attempts[0].Sequence, attempts[1].Sequence)
	assert.WithinDuration(t, time.Now(), attempts[0].Timestamp, time.Minute)

	limited, err := repo.QueryQuizAttempts(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	after, err := repo.QueryQuizAttempts(ctx, QueryOpts{After: attempts[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "s2", after[0].SessionID)

	future, err := repo.QueryQuizAttempts(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestQuizSummary(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	empty, err := repo.QuizSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, QuizSummary{}, empty)
	assert.Equal(t, 0, empty.PassRate())

	for _, score := range []int{40, 80, 100} {
		require.NoError(t, repo.AppendQuizAttempt(ctx, QuizAttemptData{
			QuizID: "q", Score: score, Passed: score >= 70,
		}))
	}

	sum, err := repo.QuizSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Attempts)
	assert.Equal(t, 2, sum.Passed)
	assert.Equal(t, 73, sum.AvgScore)
	assert.Equal(t, 100, sum.BestScore)
	assert.Equal(t, 67, sum.PassRate())
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "copilot",
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    800,
		Success:      true,
		RequestBody:  `{"messages":[]}`,
		ResponseBody: `{"answer":"ok"}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "copilot",
		LatencyMs:    200,
		Success:      false,
		ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.False(t, events[0].Success)
	assert.Equal(t, "rate limited", events[0].ErrorMessage)

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"answer":"ok"}`, got.ResponseBody)
	assert.Equal(t, 120, got.InputTokens)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	calls := []LLMRequestEventData{
		{Model: "gpt-4o", Purpose: "copilot", InputTokens: 100, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Model: "gpt-4o", Purpose: "copilot", InputTokens: 50, OutputTokens: 20, LatencyMs: 300, Success: true},
		{Model: "gpt-4o-mini", Purpose: "summary", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
		{Model: "gpt-4o-mini", Purpose: "summary", LatencyMs: 10, Success: false},
	}
	for _, c := range calls {
		require.NoError(t, repo.AppendLLMRequest(ctx, c))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsageStats{Purpose: "copilot", Calls: 2, InputTokens: 150, OutputTokens: 30, AvgLatencyMs: 200}, byPurpose[0])
	assert.Equal(t, 2, byPurpose[1].Calls)
	assert.Equal(t, int64(30), byPurpose[1].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, LLMModelUsage{Model: "gpt-4o-mini", Calls: 1, InputTokens: 10, OutputTokens: 5}, byModel[1])
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("STUDYNAV_DB", filepath.Join(dir, "custom", "history.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom", "history.db"), p)
	assert.DirExists(t, filepath.Join(dir, "custom"))

	t.Setenv("STUDYNAV_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "studynav", "studynav.db"), p)
}
