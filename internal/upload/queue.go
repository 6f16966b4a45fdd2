package upload

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Queue holds files moving through the simulated pipeline. It is safe for
// concurrent use.
type Queue struct {
	mu    sync.Mutex
	files []File
	now   func() time.Time
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// Add enqueues f with a fresh ID and returns the stored copy. Files already
// marked StatusError keep that status.
func (q *Queue) Add(f File) File {
	q.mu.Lock()
	defer q.mu.Unlock()

	f.ID = uuid.New().String()[:8]
	f.AddedAt = q.now()
	if f.Status != StatusError {
		f.Status = StatusUploading
		f.Progress = 0
	}
	q.files = append(q.files, f)
	return f
}

// Remove drops the file with id. It reports whether a file was removed.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, f := range q.files {
		if f.ID == id {
			q.files = append(q.files[:i], q.files[i+1:]...)
			return true
		}
	}
	return false
}

// Files returns a copy of the queue in insertion order.
func (q *Queue) Files() []File {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]File, len(q.files))
	copy(out, q.files)
	return out
}

// Len returns the number of queued files.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.files)
}

// Advance recomputes every in-flight file against now and reports whether
// anything changed.
func (q *Queue) Advance(now time.Time) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	changed := false
	for i := range q.files {
		f := &q.files[i]
		if f.Done() {
			continue
		}
		status, progress := StatusAt(now.Sub(f.AddedAt))
		if status != f.Status || progress != f.Progress {
			f.Status = status
			f.Progress = progress
			changed = true
		}
	}
	return changed
}

// Done reports whether every file has reached a terminal status.
func (q *Queue) Done() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, f := range q.files {
		if !f.Done() {
			return false
		}
	}
	return true
}

// Counts tallies files by status.
func (q *Queue) Counts() map[Status]int {
	q.mu.Lock()
	defer q.mu.Unlock()
	counts := make(map[Status]int, 4)
	for _, f := range q.files {
		counts[f.Status]++
	}
	return counts
}

// Simulate advances q every interval until all files are done or ctx is
// canceled. onChange, when set, receives a snapshot after each change.
func Simulate(ctx context.Context, q *Queue, interval time.Duration, onChange func([]File)) error {
	if interval <= 0 {
		interval = ProgressInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !q.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if q.Advance(now) && onChange != nil {
				onChange(q.Files())
			}
		}
	}
	return nil
}
