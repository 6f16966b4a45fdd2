package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Source is a citation attached to an assistant reply.
type Source struct {
	Title     string  `json:"title"`
	Page      int     `json:"page,omitempty"` // 0 when the source has no page
	Relevance float64 `json:"relevance"`      // 0..1
}

// Message is one immutable transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []Source  `json:"sources,omitempty"`
}

// NewMessage stamps a message with a fresh ID and the current time.
func NewMessage(role Role, content string, sources []Source) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Sources:   sources,
	}
}

// DefaultSources returns the citations attached to every canned reply.
func DefaultSources() []Source {
	return []Source{
		{Title: "Chapter 5: Tree Fundamentals", Page: 42, Relevance: 0.92},
		{Title: "Lecture 8 Slides", Page: 15, Relevance: 0.85},
	}
}

// Transcript is an append-only message log, safe for concurrent use.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

// NewTranscript seeds a transcript with history.
func NewTranscript(history ...Message) *Transcript {
	t := &Transcript{}
	t.messages = append(t.messages, history...)
	return t
}

// Append adds m to the end of the log.
func (t *Transcript) Append(m Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, m)
}

// Messages returns a copy of the log.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// UserTurns counts messages written by the learner.
func (t *Transcript) UserTurns() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, m := range t.messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}
