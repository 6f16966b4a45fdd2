package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultReplyDelay is how long the copilot "thinks" before answering.
const DefaultReplyDelay = 1500 * time.Millisecond

var (
	// ErrEmptyMessage is returned when the trimmed input is empty.
	ErrEmptyMessage = errors.New("chat: empty message")

	// ErrReplyPending is returned when a send arrives while a reply is outstanding.
	ErrReplyPending = errors.New("chat: reply already pending")

	// ErrNothingPending is returned by Reply when no user message is waiting.
	ErrNothingPending = errors.New("chat: no message awaiting reply")
)

// Reply is a responder's answer to one learner turn.
type Reply struct {
	Content string
	Sources []Source
}

// Responder produces the assistant reply for input given prior history.
type Responder interface {
	Respond(ctx context.Context, input string, history []Message) (Reply, error)
}

// CannedResponder answers from the fixed keyword templates.
type CannedResponder struct{}

func (CannedResponder) Respond(_ context.Context, input string, _ []Message) (Reply, error) {
	return Reply{Content: SelectResponse(input), Sources: DefaultSources()}, nil
}

// Options configures a Copilot.
type Options struct {
	Responder  Responder     // defaults to CannedResponder
	ReplyDelay time.Duration // defaults to DefaultReplyDelay; negative disables
	History    []Message
	Logger     logrus.FieldLogger
}

// Copilot owns one transcript and serializes learner turns through it:
// at most one reply is outstanding at a time.
type Copilot struct {
	transcript *Transcript
	responder  Responder
	delay      time.Duration
	log        logrus.FieldLogger

	mu       sync.Mutex
	pending  string
	waiting  bool
	replying bool
}

// New creates a Copilot.
func New(opts Options) *Copilot {
	if opts.Responder == nil {
		opts.Responder = CannedResponder{}
	}
	switch {
	case opts.ReplyDelay == 0:
		opts.ReplyDelay = DefaultReplyDelay
	case opts.ReplyDelay < 0:
		opts.ReplyDelay = 0
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	return &Copilot{
		transcript: NewTranscript(opts.History...),
		responder:  opts.Responder,
		delay:      opts.ReplyDelay,
		log:        opts.Logger,
	}
}

// Transcript returns the log this copilot appends to.
func (c *Copilot) Transcript() *Transcript {
	return c.transcript
}

// Waiting reports whether a reply is outstanding.
func (c *Copilot) Waiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiting
}

// Submit records a learner turn. The reply is produced by a later call to Reply.
func (c *Copilot) Submit(input string) (Message, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.waiting {
		return Message{}, ErrReplyPending
	}

	m := NewMessage(RoleUser, input, nil)
	c.transcript.Append(m)
	c.pending = input
	c.waiting = true
	return m, nil
}

// Reply waits out the reply delay and appends exactly one assistant message
// for the pending turn. Canceling ctx during the wait abandons the reply.
func (c *Copilot) Reply(ctx context.Context) (Message, error) {
	c.mu.Lock()
	if !c.waiting {
		c.mu.Unlock()
		return Message{}, ErrNothingPending
	}
	if c.replying {
		c.mu.Unlock()
		return Message{}, ErrReplyPending
	}
	c.replying = true
	input := c.pending
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.pending = ""
		c.waiting = false
		c.replying = false
		c.mu.Unlock()
	}()

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Message{}, ctx.Err()
		case <-timer.C:
		}
	}

	history := c.transcript.Messages()
	reply, err := c.responder.Respond(ctx, input, history)
	if err != nil {
		c.log.WithError(err).Warn("copilot responder failed, using canned reply")
		reply, _ = CannedResponder{}.Respond(ctx, input, history)
	}

	m := NewMessage(RoleAssistant, reply.Content, reply.Sources)
	c.transcript.Append(m)
	c.log.WithFields(logrus.Fields{
		"intent":  string(Classify(input)),
		"sources": len(reply.Sources),
	}).Debug("copilot replied")
	return m, nil
}

// Send submits input and blocks for the reply.
func (c *Copilot) Send(ctx context.Context, input string) (Message, error) {
	if _, err := c.Submit(input); err != nil {
		return Message{}, err
	}
	return c.Reply(ctx)
}
