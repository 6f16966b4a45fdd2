package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/studynav/internal/llm"
)

// ReplySchema constrains the structured answer requested from the model.
var ReplySchema = &llm.Schema{
	Name:        "copilot-reply",
	Description: "A study copilot answer grounded in the learner's course materials",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{
				"type":        "string",
				"description": "Answer in plain text or light markdown, under 200 words",
			},
			"sources": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Course material the answer draws on",
						},
						"page": map[string]any{
							"type":        "integer",
							"description": "Page or slide number, 0 if not applicable",
						},
						"relevance": map[string]any{
							"type":        "number",
							"description": "How relevant the source is, between 0 and 1",
						},
					},
					"required":             []any{"title", "page", "relevance"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"answer", "sources"},
		"additionalProperties": false,
	},
}

const copilotSystemPrompt = `You are a study copilot for a university student taking Data Structures.
The current module covers Trees and Binary Search Trees.
Answer the student's question concisely and accurately, then offer a next step
such as a practice quiz or a short study plan. Cite course materials by title
(for example "Chapter 5: Tree Fundamentals" or "Lecture 8 Slides").`

// LLMConfig tunes LLMResponder requests.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
	MaxHistory  int // most recent messages sent as context
}

// DefaultLLMConfig returns sensible defaults.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{MaxTokens: 1024, Temperature: 0.3, MaxHistory: 10}
}

// LLMResponder answers through an llm.Provider and falls back to the
// canned templates when the provider fails.
type LLMResponder struct {
	provider llm.Provider
	cfg      LLMConfig
	log      logrus.FieldLogger
}

// NewLLMResponder creates a responder backed by provider.
func NewLLMResponder(provider llm.Provider, cfg LLMConfig, log logrus.FieldLogger) *LLMResponder {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &LLMResponder{provider: provider, cfg: cfg, log: log}
}

type replyOutput struct {
	Answer  string         `json:"answer"`
	Sources []sourceOutput `json:"sources"`
}

type sourceOutput struct {
	Title     string  `json:"title"`
	Page      int     `json:"page"`
	Relevance float64 `json:"relevance"`
}

func (r *LLMResponder) Respond(ctx context.Context, input string, history []Message) (Reply, error) {
	reply, err := r.generate(ctx, input, history)
	if err != nil {
		r.log.WithError(err).WithField("model", r.provider.ModelID()).
			Warn("copilot generation failed, falling back to canned reply")
		return CannedResponder{}.Respond(ctx, input, history)
	}
	return reply, nil
}

func (r *LLMResponder) generate(ctx context.Context, input string, history []Message) (Reply, error) {
	ctx = llm.WithPurpose(ctx, "copilot")

	req := llm.Request{
		System:      copilotSystemPrompt,
		Messages:    buildMessages(input, history, r.cfg.MaxHistory),
		Schema:      ReplySchema,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return Reply{}, fmt.Errorf("copilot generation: %w", err)
	}

	var out replyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Reply{}, fmt.Errorf("parse copilot response: %w", err)
	}
	if strings.TrimSpace(out.Answer) == "" {
		return Reply{}, fmt.Errorf("copilot response has empty answer")
	}

	sources := make([]Source, 0, len(out.Sources))
	for _, s := range out.Sources {
		sources = append(sources, Source{
			Title:     s.Title,
			Page:      max(s.Page, 0),
			Relevance: min(max(s.Relevance, 0), 1),
		})
	}
	return Reply{Content: out.Answer, Sources: sources}, nil
}

// buildMessages converts the trailing window of history into provider
// messages, making sure input is the final user turn.
func buildMessages(input string, history []Message, window int) []llm.Message {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == RoleAssistant {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}

	// Providers reject conversations that open with the assistant.
	for len(msgs) > 0 && msgs[0].Role == llm.RoleAssistant {
		msgs = msgs[1:]
	}

	if n := len(msgs); n == 0 || msgs[n-1].Role != llm.RoleUser || msgs[n-1].Content != input {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: input})
	}
	return msgs
}
