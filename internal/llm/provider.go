// Package llm is a small provider-neutral client for structured LLM calls.
// Every provider returns JSON validated against the request's schema, and
// middleware adds retries, timeouts and request recording.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a response for a Request.
type Provider interface {
	// Generate sends the request and returns the model's output. When the
	// request carries a Schema, Content is JSON that validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	System string

	// Messages is the conversation so far, oldest first. The copilot sends
	// a windowed transcript ending in the learner's question.
	Messages []Message

	// Schema, when set, asks the provider for JSON matching it using the
	// provider's native structured output mechanism.
	Schema *Schema

	// MaxTokens caps the response. Zero means DefaultMaxTokens.
	MaxTokens int

	// Temperature in 0.0 - 1.0. Zero leaves the provider default.
	Temperature float64
}

// DefaultMaxTokens applies when a Request leaves MaxTokens unset.
const DefaultMaxTokens = 1024

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is kebab-case, e.g. "copilot-reply". It doubles as the cache key
	// for the compiled validator, so distinct definitions need distinct names.
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Response struct {
	// Content is the validated JSON object for schema requests, or the raw
	// text otherwise.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish turns raw provider output into a Response. Truncated structured
// output is reported as ErrMaxTokensExceeded since it cannot be valid JSON
// in general; everything else is checked against the schema.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if req.Schema != nil && stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so full IDs can be configured directly.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
