package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/studynav/internal/store"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	first, err := mock.Generate(context.Background(), Request{System: "sys"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"a":1}` || first.Usage.InputTokens != 10 || first.StopReason != StopEnd {
		t.Fatalf("first = %+v", first)
	}
	second, _ := mock.Generate(context.Background(), Request{})
	if string(second.Content) != `{"b":2}` {
		t.Fatalf("second = %s", second.Content)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable once exhausted, got %T", err)
	}
	if mock.CallCount() != 3 || mock.Calls[0].System != "sys" {
		t.Fatalf("calls = %+v", mock.Calls)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "copilot")); p != "copilot" {
		t.Fatalf("expected 'copilot', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, "STUDYNAV_LLM_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}}, ""},
		{"openai without key", Config{Provider: "openai"}, "STUDYNAV_LLM_OPENAI_API_KEY"},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, ""},
		{"openrouter without key", Config{Provider: "openrouter"}, "STUDYNAV_LLM_OPENROUTER_API_KEY"},
		{"mock needs no key", Config{Provider: "mock"}, ""},
		{"unknown provider", Config{Provider: "llama"}, "unknown LLM provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, env := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("cfg = %+v, ok = %v", cfg, ok)
	}

	t.Setenv("GEMINI_API_KEY", "g")
	cfg, _ = DiscoverConfig()
	if cfg.Provider != "gemini" {
		t.Fatalf("Gemini should take priority, got %q", cfg.Provider)
	}
}

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccessAndFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"answer":"ok"}`), Usage: Usage{InputTokens: 12, OutputTokens: 3}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)
	rec := &recordingRepo{}
	p := WithLogging(mock, "mock", rec, nil)
	ctx := WithPurpose(context.Background(), "copilot")

	req := Request{
		System:   "Be brief.",
		Messages: []Message{{Role: RoleUser, Content: "What is a heap?"}},
		Schema:   citedAnswerSchema(),
	}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected second call to fail")
	}

	if len(rec.events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(rec.events))
	}
	ok, failed := rec.events[0], rec.events[1]
	if !ok.Success || ok.Purpose != "copilot" || ok.InputTokens != 12 || ok.ResponseBody != `{"answer":"ok"}` {
		t.Errorf("success event = %+v", ok)
	}
	for _, want := range []string{"[system]", "Be brief.", "[user]", "What is a heap?", "[schema: test-cited-answer]"} {
		if !strings.Contains(ok.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ok.RequestBody)
		}
	}
	if failed.Success || !strings.Contains(failed.ErrorMessage, "slow down") {
		t.Errorf("failure event = %+v", failed)
	}
}

func TestLoggingProvider_RecorderErrorDoesNotFailCall(t *testing.T) {
	mock := NewMockProvider(okResponse())
	p := WithLogging(mock, "mock", &recordingRepo{err: errors.New("disk full")}, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoggingProvider_NilRecorder(t *testing.T) {
	p := WithLogging(NewMockProvider(okResponse()), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if p.ModelID() != "blocking" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	inner := NewMockProvider()
	if WithTimeout(inner, 0) != Provider(inner) {
		t.Error("zero timeout should return the provider unchanged")
	}
}

func TestNewProvider(t *testing.T) {
	rec := &recordingRepo{}
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	p, err := NewProvider(context.Background(), cfg, rec, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
	// The empty mock fails every attempt; each attempt is recorded.
	cfg.Retry.InitialWait, cfg.Retry.MaxWait = time.Millisecond, time.Millisecond
	p, _ = NewProvider(context.Background(), cfg, rec, nil)
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error from empty mock")
	}
	if len(rec.events) != cfg.Retry.MaxAttempts {
		t.Errorf("recorded %d events, want %d", len(rec.events), cfg.Retry.MaxAttempts)
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "openai"}, nil, nil); err == nil {
		t.Error("expected missing key to fail")
	}
}
