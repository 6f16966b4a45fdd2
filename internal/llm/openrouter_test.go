package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("model ids pass through", func(t *testing.T) {
		for _, model := range []string{"google/gemini-2.0-flash-exp", "gpt-4o", "anthropic/claude-3-haiku"} {
			p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: model})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != model {
				t.Errorf("ModelID = %q, want %q", p.ModelID(), model)
			}
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("satisfies Provider", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey:  "sk-or-test",
			Model:   "google/gemini-2.0-flash-exp",
			BaseURL: "https://custom.openrouter.example/v1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var _ Provider = p
	})
}
