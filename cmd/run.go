package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studynav/internal/app"
	"github.com/abhisek/studynav/internal/catalog"
	"github.com/abhisek/studynav/internal/chat"
	"github.com/abhisek/studynav/internal/llm"
	"github.com/abhisek/studynav/internal/quiz"
	"github.com/abhisek/studynav/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	return launch(cmd, nil)
}

// launch starts the TUI, directly on startQuiz when it is set.
func launch(cmd *cobra.Command, startQuiz *quiz.Quiz) error {
	ctx := cmd.Context()

	cat, err := catalog.LoadFile(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	return app.Run(app.Options{
		Catalog:    cat,
		EventRepo:  eventRepo,
		Copilot:    newCopilot(ctx, eventRepo, cfg.Chat.ReplyDelay),
		UploadTick: cfg.Upload.Tick,
		StartQuiz:  startQuiz,
		Logger:     logger,
	})
}

// newCopilot wires the configured LLM behind the copilot, or the canned
// templates when none is configured or it fails to start.
func newCopilot(ctx context.Context, rec store.EventRepo, delay time.Duration) *chat.Copilot {
	opts := chat.Options{ReplyDelay: delay, Logger: logger}

	llmCfg, ok := cfg.ResolveLLM()
	if !ok {
		logger.Info("copilot using canned replies")
		return chat.New(opts)
	}

	provider, err := llm.NewProvider(ctx, llmCfg, rec, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The copilot will use canned replies.")
		logger.WithError(err).Warn("llm provider unavailable")
		return chat.New(opts)
	}

	opts.Responder = chat.NewLLMResponder(provider, chat.LLMConfig{
		MaxTokens:   cfg.Chat.MaxTokens,
		Temperature: cfg.Chat.Temperature,
		MaxHistory:  cfg.Chat.MaxHistory,
	}, logger)
	logger.WithField("model", provider.ModelID()).Info("copilot using llm")
	return chat.New(opts)
}
