package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/studynav/internal/store"
)

// Recorder persists one LLM call. store.EventRepo satisfies it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every call made through it, successful or not.
type LoggingProvider struct {
	inner    Provider
	provider string
	rec      Recorder
	log      logrus.FieldLogger
}

// WithLogging wraps p so each call is written to rec and logged at debug
// level. Either sink may be nil.
func WithLogging(p Provider, provider string, rec Recorder, log logrus.FieldLogger) Provider {
	return &LoggingProvider{inner: p, provider: provider, rec: rec, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	if l.log != nil {
		entry := l.log.WithFields(logrus.Fields{
			"provider":   data.Provider,
			"model":      data.Model,
			"purpose":    data.Purpose,
			"latency_ms": data.LatencyMs,
			"in_tokens":  data.InputTokens,
			"out_tokens": data.OutputTokens,
		})
		if err != nil {
			entry.WithError(err).Warn("llm request failed")
		} else {
			entry.Debug("llm request")
		}
	}

	// A failed write must not fail the request.
	if l.rec != nil {
		if recErr := l.rec.AppendLLMRequest(context.WithoutCancel(ctx), data); recErr != nil && l.log != nil {
			l.log.WithError(recErr).Warn("record llm request")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders the request for `studynav llm view`.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
