package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/tracing"
)

// Completer turns a prompt into the model's text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Metered wraps c so every completion is counted, timed and traced.
func Metered(c Completer) Completer {
	return CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		ctx, span := tracing.Start(ctx, "llm.complete", attribute.Int("llm.prompt_chars", len(prompt)))
		defer span.End()

		metrics.IncLLMCall()
		start := time.Now()
		reply, err := c.Complete(ctx, prompt)
		metrics.ObserveLLMDurationMs(metrics.SinceMillis(start))
		if err != nil {
			metrics.IncLLMFailure()
			span.RecordError(err)
			span.SetStatus(codes.Error, "completion failed")
			return reply, err
		}
		span.SetAttributes(attribute.Int("llm.reply_chars", len(reply)))
		return reply, nil
	})
}

// ErrEmptyContent is returned when a provider envelope carries no text block.
var ErrEmptyContent = errors.New("llm response has no text content")

// ErrNotConfigured is returned by the placeholder completer.
var ErrNotConfigured = errors.New("LLM not configured")

// PlaceholderCompleter is used when no provider key is configured.
type PlaceholderCompleter struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// ContentBlock is one element of the provider's content array.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Usage reports token counts.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Envelope is the provider's message response. Only the fields this service reads are typed.
type Envelope struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
	Usage      *Usage         `json:"usage,omitempty"`
}

// FirstText returns content[0].text from a raw envelope.
func FirstText(envelope []byte) (string, error) {
	var env Envelope
	if err := json.Unmarshal(envelope, &env); err != nil {
		return "", fmt.Errorf("llm response parse: %w", err)
	}
	if len(env.Content) == 0 || env.Content[0].Text == "" {
		return "", ErrEmptyContent
	}
	return env.Content[0].Text, nil
}
