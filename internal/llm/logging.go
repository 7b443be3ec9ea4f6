package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LoggingProvider is a decorator that records every LLM request:
// request size, elapsed time, token counts, and outcome.
type LoggingProvider struct {
	inner Provider
	log   zerolog.Logger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, log zerolog.Logger) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	docBytes := 0
	if req.Document != nil {
		docBytes = len(req.Document.Data)
	}

	resp, err := l.inner.Generate(ctx, req)

	evt := l.log.Info()
	if err != nil {
		evt = l.log.Error().Err(err)
	}
	evt = evt.
		Str("purpose", PurposeFrom(ctx)).
		Str("model", l.inner.ModelID()).
		Int("document_bytes", docBytes).
		Int("max_tokens", req.MaxTokens).
		Dur("elapsed", time.Since(start))

	if resp != nil {
		evt = evt.
			Int("input_tokens", resp.Usage.InputTokens).
			Int("output_tokens", resp.Usage.OutputTokens).
			Int("response_chars", len(resp.Content)).
			Str("stop_reason", resp.StopReason)
	}

	evt.Msg("llm request")

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
