package llm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// RetryProvider is a decorator that retries transient errors with an
// escalating backoff schedule. Non-transient errors propagate immediately.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    zerolog.Logger
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig, log zerolog.Logger) Provider {
	if len(cfg.Backoff) == 0 {
		cfg.Backoff = DefaultRetryConfig().Backoff
	}
	return &RetryProvider{inner: p, config: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isTransient(err) {
			return nil, err
		}

		// Retry budget exhausted.
		if attempt == r.config.MaxRetries {
			break
		}

		wait := r.backoff(attempt, err)
		r.log.Warn().
			Int("attempt", attempt+1).
			Dur("wait", wait).
			Err(err).
			Msg("transient LLM error, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// isTransient reports whether an error belongs to the retryable class:
// rate limits, timeouts, and provider unavailability. Everything else
// (context cancellation, schema violations, bad requests) propagates.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		return false
	}

	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return true
	}

	return false
}

// backoff returns the wait before the next attempt. Rate-limit errors
// carrying a RetryAfter hint are honored; otherwise the schedule applies,
// with the last entry repeating past the end.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	if attempt >= len(r.config.Backoff) {
		return r.config.Backoff[len(r.config.Backoff)-1]
	}
	return r.config.Backoff[attempt]
}
