package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// RetryProvider wraps another Provider with automatic retry on
// transient failures. Context cancellation is never retried.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a provider with retry behavior.
func WithRetry(inner Provider, config RetryConfig) *RetryProvider {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &RetryProvider{inner: inner, config: config}
}

func (r *RetryProvider) Explain(ctx context.Context, req ExplainRequest) (*Explanation, error) {
	var lastErr error
	wait := r.config.InitialWait

	for attempt := range r.config.MaxAttempts {
		if attempt > 0 {
			delay := wait
			var rateErr *ErrRateLimit
			if errors.As(lastErr, &rateErr) && rateErr.RetryAfter > 0 {
				delay = rateErr.RetryAfter
			}
			delay = jitter(delay)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}

			wait = time.Duration(float64(wait) * r.config.Multiplier)
			if wait > r.config.MaxWait {
				wait = r.config.MaxWait
			}
		}

		result, err := r.inner.Explain(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", r.config.MaxAttempts, lastErr)
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// shouldRetry reports whether an error is worth another attempt.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var rateErr *ErrRateLimit
	if errors.As(err, &rateErr) {
		return true
	}

	var unavailErr *ErrProviderUnavailable
	if errors.As(err, &unavailErr) {
		return true
	}

	var emptyErr *ErrEmptyResponse
	if errors.As(err, &emptyErr) {
		return true
	}

	return false
}

// jitter adds up to +/-20% random variation to a delay so concurrent
// clients do not retry in lockstep.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	factor := 0.8 + rand.Float64()*0.4
	return time.Duration(float64(d) * factor)
}
