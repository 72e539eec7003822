package speech

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// Transcriber converts a recorded audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// RetryTranscriber is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryTranscriber struct {
	inner  Transcriber
	config RetryConfig
}

// WithRetry wraps a Transcriber with retry logic.
func WithRetry(t Transcriber, cfg RetryConfig) Transcriber {
	return &RetryTranscriber{inner: t, config: cfg}
}

func (r *RetryTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	attempts := max(r.config.MaxAttempts, 1)
	var lastErr error

	for attempt := range attempts {
		text, err := r.inner.Transcribe(ctx, path)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return "", err
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return "", lastErr
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrUnsupported) || errors.Is(err, ErrPermission) {
		return false
	}
	var te *ErrTranscription
	if errors.As(err, &te) {
		return te.Temporary()
	}
	return true
}

func (r *RetryTranscriber) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
