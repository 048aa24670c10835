// Package retry provides a reusable bounded-backoff policy for calls to
// external capabilities. One policy object is applied uniformly at every
// call site instead of duplicating retry loops.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// Default policy values, tuned for remote embedding/generation APIs.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 500 * time.Millisecond
	DefaultMaxDelay    = 30 * time.Second
)

// Policy describes a bounded exponential backoff.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the first retry; it doubles each
	// attempt.
	BaseDelay time.Duration

	// MaxDelay caps the backoff.
	MaxDelay time.Duration

	// Jitter adds up to half the computed delay at random, spreading
	// retries from concurrent callers.
	Jitter bool
}

// DefaultPolicy returns the policy used across the pipeline.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		Jitter:      true,
	}
}

// Backoff returns the delay before retry number attempt (0-indexed).
func (p Policy) Backoff(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	d := base << uint(attempt)
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	if d > maxDelay || d <= 0 {
		d = maxDelay
	}
	if p.Jitter {
		d += time.Duration(rand.Int64N(int64(d)/2 + 1))
	}
	return d
}

// Do runs op until it succeeds, the attempt budget is exhausted, or the
// context is cancelled. The last error is returned on exhaustion;
// cancellation during a backoff wait returns the context error.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Backoff(attempt - 1)):
			}
		}
		if lastErr = op(ctx); lastErr == nil {
			return nil
		}
	}
	return lastErr
}
