package clipview

import (
	"context"
	"time"
)

// DefaultMaxRetries is the default number of attempts for transient failures.
const DefaultMaxRetries = 3

// RetryPolicy configures WithRetry. Policies are plain values constructed
// per call site; there is no shared global policy.
type RetryPolicy struct {
	// MaxRetries is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxRetries int
	// RetryDelay is the base delay before the first retry; subsequent
	// retries back off exponentially (delay, 2*delay, 4*delay, ...).
	RetryDelay time.Duration
	// ShouldRetry classifies an error as transient. A nil ShouldRetry
	// retries every error.
	ShouldRetry func(err error) bool
	// OnRetry, if set, is invoked with the 1-indexed failed attempt number
	// before each backoff wait.
	OnRetry func(attempt int)
	// BackoffFn overrides the backoff schedule for a given attempt
	// (1-indexed). If nil, exponential backoff from RetryDelay is used.
	BackoffFn func(attempt int) time.Duration
}

// DefaultRetryPolicy returns the policy used for backend mutations:
// three attempts with exponential backoff starting at 500ms, retrying only
// errors shouldRetry classifies as transient.
func DefaultRetryPolicy(shouldRetry func(error) bool) RetryPolicy {
	return RetryPolicy{
		MaxRetries:  DefaultMaxRetries,
		RetryDelay:  500 * time.Millisecond,
		ShouldRetry: shouldRetry,
	}
}

// WithRetry invokes fn until it succeeds, the policy stops retrying, or the
// attempt budget is exhausted. Attempts are strictly sequential. On a
// non-retryable or final failure the ORIGINAL error is returned unchanged so
// callers can still classify it. A context cancelled between attempts
// surfaces ctx.Err().
func WithRetry[T any](ctx context.Context, fn func(ctx context.Context) (T, error), policy RetryPolicy) (T, error) {
	var zero T

	maxRetries := policy.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	backoffFn := policy.BackoffFn
	if backoffFn == nil {
		backoffFn = func(attempt int) time.Duration {
			return policy.RetryDelay * time.Duration(1<<(attempt-1))
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if policy.ShouldRetry != nil && !policy.ShouldRetry(err) {
			return zero, err
		}

		// No wait after the final attempt.
		if attempt < maxRetries {
			if policy.OnRetry != nil {
				policy.OnRetry(attempt)
			}
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoffFn(attempt)):
			}
		}
	}

	return zero, lastErr
}

// Do is the error-only convenience form of WithRetry.
func Do(ctx context.Context, fn func(ctx context.Context) error, policy RetryPolicy) error {
	_, err := WithRetry(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, policy)
	return err
}
