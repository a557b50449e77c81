package trends

import (
	"context"
	"errors"
	"math"
	"time"
)

// retryPolicy retries transient upstream failures with exponential backoff.
// Classified non-retryable errors (auth, malformed payloads) fail immediately.
type retryPolicy struct {
	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
}

func newRetryPolicy(maxRetries int, retryDelay time.Duration) *retryPolicy {
	return &retryPolicy{
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		backoffMultiplier: 2.0,
	}
}

// Execute runs fn until it succeeds, exhausts the retry budget, or hits a
// non-retryable error. Context cancellation aborts both execution and waits.
func (rp *retryPolicy) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= rp.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == rp.maxRetries {
			break
		}

		if !isRetryable(err) {
			return err
		}

		delay := time.Duration(float64(rp.retryDelay) * math.Pow(rp.backoffMultiplier, float64(attempt)))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Retryable()
	}

	// Unclassified errors are mostly transport-level; give them a chance.
	return true
}
