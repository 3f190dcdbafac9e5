package booking

import (
	"context"
	"time"
)

// RetryPolicy bounds how often a failed attempt for a single date is
// retried before the runner moves on. Retries are local to the current
// date; the delay suspends only the current run.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts per date, including the
	// first one. Values below 1 behave as 1.
	MaxAttempts int

	// Delay is the wait between attempts.
	Delay time.Duration

	// Classify decides whether a failure reason is worth retrying.
	// Nil means IsTransient.
	Classify func(error) bool
}

// Retryable reports whether reason qualifies for another attempt.
func (p RetryPolicy) Retryable(reason error) bool {
	if p.Classify != nil {
		return p.Classify(reason)
	}
	return IsTransient(reason)
}

// Wait sleeps for the configured delay or until ctx is cancelled,
// whichever comes first. Returns ctx.Err() on cancellation so callers
// stay responsive to shutdown during the inter-attempt pause.
func (p RetryPolicy) Wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
