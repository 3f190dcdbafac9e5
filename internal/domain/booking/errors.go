package booking

import (
	"context"
	"errors"
	"fmt"
)

// LoginError means authentication against the portal failed. Fatal for the
// run, not for the scheduler: the next day's trigger still fires.
type LoginError struct {
	Err error
}

func (e *LoginError) Error() string {
	if e.Err == nil {
		return "login failed"
	}
	return fmt.Sprintf("login failed: %v", e.Err)
}

func (e *LoginError) Unwrap() error { return e.Err }

// SubmissionError is a per-date attempt failure. Transient failures
// (timeouts, temporary page-load errors) may succeed if retried unchanged;
// non-transient ones (explicit rejection, structural mismatch) may not.
type SubmissionError struct {
	Transient bool
	Err       error
}

func (e *SubmissionError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("submission failed (%s): %v", kind, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Transient wraps err as a retryable submission error.
func Transient(err error) error {
	return &SubmissionError{Transient: true, Err: err}
}

// Permanent wraps err as a non-retryable submission error.
func Permanent(err error) error {
	return &SubmissionError{Transient: false, Err: err}
}

// IsTransient is the default retryability classifier. Deadline expiry is
// treated as a timeout and therefore transient; an explicit SubmissionError
// carries its own classification; everything else is not retried.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var se *SubmissionError
	if errors.As(err, &se) {
		return se.Transient
	}
	return errors.Is(err, context.DeadlineExceeded)
}
