package booking

import "time"

// OutcomeKind tags the result of one date's booking attempt.
type OutcomeKind int

const (
	OutcomeBooked OutcomeKind = iota
	OutcomeAlreadyBooked
	OutcomeUnavailable
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeBooked:
		return "booked"
	case OutcomeAlreadyBooked:
		return "already_booked"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is immutable once produced. Reason is set only for OutcomeFailed
// and carries enough detail to classify retryability.
type Outcome struct {
	Kind   OutcomeKind
	Reason error
}

func Booked() Outcome        { return Outcome{Kind: OutcomeBooked} }
func AlreadyBooked() Outcome { return Outcome{Kind: OutcomeAlreadyBooked} }
func Unavailable() Outcome   { return Outcome{Kind: OutcomeUnavailable} }
func Failed(reason error) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}

// Settled reports whether this outcome is terminal for its date: everything
// except a transient failure that may still be retried.
func (o Outcome) Settled() bool { return o.Kind != OutcomeFailed }

// RunStatus summarizes a whole run.
type RunStatus string

const (
	StatusSuccess     RunStatus = "success"
	StatusPartial     RunStatus = "partial_failure"
	StatusLoginFailed RunStatus = "login_failure"
	StatusAborted     RunStatus = "aborted"
)

// DateOutcome pairs a date with its attempt outcome.
type DateOutcome struct {
	Date    Date
	Outcome Outcome
}

// Report enumerates one outcome per intended date plus an overall status.
// It is owned by the runner that produces it and handed to consumers by
// value once finalized.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []DateOutcome
	Status     RunStatus
}

func NewReport(runID string, startedAt time.Time) *Report {
	return &Report{RunID: runID, StartedAt: startedAt}
}

func (r *Report) Record(d Date, o Outcome) {
	r.Results = append(r.Results, DateOutcome{Date: d, Outcome: o})
}

// Finalize derives the overall status from the recorded outcomes: Success
// when every date is Booked or AlreadyBooked, PartialFailure otherwise.
// A run with no eligible dates is a Success.
func (r *Report) Finalize(finishedAt time.Time) {
	r.FinishedAt = finishedAt
	r.Status = StatusSuccess
	for _, res := range r.Results {
		switch res.Outcome.Kind {
		case OutcomeFailed, OutcomeUnavailable:
			r.Status = StatusPartial
		}
	}
}

// FinalizeLoginFailure marks a run that never got past authentication.
// No per-date outcomes are recorded.
func (r *Report) FinalizeLoginFailure(finishedAt time.Time) {
	r.FinishedAt = finishedAt
	r.Status = StatusLoginFailed
}

// FinalizeAborted marks a run interrupted by cancellation. Outcomes
// recorded so far are preserved; remaining dates stay unattempted.
func (r *Report) FinalizeAborted(finishedAt time.Time) {
	r.FinishedAt = finishedAt
	r.Status = StatusAborted
}

// Counts returns how many results are booked-or-already-booked and how
// many are not, for log and display summaries.
func (r *Report) Counts() (ok, notOK int) {
	for _, res := range r.Results {
		switch res.Outcome.Kind {
		case OutcomeBooked, OutcomeAlreadyBooked:
			ok++
		default:
			notOK++
		}
	}
	return ok, notOK
}
