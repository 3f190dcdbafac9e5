package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/desk-scheduler/internal/application/session"
	"github.com/example/desk-scheduler/internal/domain/booking"
)

// Ledger is the minimal durable record of dates already booked, used to
// keep runs idempotent across restarts. Optional: a nil ledger means every
// resolved date is attempted against the portal.
type Ledger interface {
	IsBooked(ctx context.Context, date booking.Date) (bool, error)
	MarkBooked(ctx context.Context, date booking.Date) error
}

// RunBookings turns a booking window into a run report: resolve dates,
// open a session, attempt each date with bounded retry, aggregate.
type RunBookings struct {
	// NewDriver produces a fresh portal driver for this run; the session
	// owns and releases it.
	NewDriver func(ctx context.Context) (booking.PortalDriver, error)

	Credentials booking.Credentials
	Window      booking.Window
	Retry       booking.RetryPolicy
	Ledger      Ledger
	Log         zerolog.Logger

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (u RunBookings) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// Execute performs one full run. Every run, successful or not, yields a
// report; the error return is reserved for misconfiguration.
func (u RunBookings) Execute(ctx context.Context) (*booking.Report, error) {
	if u.NewDriver == nil {
		return nil, fmt.Errorf("driver factory is nil")
	}

	start := u.now()
	report := booking.NewReport(uuid.NewString(), start)
	log := u.Log.With().Str("run_id", report.RunID).Logger()

	dates := booking.Resolve(u.Window, booking.DateOf(start))
	log.Info().Int("dates", len(dates)).Msg("run started")
	if len(dates) == 0 {
		report.Finalize(u.now())
		return report, nil
	}

	driver, err := u.NewDriver(ctx)
	if err != nil {
		log.Error().Err(err).Msg("driver unavailable")
		report.FinalizeLoginFailure(u.now())
		return report, nil
	}

	sess, err := session.Open(ctx, driver, u.Credentials, log)
	if err != nil {
		// A failed authentication cannot plausibly succeed mid-run, so the
		// whole run short-circuits with zero per-date attempts.
		log.Error().Err(err).Msg("login failed")
		report.FinalizeLoginFailure(u.now())
		return report, nil
	}

	aborted := false
	for _, date := range dates {
		if ctx.Err() != nil {
			aborted = true
			break
		}

		if skip := u.knownBooked(ctx, log, date); skip {
			report.Record(date, booking.AlreadyBooked())
			continue
		}

		outcome, interrupted := u.attempt(ctx, log, sess, date)
		if interrupted {
			aborted = true
			break
		}
		report.Record(date, outcome)
		if outcome.Kind == booking.OutcomeBooked {
			u.remember(ctx, log, date)
		}
	}

	// Release before finalizing so the report is only handed out once the
	// underlying resource is gone, cancellation included.
	if err := sess.Close(); err != nil {
		log.Warn().Err(err).Msg("session close")
	}

	if aborted {
		report.FinalizeAborted(u.now())
	} else {
		report.Finalize(u.now())
	}
	ok, notOK := report.Counts()
	log.Info().
		Str("status", string(report.Status)).
		Int("ok", ok).
		Int("not_ok", notOK).
		Msg("run finished")
	return report, nil
}

// attempt runs one date through the retry policy. Transient failures are
// retried up to the policy limit with an interruptible delay; terminal
// outcomes and non-transient failures return immediately. The second
// return value reports cancellation during the inter-attempt wait.
func (u RunBookings) attempt(ctx context.Context, log zerolog.Logger, sess *session.Session, date booking.Date) (booking.Outcome, bool) {
	max := u.Retry.MaxAttempts
	if max < 1 {
		max = 1
	}

	var outcome booking.Outcome
	for n := 1; ; n++ {
		outcome = sess.Attempt(ctx, date)
		if outcome.Settled() || !u.Retry.Retryable(outcome.Reason) || n >= max {
			if outcome.Kind == booking.OutcomeFailed {
				log.Warn().
					Stringer("date", date).
					Int("attempts", n).
					Err(outcome.Reason).
					Msg("date attempt failed")
			}
			return outcome, false
		}
		log.Debug().
			Stringer("date", date).
			Int("attempt", n).
			Err(outcome.Reason).
			Msg("retrying after transient failure")
		if err := u.Retry.Wait(ctx); err != nil {
			return outcome, true
		}
	}
}

func (u RunBookings) knownBooked(ctx context.Context, log zerolog.Logger, date booking.Date) bool {
	if u.Ledger == nil {
		return false
	}
	booked, err := u.Ledger.IsBooked(ctx, date)
	if err != nil {
		log.Warn().Err(err).Stringer("date", date).Msg("ledger lookup failed")
		return false
	}
	return booked
}

func (u RunBookings) remember(ctx context.Context, log zerolog.Logger, date booking.Date) {
	if u.Ledger == nil {
		return
	}
	if err := u.Ledger.MarkBooked(ctx, date); err != nil {
		// The portal reports its own already-booked state, so a ledger
		// write failure costs a redundant attempt at worst.
		log.Warn().Err(err).Stringer("date", date).Msg("ledger record failed")
	}
}
