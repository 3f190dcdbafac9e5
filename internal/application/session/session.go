// Package session manages one authenticated lifetime against the portal
// driver: login, per-date booking attempts, guaranteed release.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/desk-scheduler/internal/domain/booking"
)

var (
	ErrNotAuthenticated = errors.New("session is not authenticated")
	ErrClosed           = errors.New("session is closed")
)

type state int

const (
	stateAuthenticated state = iota
	stateClosed
)

// Session serves exactly one sequential run. It holds no durable state
// beyond the authenticated driver handle and must not be shared across
// concurrent callers.
type Session struct {
	driver booking.PortalDriver
	log    zerolog.Logger
	state  state
}

// Open authenticates against the portal. On login failure the driver is
// released before returning, so the caller never owns a half-open session.
func Open(ctx context.Context, driver booking.PortalDriver, creds booking.Credentials, log zerolog.Logger) (*Session, error) {
	if err := driver.Login(ctx, creds); err != nil {
		if cerr := driver.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("driver close after failed login")
		}
		var le *booking.LoginError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &booking.LoginError{Err: err}
	}
	log.Debug().Msg("session authenticated")
	return &Session{driver: driver, log: log}, nil
}

// Attempt drives one booking attempt for date: navigate, detect state,
// submit if a slot is available, confirm. It never returns an error;
// every failure is folded into the outcome so one date cannot abort a run.
func (s *Session) Attempt(ctx context.Context, date booking.Date) booking.Outcome {
	if s.state != stateAuthenticated {
		return booking.Failed(booking.Permanent(ErrNotAuthenticated))
	}

	page, err := s.driver.OpenBookingPage(ctx, date)
	if err != nil {
		return booking.Failed(err)
	}

	switch page {
	case booking.PageAlreadyBooked:
		// Idempotent no-op, not a failure.
		return booking.AlreadyBooked()
	case booking.PageUnavailable:
		return booking.Unavailable()
	case booking.PageError:
		// The surface did not load into a recognizable state. Treated as
		// transient: a reload may well succeed.
		return booking.Failed(booking.Transient(fmt.Errorf("booking page for %s in error state", date)))
	case booking.PageAvailable:
		// fall through to submission
	default:
		return booking.Failed(booking.Permanent(fmt.Errorf("unknown page state %d", page)))
	}

	conf, err := s.driver.SubmitBooking(ctx)
	if err != nil {
		return booking.Failed(err)
	}
	s.log.Info().
		Stringer("date", date).
		Str("confirmation", conf.Reference).
		Msg("booking confirmed")
	return booking.Booked()
}

// Close releases the underlying driver. Idempotent; safe on every exit
// path including cancellation.
func (s *Session) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed
	return s.driver.Close()
}
