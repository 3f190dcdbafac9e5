// Package scheduler triggers one booking run per day at a configured
// local time, indefinitely, with at most one run in flight.
package scheduler

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/example/desk-scheduler/internal/domain/booking"
)

// Runner executes one booking run. Satisfied by usecases.RunBookings.
type Runner interface {
	Execute(ctx context.Context) (*booking.Report, error)
}

// ReportSink receives the finalized report of every run. Consumers decide
// how to render it; the scheduler makes no assumption.
type ReportSink func(*booking.Report)

var triggerRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ParseTrigger turns an "HH:MM" local time-of-day into a daily cron
// schedule. Next-trigger math, DST included, is delegated to robfig/cron.
func ParseTrigger(hhmm string) (cron.Schedule, error) {
	m := triggerRe.FindStringSubmatch(hhmm)
	if m == nil {
		return nil, fmt.Errorf("invalid trigger time %q (want HH:MM)", hhmm)
	}
	return cron.ParseStandard(fmt.Sprintf("%s %s * * *", m[2], m[1]))
}

// State is a snapshot of the scheduler's book-keeping: the configured
// trigger, the next planned run, and whether a run is in flight. Mutated
// only by the scheduler goroutine; everyone else gets copies.
type State struct {
	Trigger   string
	NextRunAt time.Time
	NextRunID string
	Running   bool
}

type Scheduler struct {
	runner Runner
	sink   ReportSink
	sched  cron.Schedule
	log    zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	state   State
	running bool

	wg sync.WaitGroup
}

// Option tweaks scheduler construction; used by tests to inject a clock.
type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func New(runner Runner, sink ReportSink, triggerTime string, log zerolog.Logger, opts ...Option) (*Scheduler, error) {
	sched, err := ParseTrigger(triggerTime)
	if err != nil {
		return nil, err
	}
	s := &Scheduler{
		runner: runner,
		sink:   sink,
		sched:  sched,
		log:    log,
		now:    time.Now,
		state:  State{Trigger: triggerTime},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Snapshot returns a read-only copy of the schedule state.
func (s *Scheduler) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Running = s.running
	return st
}

// Run blocks until ctx is cancelled, waking once per day at the configured
// trigger. Sleeping until the next trigger is the one designed suspension
// point; cancellation interrupts it immediately. If a run is in flight at
// shutdown, Run waits for it to close its session before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		next := s.sched.Next(s.now())
		runID := uuid.NewString()
		s.setNext(next, runID)
		s.log.Info().
			Time("next_run", next).
			Str("run_id", runID).
			Msg("scheduler sleeping until next trigger")

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.wg.Wait()
			s.log.Info().Msg("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
			s.trigger(ctx, runID)
		}
	}
}

// trigger starts a run unless one is still in flight. Daily cadence makes
// overlap unlikely, but the invariant is enforced here rather than in the
// runner: the stale trigger is skipped and logged, never queued.
func (s *Scheduler) trigger(ctx context.Context, runID string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Warn().Str("run_id", runID).Msg("previous run still in flight, skipping trigger")
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		report, err := s.runner.Execute(ctx)
		if err != nil {
			s.log.Error().Err(err).Str("run_id", runID).Msg("run failed to start")
			return
		}
		if s.sink != nil {
			s.sink(report)
		}
	}()
}

func (s *Scheduler) setNext(at time.Time, runID string) {
	s.mu.Lock()
	s.state.NextRunAt = at
	s.state.NextRunID = runID
	s.mu.Unlock()
}
