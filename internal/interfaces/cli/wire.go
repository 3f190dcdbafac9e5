package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/example/desk-scheduler/internal/application/usecases"
	"github.com/example/desk-scheduler/internal/config"
	"github.com/example/desk-scheduler/internal/domain/booking"
	"github.com/example/desk-scheduler/internal/infrastructure/portal"
)

func driverFactory(cfg config.Config, log zerolog.Logger) func(context.Context) (booking.PortalDriver, error) {
	return func(ctx context.Context) (booking.PortalDriver, error) {
		return portal.New(portal.Config{
			BaseURL:  cfg.PortalBaseURL,
			Location: cfg.Location,
		}, log.With().Str("component", "portal").Logger()), nil
	}
}

func buildRunner(cfg config.Config, led usecases.Ledger, log zerolog.Logger) usecases.RunBookings {
	return usecases.RunBookings{
		NewDriver:   driverFactory(cfg, log),
		Credentials: cfg.Credentials,
		Window:      cfg.Window(),
		Retry:       cfg.Retry(),
		Ledger:      led,
		Log:         log.With().Str("component", "runner").Logger(),
	}
}

func renderReport(w io.Writer, r *booking.Report) {
	for _, res := range r.Results {
		line := fmt.Sprintf("  %s: %s", res.Date, res.Outcome.Kind)
		if res.Outcome.Kind == booking.OutcomeFailed && res.Outcome.Reason != nil {
			line += fmt.Sprintf(" (%v)", res.Outcome.Reason)
		}
		fmt.Fprintln(w, line)
	}
	ok, notOK := r.Counts()
	fmt.Fprintf(w, "run %s: %s (%d ok, %d not ok)\n", r.RunID, r.Status, ok, notOK)
}

func logConfig(log zerolog.Logger, cfg config.Config) {
	log.Info().
		Str("location", cfg.Location).
		Str("days", cfg.Days.String()).
		Int("weeks_ahead", cfg.WeeksAhead).
		Bool("headless", cfg.Headless).
		Msg("configuration loaded")
}
