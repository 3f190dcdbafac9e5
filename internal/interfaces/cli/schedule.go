package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/desk-scheduler/internal/config"
	"github.com/example/desk-scheduler/internal/domain/booking"
	"github.com/example/desk-scheduler/internal/infrastructure/ledger"
	"github.com/example/desk-scheduler/internal/scheduler"
)

func newScheduleCmd(log zerolog.Logger) *cobra.Command {
	var triggerTime string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the daily booking scheduler until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if triggerTime != "" {
				cfg.TriggerTime = triggerTime
			}
			logConfig(log, cfg)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			led, err := ledger.Open(cfg.LedgerPath)
			if err != nil {
				return err
			}
			defer led.Close()

			runner := buildRunner(cfg, led, log)
			sink := func(r *booking.Report) { renderReport(os.Stdout, r) }

			sched, err := scheduler.New(runner, sink, cfg.TriggerTime, log.With().Str("component", "scheduler").Logger())
			if err != nil {
				return err
			}
			if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&triggerTime, "time", "", "daily trigger time HH:MM (overrides DESKSCHED_TRIGGER_TIME)")
	return cmd
}
