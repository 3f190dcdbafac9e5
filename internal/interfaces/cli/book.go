package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/desk-scheduler/internal/config"
	"github.com/example/desk-scheduler/internal/domain/booking"
	"github.com/example/desk-scheduler/internal/infrastructure/ledger"
)

func newBookCmd(log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "book",
		Short: "Run the booking process once, immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
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
			report, err := runner.Execute(ctx)
			if err != nil {
				return err
			}
			renderReport(os.Stdout, report)
			if report.Status == booking.StatusLoginFailed {
				return fmt.Errorf("login failed, no bookings attempted")
			}
			return nil
		},
	}
}
