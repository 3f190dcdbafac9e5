package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/desk-scheduler/internal/application/usecases"
	"github.com/example/desk-scheduler/internal/config"
)

func newLoginCmd(log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Test portal login only, no booking attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			uc := usecases.TestLogin{
				NewDriver:   driverFactory(cfg, log),
				Credentials: cfg.Credentials,
				Log:         log.With().Str("component", "session").Logger(),
			}
			if err := uc.Execute(ctx); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintln(os.Stdout, "login successful")
			return nil
		},
	}
}
