package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/desk-scheduler/internal/application/usecases"
	"github.com/example/desk-scheduler/internal/config"
)

func newDatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "Show the dates the current configuration would book",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			preview := usecases.PreviewDates{Window: cfg.Window()}
			dates := preview.Execute()

			fmt.Fprintf(os.Stdout, "location:    %s\n", cfg.Location)
			fmt.Fprintf(os.Stdout, "days:        %s\n", cfg.Days)
			fmt.Fprintf(os.Stdout, "weeks ahead: %d\n\n", cfg.WeeksAhead)
			if len(dates) == 0 {
				fmt.Fprintln(os.Stdout, "no dates to book")
				return nil
			}
			fmt.Fprintln(os.Stdout, "dates to book:")
			for _, d := range dates {
				fmt.Fprintf(os.Stdout, "  %s, %s\n", d.Weekday(), d)
			}
			return nil
		},
	}
}
