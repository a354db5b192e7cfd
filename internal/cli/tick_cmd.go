package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newTickCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run the periodic summary tick",
		Long: "Computes the daily summary once and exits. With --watch, keeps\n" +
			"running on the configured schedule until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Ticker == nil {
				return fmt.Errorf("tick scheduler is not configured")
			}

			if !watch {
				app.Ticker.Tick(cmd.Context())
				return nil
			}

			if err := app.Ticker.Start(cmd.Context(), app.TickSchedule); err != nil {
				return err
			}
			fmt.Printf("Ticking on schedule %q; Ctrl-C to stop.\n", app.TickSchedule)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			app.Ticker.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running on the configured schedule")

	return cmd
}
