// Package cli is the thin front end: it parses flags, calls the domain
// services, and prints results. No domain rule lives here.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"casetrail/internal/scheduler"
	"casetrail/internal/service"
)

// App holds references to the service interfaces CLI commands call.
type App struct {
	Plan     service.PlanService
	Outreach service.OutreachService
	Summary  service.SummaryService
	Ticker   *scheduler.Ticker

	// TickSchedule is the cron spec the tick command runs under in watch
	// mode.
	TickSchedule string

	// IsInteractive reports whether stdin is a terminal; confirmation
	// prompts are skipped otherwise.
	IsInteractive func() bool

	jsonOut bool
}

// NewRootCmd creates the top-level "casetrail" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "casetrail",
		Short:         "Casework plan and contact-outreach tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&app.jsonOut, "json", false, "Print results as JSON")

	root.AddCommand(
		newProjectCmd(app),
		newItemCmd(app),
		newContactCmd(app),
		newOutreachCmd(app),
		newSummaryCmd(app),
		newTickCmd(app),
	)

	return root
}

// printResult renders v as JSON when --json is set; otherwise it calls the
// human renderer.
func (app *App) printResult(v any, human func()) error {
	if app.jsonOut {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	human()
	return nil
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}
