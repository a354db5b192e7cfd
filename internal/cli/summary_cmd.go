package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"casetrail/internal/cli/formatter"
	"casetrail/internal/domain"
)

func newSummaryCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the daily cross-domain summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().UTC().Format(domain.DateLayout)
			}
			summary, err := app.Summary.DailySummary(cmd.Context(), date)
			if err != nil {
				return err
			}
			return app.printResult(summary, func() {
				fmt.Println(formatter.Header("daily summary " + summary.Date))
				fmt.Printf("Active projects:   %d\n", summary.ActiveProjects)
				fmt.Printf("Plan items:        %d (%d due today, %d overdue)\n",
					summary.TotalPlanItems, summary.ItemsDueToday, summary.ItemsOverdue)
				fmt.Printf("Contacts:          %d\n", summary.Contacts)
				fmt.Printf("Open follow-ups:   %d\n", summary.OpenFollowUps)
				fmt.Printf("Waiting outreach:  %d\n", summary.WaitingOutreach)
				fmt.Printf("Outcomes recorded: %d\n", summary.OutcomesRecorded)
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Summary date (YYYY-MM-DD; defaults to today)")

	return cmd
}
