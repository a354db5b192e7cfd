package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"casetrail/internal/cli/formatter"
	"casetrail/internal/domain"
	"casetrail/internal/service"
)

func newOutreachCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outreach",
		Short: "Record outreach actions, follow-ups, and outcomes",
	}

	cmd.AddCommand(
		newOutreachLogCmd(app),
		newOutreachHistoryCmd(app),
		newFollowUpCmd(app),
		newOutcomeCmd(app),
	)

	return cmd
}

func newOutreachLogCmd(app *App) *cobra.Command {
	var contact, date, method, summary, status, nextFollowUp, artifactVersion string
	var artifacts []string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record an outreach action against a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.OutreachAction{
				ContactID:     contact,
				Date:          date,
				Method:        domain.OutreachMethod(method),
				Summary:       summary,
				ArtifactsSent: artifacts,
				OutcomeStatus: domain.OutcomeStatus(status),
			}
			if nextFollowUp != "" {
				input.NextFollowUpDate = &nextFollowUp
			}
			if artifactVersion != "" {
				input.ArtifactVersionID = &artifactVersion
			}

			action, err := app.Outreach.RecordAction(cmd.Context(), input)
			if err != nil {
				return err
			}
			return app.printResult(action, func() {
				fmt.Printf("Recorded %s outreach (%s)\n", action.Method, action.ID)
			})
		},
	}

	cmd.Flags().StringVar(&contact, "contact", "", "Contact ID")
	cmd.Flags().StringVar(&date, "date", "", "Action timestamp (YYYY-MM-DDTHH:MM:SSZ; defaults to now)")
	cmd.Flags().StringVar(&method, "method", "Email", "Method (Call|Email|Mail|Meeting|Other)")
	cmd.Flags().StringVar(&summary, "summary", "", "What happened")
	cmd.Flags().StringVar(&status, "status", "", "Outcome status (defaults to None)")
	cmd.Flags().StringVar(&nextFollowUp, "next", "", "Next follow-up date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&artifactVersion, "artifact-version", "", "Linked artifact version ID")
	cmd.Flags().StringArrayVar(&artifacts, "artifact", nil, "Artifact ID sent (repeatable)")
	_ = cmd.MarkFlagRequired("contact")

	return cmd
}

func newOutreachHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <contact-id>",
		Short: "Show a contact's outreach actions in date order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := app.Outreach.ContactHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printResult(actions, func() {
				rows := make([][]string, 0, len(actions))
				for _, a := range actions {
					rows = append(rows, []string{
						a.Date,
						string(a.Method),
						string(a.OutcomeStatus),
						a.Summary,
						strings.Join(a.ArtifactsSent, ", "),
					})
				}
				fmt.Print(formatter.RenderTable(
					[]string{"DATE", "METHOD", "OUTCOME", "SUMMARY", "ARTIFACTS"}, rows))
			})
		},
	}
}

func newFollowUpCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "followup",
		Short: "Manage follow-up reminders",
	}

	var contact, due, notes, action string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an open follow-up for a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.FollowUpItem{
				ContactID: contact,
				DueDate:   due,
				Notes:     notes,
			}
			if action != "" {
				input.OutreachActionID = &action
			}
			f, err := app.Outreach.CreateFollowUp(cmd.Context(), input)
			if err != nil {
				return err
			}
			return app.printResult(f, func() {
				fmt.Printf("Follow-up due %s (%s)\n", f.DueDate, f.ID)
			})
		},
	}
	add.Flags().StringVar(&contact, "contact", "", "Contact ID")
	add.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	add.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	add.Flags().StringVar(&action, "action", "", "Outreach action this follows up on")
	_ = add.MarkFlagRequired("contact")
	_ = add.MarkFlagRequired("due")

	var asOf string
	list := &cobra.Command{
		Use:   "list",
		Short: "List open follow-ups due by a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			followUps, err := app.Outreach.OpenFollowUps(cmd.Context(), asOf)
			if err != nil {
				return err
			}
			return app.printResult(followUps, func() {
				rows := make([][]string, 0, len(followUps))
				for _, f := range followUps {
					rows = append(rows, []string{
						shortID(f.ID), f.DueDate, shortID(f.ContactID), f.Notes,
					})
				}
				fmt.Print(formatter.RenderTable(
					[]string{"ID", "DUE", "CONTACT", "NOTES"}, rows))
			})
		},
	}
	list.Flags().StringVar(&asOf, "as-of", "", "Upper due-date bound (YYYY-MM-DD)")
	_ = list.MarkFlagRequired("as-of")

	done := &cobra.Command{
		Use:   "done <followup-id>",
		Short: "Mark a follow-up completed",
		Args:  cobra.ExactArgs(1),
		RunE:  followUpStatusRunE(app, domain.FollowUpCompleted),
	}

	cancel := &cobra.Command{
		Use:   "cancel <followup-id>",
		Short: "Cancel a follow-up",
		Args:  cobra.ExactArgs(1),
		RunE:  followUpStatusRunE(app, domain.FollowUpCancelled),
	}

	cmd.AddCommand(add, list, done, cancel)
	return cmd
}

func followUpStatusRunE(app *App, status domain.FollowUpStatus) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		f, err := app.Outreach.UpdateFollowUp(cmd.Context(), args[0], service.FollowUpPatch{Status: &status})
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("follow-up not found: %s", args[0])
		}
		fmt.Printf("Follow-up %s is now %s\n", f.ID, f.Status)
		return nil
	}
}

func newOutcomeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "Record how outreach to a contact ended",
	}

	var contact, status, closeDate, reason, lesson, referred string
	record := &cobra.Command{
		Use:   "record",
		Short: "Record an outcome for a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.OutcomeRecord{
				ContactID:     contact,
				FinalStatus:   domain.FinalStatus(status),
				CloseDate:     closeDate,
				Reason:        reason,
				LessonLearned: lesson,
			}
			if referred != "" {
				input.ReferredContactID = &referred
			}
			o, err := app.Outreach.RecordOutcome(cmd.Context(), input)
			if err != nil {
				return err
			}
			return app.printResult(o, func() {
				fmt.Printf("Recorded outcome %s for contact %s\n", o.FinalStatus, shortID(o.ContactID))
			})
		},
	}
	record.Flags().StringVar(&contact, "contact", "", "Contact ID")
	record.Flags().StringVar(&status, "status", "", "Final status (NoResponse|Declined|NotFit|CompletedHelp|Other)")
	record.Flags().StringVar(&closeDate, "close", "", "Close date (YYYY-MM-DD)")
	record.Flags().StringVar(&reason, "reason", "", "Why it ended this way")
	record.Flags().StringVar(&lesson, "lesson", "", "Lesson learned")
	record.Flags().StringVar(&referred, "referred", "", "Contact this outreach was referred to")
	_ = record.MarkFlagRequired("contact")
	_ = record.MarkFlagRequired("status")
	_ = record.MarkFlagRequired("close")

	cmd.AddCommand(record)
	return cmd
}
