package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"casetrail/internal/cli/formatter"
	"casetrail/internal/domain"
	"casetrail/internal/service"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage plan items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemUpdateCmd(app),
		newItemRemoveCmd(app),
		newItemToggleCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var project, title, description, category, priority, due, notes string
	var checklist []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a plan item in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, project)
			if err != nil {
				return err
			}

			input := domain.PlanItem{
				ProjectID:   projectID,
				Title:       title,
				Description: description,
				Category:    domain.PlanCategory(category),
				Priority:    domain.Priority(priority),
				Notes:       notes,
			}
			if due != "" {
				input.DueDate = &due
			}
			for _, label := range checklist {
				input.Checklist = append(input.Checklist, domain.ChecklistItem{Label: label})
			}

			item, err := app.Plan.CreatePlanItem(cmd.Context(), input)
			if err != nil {
				return err
			}
			return app.printResult(item, func() {
				fmt.Printf("Created item %q (%s)\n", item.Title, item.ID)
			})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&category, "category", "Other", "Category (Research|Drafting|Outreach|Evidence|Admin|Other)")
	cmd.Flags().StringVar(&priority, "priority", "Normal", "Priority (Low|Normal|High|Critical)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	cmd.Flags().StringArrayVar(&checklist, "check", nil, "Checklist label (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var project, dueBefore, dueAfter string
	var statuses, categories, priorities []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plan items with combinable filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := service.PlanItemFilter{
				DueOnOrBefore: dueBefore,
				DueOnOrAfter:  dueAfter,
			}
			if project != "" {
				projectID, err := resolveProjectID(cmd.Context(), app, project)
				if err != nil {
					return err
				}
				filter.ProjectID = projectID
			}
			for _, s := range statuses {
				filter.Statuses = append(filter.Statuses, domain.PlanItemStatus(s))
			}
			for _, c := range categories {
				filter.Categories = append(filter.Categories, domain.PlanCategory(c))
			}
			for _, p := range priorities {
				filter.Priorities = append(filter.Priorities, domain.Priority(p))
			}

			items, err := app.Plan.FilterPlanItems(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return app.printResult(items, func() {
				rows := make([][]string, 0, len(items))
				for _, it := range items {
					due := "-"
					if it.DueDate != nil {
						due = *it.DueDate
					}
					rows = append(rows, []string{
						shortID(it.ID),
						it.Title,
						formatter.StatusStyle(it.Status).Render(string(it.Status)),
						string(it.Category),
						formatter.PriorityIndicator(it.Priority),
						due,
					})
				}
				fmt.Print(formatter.RenderTable(
					[]string{"ID", "TITLE", "STATUS", "CATEGORY", "PRIORITY", "DUE"}, rows))
			})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Filter by project ID")
	cmd.Flags().StringArrayVar(&statuses, "status", nil, "Filter by status (repeatable)")
	cmd.Flags().StringArrayVar(&categories, "category", nil, "Filter by category (repeatable)")
	cmd.Flags().StringArrayVar(&priorities, "priority", nil, "Filter by priority (repeatable)")
	cmd.Flags().StringVar(&dueBefore, "due-before", "", "Due on or before (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dueAfter, "due-after", "", "Due on or after (YYYY-MM-DD)")

	return cmd
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var title, description, category, status, priority, due, notes string
	var clearDue bool
	var checklist []string

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update supplied fields of a plan item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch service.PlanItemPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("category") {
				c := domain.PlanCategory(category)
				patch.Category = &c
			}
			if cmd.Flags().Changed("status") {
				s := domain.PlanItemStatus(status)
				patch.Status = &s
			}
			if cmd.Flags().Changed("priority") {
				p := domain.Priority(priority)
				patch.Priority = &p
			}
			if clearDue {
				patch.ClearDueDate = true
			} else if cmd.Flags().Changed("due") {
				patch.DueDate = &due
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if cmd.Flags().Changed("check") {
				// Whole-checklist replacement.
				replacement := make([]domain.ChecklistItem, 0, len(checklist))
				for _, label := range checklist {
					replacement = append(replacement, domain.ChecklistItem{Label: label})
				}
				patch.Checklist = &replacement
			}

			item, err := app.Plan.UpdatePlanItem(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("plan item not found: %s", args[0])
			}
			return app.printResult(item, func() {
				fmt.Printf("Updated item %q\n", item.Title)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&status, "status", "", "Status (NotStarted|InProgress|Done|Dropped)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	cmd.Flags().StringArrayVar(&checklist, "check", nil, "Replacement checklist label (repeatable)")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Delete a plan item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := app.Plan.DeletePlanItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("plan item not found: %s", args[0])
			}
			fmt.Printf("Deleted item %s\n", args[0])
			return nil
		},
	}
}

func newItemToggleCmd(app *App) *cobra.Command {
	var unchecked bool

	cmd := &cobra.Command{
		Use:   "toggle <item-id> <checklist-id>",
		Short: "Check or uncheck a checklist entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := app.Plan.ToggleChecklistItem(cmd.Context(), args[0], args[1], !unchecked)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("item or checklist entry not found")
			}
			state := "checked"
			if unchecked {
				state = "unchecked"
			}
			fmt.Printf("Checklist entry %s %s\n", args[1], state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unchecked, "off", false, "Uncheck instead of check")

	return cmd
}
