package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"casetrail/internal/cli/formatter"
	"casetrail/internal/domain"
	"casetrail/internal/service"
)

// resolveProjectID accepts a full id or unambiguous id prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}
	projects, err := app.Plan.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}
	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage casework projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectProgressCmd(app),
		newProjectInitCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, description, start, end, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plan.CreateProject(cmd.Context(), domain.Project{
				Name:          name,
				Description:   description,
				StartDate:     start,
				TargetEndDate: end,
				Color:         color,
			})
			if err != nil {
				return err
			}
			return app.printResult(p, func() {
				fmt.Printf("Created project %s (%s)\n", formatter.Token(p.Color, p.Name), p.ID)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Target end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "blue", "Display color token")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Plan.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			return app.printResult(projects, func() {
				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					rows = append(rows, []string{
						shortID(p.ID),
						formatter.Token(p.Color, p.Name),
						string(p.Status),
						p.StartDate,
						p.TargetEndDate,
					})
				}
				fmt.Print(formatter.RenderTable(
					[]string{"ID", "NAME", "STATUS", "START", "TARGET"}, rows))
			})
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, description, status, start, end, color string

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update supplied fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			var patch service.ProjectPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("status") {
				s := domain.ProjectStatus(status)
				patch.Status = &s
			}
			if cmd.Flags().Changed("start") {
				patch.StartDate = &start
			}
			if cmd.Flags().Changed("end") {
				patch.TargetEndDate = &end
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}

			p, err := app.Plan.UpdateProject(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("project not found: %s", id)
			}
			return app.printResult(p, func() {
				fmt.Printf("Updated project %s\n", formatter.Token(p.Color, p.Name))
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&status, "status", "", "Status (Active|OnHold|Completed|Archived)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Target end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "", "Display color token")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <project-id>",
		Short: "Delete a project and all of its plan items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				var confirmed bool
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title("Delete this project and every plan item in it?").
						Value(&confirmed),
				))
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			deleted, err := app.Plan.DeleteProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("project not found: %s", id)
			}
			fmt.Printf("Deleted project %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}

func newProjectProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <project-id>",
		Short: "Show item completion for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			progress, err := app.Plan.ProjectProgress(cmd.Context(), id)
			if err != nil {
				return err
			}
			return app.printResult(progress, func() {
				fmt.Printf("%d/%d items done (%d%%)\n", progress.Done, progress.Total, progress.Percent)
			})
		},
	}
}

func newProjectInitCmd(app *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "init <project-id>",
		Short: "Preload the casework plan template into a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			items, err := app.Plan.LoadTemplate(cmd.Context(), id, start)
			if err != nil {
				return err
			}
			return app.printResult(items, func() {
				fmt.Printf("Created %d plan items from template\n", len(items))
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Plan start date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// shortID truncates a UUID for table display.
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
