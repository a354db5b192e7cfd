package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"casetrail/internal/cli/formatter"
	"casetrail/internal/domain"
	"casetrail/internal/service"
)

func newContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contact categories and contacts",
	}

	cmd.AddCommand(
		newCategoryCmd(app),
		newContactAddCmd(app),
		newContactListCmd(app),
		newContactUpdateCmd(app),
		newContactRemoveCmd(app),
	)

	return cmd
}

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage contact categories",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a contact category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, _ := cmd.Flags().GetString("color")
			tags, _ := cmd.Flags().GetStringSlice("tag")
			cat, err := app.Outreach.CreateCategory(cmd.Context(), domain.ContactCategory{
				Name:  args[0],
				Color: color,
				Tags:  tags,
			})
			if err != nil {
				return err
			}
			return app.printResult(cat, func() {
				fmt.Printf("Created category %s (%s)\n", formatter.Token(cat.Color, cat.Name), cat.ID)
			})
		},
	}
	add.Flags().String("color", "gray", "Display color token")
	add.Flags().StringSlice("tag", nil, "Tag (repeatable)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List contact categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.Outreach.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			return app.printResult(categories, func() {
				rows := make([][]string, 0, len(categories))
				for _, c := range categories {
					rows = append(rows, []string{
						shortID(c.ID),
						formatter.Token(c.Color, c.Name),
						strings.Join(c.Tags, ", "),
					})
				}
				fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "TAGS"}, rows))
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <category-id>",
		Short: "Delete a category with no remaining contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := app.Outreach.DeleteCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("category not found: %s", args[0])
			}
			fmt.Printf("Deleted category %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}

func newContactAddCmd(app *App) *cobra.Command {
	var category, org, name, role, phone, email, address, website, method string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a contact in a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := app.Outreach.CreateContact(cmd.Context(), domain.Contact{
				CategoryID:      category,
				Organization:    org,
				Name:            name,
				Role:            role,
				Phone:           phone,
				Email:           email,
				Address:         address,
				Website:         website,
				PreferredMethod: domain.ContactMethod(method),
				Tags:            tags,
			})
			if err != nil {
				return err
			}
			return app.printResult(ct, func() {
				fmt.Printf("Created contact %s (%s)\n", ct.Name, ct.ID)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category ID")
	cmd.Flags().StringVar(&org, "org", "", "Organization")
	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&role, "role", "", "Role or title")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&address, "address", "", "Mailing address")
	cmd.Flags().StringVar(&website, "website", "", "Website")
	cmd.Flags().StringVar(&method, "method", "Email", "Preferred method (Call|Email|Mail|Form|Combo)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (repeatable)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newContactListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts, err := app.Outreach.ListContacts(cmd.Context())
			if err != nil {
				return err
			}
			return app.printResult(contacts, func() {
				rows := make([][]string, 0, len(contacts))
				for _, c := range contacts {
					rows = append(rows, []string{
						shortID(c.ID),
						c.Name,
						c.Organization,
						string(c.PreferredMethod),
						c.Email,
					})
				}
				fmt.Print(formatter.RenderTable(
					[]string{"ID", "NAME", "ORGANIZATION", "METHOD", "EMAIL"}, rows))
			})
		},
	}
}

func newContactUpdateCmd(app *App) *cobra.Command {
	var category, org, name, role, phone, email, address, website, method string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <contact-id>",
		Short: "Update supplied fields of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch service.ContactPatch
			if cmd.Flags().Changed("category") {
				patch.CategoryID = &category
			}
			if cmd.Flags().Changed("org") {
				patch.Organization = &org
			}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("role") {
				patch.Role = &role
			}
			if cmd.Flags().Changed("phone") {
				patch.Phone = &phone
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("address") {
				patch.Address = &address
			}
			if cmd.Flags().Changed("website") {
				patch.Website = &website
			}
			if cmd.Flags().Changed("method") {
				m := domain.ContactMethod(method)
				patch.PreferredMethod = &m
			}
			if cmd.Flags().Changed("tag") {
				patch.Tags = &tags
			}

			ct, err := app.Outreach.UpdateContact(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			if ct == nil {
				return fmt.Errorf("contact not found: %s", args[0])
			}
			return app.printResult(ct, func() {
				fmt.Printf("Updated contact %s\n", ct.Name)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category ID")
	cmd.Flags().StringVar(&org, "org", "", "Organization")
	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&role, "role", "", "Role or title")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&address, "address", "", "Mailing address")
	cmd.Flags().StringVar(&website, "website", "", "Website")
	cmd.Flags().StringVar(&method, "method", "", "Preferred method")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Replacement tag (repeatable)")

	return cmd
}

func newContactRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <contact-id>",
		Short: "Delete a contact and its outreach actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && app.interactive() {
				var confirmed bool
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title("Delete this contact and its outreach history?").
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

			deleted, err := app.Outreach.DeleteContact(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("contact not found: %s", args[0])
			}
			fmt.Printf("Deleted contact %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
