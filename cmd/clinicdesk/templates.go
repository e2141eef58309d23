package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/internal/tui"
)

func templatesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Manage patient form templates",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			res := a.templates.List(cmd.Context(), search)
			if err := resultErr(res.Success, res.Error); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.TemplateTable(res.Data))
			return nil
		}),
	}
	listCmd.Flags().StringP("search", "s", "", "Filter by name or description")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			res := a.templates.Get(cmd.Context(), args[0])
			if err := resultErr(res.Success, res.Error); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.TemplateSummary(res.Data))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Build a new template interactively",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			in, err := tui.NewTemplateBuilder(model.Template{Name: "New template", IsVisible: true}).Run(cmd.Context())
			if err != nil {
				return err
			}
			res := a.templates.Create(cmd.Context(), in)
			if err := resultErr(res.Success, res.Error); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("Created template "+res.Data.ID))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a template interactively",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			got := a.templates.Get(cmd.Context(), args[0])
			if err := resultErr(got.Success, got.Error); err != nil {
				return err
			}
			in, err := tui.NewTemplateBuilder(got.Data).Run(cmd.Context())
			if err != nil {
				return err
			}
			res := a.templates.Update(cmd.Context(), args[0], in)
			if err := resultErr(res.Success, res.Error); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("Updated template "+res.Data.ID))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a template",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			got := a.templates.Get(cmd.Context(), args[0])
			if err := resultErr(got.Success, got.Error); err != nil {
				return err
			}
			res := a.templates.Duplicate(cmd.Context(), got.Data)
			if err := resultErr(res.Success, res.Error); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", res.Data.Name, res.Data.ID)
			return nil
		}),
	})

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				if err := confirm(cmd, fmt.Sprintf("Delete template %s?", args[0]), &yes); err != nil {
					return err
				}
			}
			if !yes {
				return errors.New("aborted")
			}
			res := a.templates.Delete(cmd.Context(), args[0])
			if err := resultErr(res.Success, res.Error); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted", args[0])
			return nil
		}),
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.AddCommand(deleteCmd)

	return cmd
}

func confirm(cmd *cobra.Command, title string, yes *bool) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(yes),
	)).WithTheme(tui.Theme()).RunWithContext(cmd.Context())
}
