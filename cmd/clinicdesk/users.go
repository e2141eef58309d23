package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/internal/tui"
)

func usersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer operator accounts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			role, _ := cmd.Flags().GetString("role")
			res := a.users.List(cmd.Context(), model.UserFilter{SearchTerm: search, Role: role})
			if err := resultErr(res.Success, res.Error); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
			for _, u := range res.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.Role, u.Active)
			}
			return w.Flush()
		}),
	}
	listCmd.Flags().StringP("search", "s", "", "Filter by name or email")
	listCmd.Flags().String("role", "", "Filter by role")
	cmd.AddCommand(listCmd)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			req := model.CreateUserRequest{}
			req.Name, _ = cmd.Flags().GetString("name")
			req.Email, _ = cmd.Flags().GetString("email")
			req.Role, _ = cmd.Flags().GetString("role")
			req.Password, _ = cmd.Flags().GetString("password")
			if req.Password == "" {
				if err := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&req.Password),
				)).WithTheme(tui.Theme()).RunWithContext(cmd.Context()); err != nil {
					return err
				}
			}
			res := a.users.Create(cmd.Context(), req)
			if err := resultErr(res.Success, res.Error); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", res.Data.Email, res.Data.ID)
			return nil
		}),
	}
	createCmd.Flags().String("name", "", "Display name")
	createCmd.Flags().String("email", "", "Login email")
	createCmd.Flags().String("role", model.UserRoleStaff, "Role: admin, doctor, nurse or staff")
	createCmd.Flags().String("password", "", "Initial password; prompted when empty")
	cmd.AddCommand(createCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				if err := confirm(cmd, fmt.Sprintf("Delete user %s?", args[0]), &yes); err != nil {
					return err
				}
			}
			if !yes {
				return errors.New("aborted")
			}
			res := a.users.Delete(cmd.Context(), args[0])
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
