package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinicdesk/internal/service/patient"
	"github.com/jwalitptl/clinicdesk/internal/tui"
)

func patientsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Record patient intakes",
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Record a new patient",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			session := patient.NewSession(a.api, a.api, a.log)
			if id, _ := cmd.Flags().GetString("template"); id != "" {
				res := a.templates.Get(cmd.Context(), id)
				if err := resultErr(res.Success, res.Error); err != nil {
					return err
				}
				session.SelectTemplate(res.Data)
			}
			return runIntake(cmd, session)
		}),
	}
	newCmd.Flags().StringP("template", "t", "", "Custom template id")
	cmd.AddCommand(newCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a recorded patient",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			session := patient.NewSession(a.api, a.api, a.log)
			res := session.Load(cmd.Context(), args[0])
			if err := resultErr(res.Success, res.Error); err != nil {
				return err
			}
			return runIntake(cmd, session)
		}),
	})

	return cmd
}

// runIntake shows the forms until the session submits or the user aborts.
func runIntake(cmd *cobra.Command, s *patient.Session) error {
	ctx := cmd.Context()
	for {
		intake := tui.NewIntakeForm(s.Store())
		groups := intake.Groups()
		var custom *tui.TemplateForm
		if t, ok := s.Template(); ok {
			custom = tui.NewTemplateForm(t, s.Values(), s.Status())
			groups = append(groups, custom.Groups()...)
		}

		if err := huh.NewForm(groups...).WithTheme(tui.Theme()).RunWithContext(ctx); err != nil {
			return err
		}
		intake.Apply()
		if custom != nil {
			for name, raw := range custom.Values() {
				s.SetValue(name, raw)
			}
			if st := custom.Status(); st != "" {
				if err := s.SetStatus(st); err != nil {
					return err
				}
			}
		}

		res := s.Submit(ctx)
		if res.Success {
			fmt.Fprint(cmd.OutOrStdout(), tui.RecordSummary(res.Data))
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), tui.ErrorStyle.Render(res.Error))
		if !retry(ctx) {
			return fmt.Errorf("patient not saved: %s", res.Error)
		}
	}
}

func retry(ctx context.Context) bool {
	again := true
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Edit and try again?").Value(&again),
	)).WithTheme(tui.Theme()).RunWithContext(ctx)
	return err == nil && again
}
