package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinicdesk/internal/model"
	apperrors "github.com/jwalitptl/clinicdesk/pkg/errors"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a patient export",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			filter := model.ExportFilter{}
			filter.From, _ = cmd.Flags().GetString("from")
			filter.To, _ = cmd.Flags().GetString("to")
			filter.Format, _ = cmd.Flags().GetString("format")
			filter.TemplateID, _ = cmd.Flags().GetString("template")
			filter.Status, _ = cmd.Flags().GetString("status")
			if err := validator.New().Validate(filter); err != nil {
				return err
			}

			blob, err := a.api.ExportPatients(cmd.Context(), filter)
			if err != nil {
				return errors.New(apperrors.Message(err, "Failed to export patients"))
			}

			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				out = blob.Filename
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(blob.Data)
				return err
			}
			if err := os.WriteFile(out, blob.Data, 0o600); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			a.log.Info("export saved", "file", out, "bytes", len(blob.Data), "content_type", blob.ContentType)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", filepath.Clean(out))
			return nil
		}),
	}
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("format", "csv", "csv, xlsx or pdf")
	cmd.Flags().String("template", "", "Only patients recorded with this template")
	cmd.Flags().String("status", "", "Only patients with this status")
	cmd.Flags().StringP("output", "o", "", "Output file; - for stdout")
	return cmd
}
