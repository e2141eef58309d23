package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinicdesk/internal/fakeapi"
	"github.com/jwalitptl/clinicdesk/internal/model"
)

func devServerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run an in-memory clinic backend for local use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			prefix, _ := cmd.Flags().GetString("prefix")
			log := newLogger(opts, "info").With("dev-server")

			fake := fakeapi.New(fakeapi.WithLogger(log), fakeapi.WithMetrics(prometheus.NewRegistry()))
			fake.SeedTemplates(demoTemplates()...)
			fake.SeedUsers(model.User{ID: "usr-admin", Name: "Admin", Email: "admin@clinic.local", Role: model.UserRoleAdmin, Active: true})

			var handler http.Handler = fake.Handler()
			if prefix = strings.TrimRight(prefix, "/"); prefix != "" {
				mux := http.NewServeMux()
				mux.Handle(prefix+"/", http.StripPrefix(prefix, fake.Handler()))
				mux.Handle("/", fake.Handler())
				handler = mux
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", "addr", addr, "prefix", prefix)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				log.Error(err, "server stopped")
				return err
			case <-cmd.Context().Done():
			}

			log.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("prefix", "/api/v1", "Path prefix the API is served under")
	return cmd
}

func demoTemplates() []model.Template {
	now := time.Now().UTC()
	return []model.Template{{
		ID:          "tpl-cardiology",
		Name:        "Cardiology follow-up",
		Description: "Cardiac history and plan",
		IsVisible:   true,
		IsDefault:   true,
		CreatedAt:   &now,
		UpdatedAt:   &now,
		Sections: []model.Section{
			{ID: "sec-history", Name: "history", Label: "History", Fields: []model.Field{
				{ID: "fld-pain", Name: "chest_pain_score", Label: "Chest pain score", Type: model.FieldNumber, Required: true, Order: 0},
				{ID: "fld-onset", Name: "onset_date", Label: "Onset date", Type: model.FieldDate, Order: 1},
				{ID: "fld-nyha", Name: "nyha_class", Label: "NYHA class", Type: model.FieldSelect, Options: []string{"I", "II", "III", "IV"}, Order: 2},
			}},
			{ID: "sec-plan", Name: "plan", Label: "Plan", Fields: []model.Field{
				{ID: "fld-cath", Name: "needs_cath", Label: "Needs catheterization", Type: model.FieldBoolean, Default: false, Order: 0},
				{ID: "fld-notes", Name: "plan_notes", Label: "Plan notes", Type: model.FieldTextarea, Order: 1},
			}},
		},
		StatusOptions: []model.PatientStatusOption{
			{ID: "st-waiting", Name: "waiting", Label: "Waiting", Color: "#f59e0b", IsDefault: true},
			{ID: "st-seen", Name: "seen", Label: "Seen", Color: "#22c55e"},
			{ID: "st-admitted", Name: "admitted", Label: "Admitted", Color: "#ef4444"},
		},
	}}
}
