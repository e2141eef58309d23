package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	logLevel   string
	jsonLogs   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "clinicdesk",
		Short:         "Clinic patient management client",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to clinicdesk.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "Write logs as JSON")

	rootCmd.AddCommand(templatesCmd(opts))
	rootCmd.AddCommand(patientsCmd(opts))
	rootCmd.AddCommand(usersCmd(opts))
	rootCmd.AddCommand(exportCmd(opts))
	rootCmd.AddCommand(devServerCmd(opts))
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
