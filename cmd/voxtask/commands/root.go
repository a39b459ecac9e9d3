// Package commands implements the voxtask CLI.
package commands

import (
	"fmt"

	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/server"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
}

// NewRootCmd creates the root command. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "voxtask",
		Short:        "Voice driven task assistant backed by Airtable or Notion",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./config.yaml)")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newVersionCommand(),
		newTriggerCommand(opts),
		newSummaryCommand(opts),
	)

	return rootCmd
}

// bootstrap loads configuration and wires the application.
func bootstrap(opts *options) (*server.App, func(), error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	app, cleanup, err := server.InitializeApp(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return app, cleanup, nil
}
