package commands

import (
	"github.com/spf13/cobra"
)

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	}
}

func serve(opts *options) error {
	app, cleanup, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run()
}
