package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ncobase/voxtask/internal/service"
	"github.com/spf13/cobra"
)

func newTriggerCommand(opts *options) *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:   "trigger [workflow]",
		Short: "Trigger an n8n workflow",
		Example: `  voxtask trigger daily-summary
  voxtask trigger task-reminder --data '{"manual":true}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := map[string]any{}
			if payload != "" {
				if err := json.Unmarshal([]byte(payload), &data); err != nil {
					return fmt.Errorf("invalid --data: %w", err)
				}
			}

			app, cleanup, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			res, err := app.Services().Webhook.Trigger(ctx, &service.TriggerRequest{WorkflowID: args[0], Data: data})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVarP(&payload, "data", "d", "", "JSON object passed to the workflow")
	return cmd
}
