package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSummaryCommand(opts *options) *cobra.Command {
	var (
		date string
		save bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the daily task summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			sum, err := app.Services().Agent.DailySummary(ctx, date, save)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sum.SummaryText)
			fmt.Fprintf(out, "\ntasks: %d  high priority: %d  completed: %d\n",
				sum.TaskCount, sum.HighPriorityCount, sum.CompletedCount)
			if sum.AudioURL != "" {
				fmt.Fprintf(out, "audio: %s\n", sum.AudioURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&save, "save", false, "store the summary in the daily summaries table")
	return cmd
}
