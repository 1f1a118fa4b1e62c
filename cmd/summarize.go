package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <thread-id>",
		Short: "Summarize the latest message of a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.shutdown(ctx)

			if err := app.requireSignIn(); err != nil {
				return err
			}

			original, err := app.latestThreadMessage(ctx, args[0])
			if err != nil {
				return err
			}

			summary, err := app.session.GenerateSummary(ctx, original.Body())
			if err != nil {
				return fmt.Errorf("summarizing: %w", err)
			}
			fmt.Println(summary.Content)
			return nil
		},
	}
}
