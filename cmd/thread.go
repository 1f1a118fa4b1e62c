package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/syedahmad/aireply/internal/gmail"
)

func newThreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "thread <thread-id>",
		Short: "Show a full conversation",
		Long: `Fetch every message of a conversation and print them oldest
first, the way the conversation reads.`,
		Args: cobra.ExactArgs(1),
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

			messages := app.session.FetchThread(ctx, args[0])
			if len(messages) == 0 {
				fmt.Println("Thread not available.")
				return nil
			}

			now := time.Now()
			for i, m := range messages {
				if i > 0 {
					fmt.Println()
				}
				fmt.Printf("From: %s\n", m.From)
				fmt.Printf("Date: %s\n", gmail.FormatDisplayDate(m.InternalDate, now))
				fmt.Printf("Subject: %s\n\n", m.Subject)
				fmt.Println(m.Body())
			}
			return nil
		},
	}
}
