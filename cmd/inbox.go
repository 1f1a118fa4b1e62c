package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/syedahmad/aireply/internal/gmail"
)

func newInboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "List the latest inbox conversations",
		Long: `Fetch the most recent inbox threads and print one row per
conversation: the latest message of each thread, newest listing first.
Unread conversations are marked with '*'.`,
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

			rows, err := app.session.FetchInbox(ctx)
			if err != nil {
				return fmt.Errorf("%s", app.session.LastError())
			}
			if len(rows) == 0 {
				fmt.Println("Inbox is empty.")
				return nil
			}

			now := time.Now()
			for _, m := range rows {
				marker := " "
				if m.IsUnread {
					marker = "*"
				}
				fmt.Printf("%s %-10s %-28s %s\n",
					marker,
					gmail.FormatDisplayDate(m.InternalDate, now),
					truncate(m.From, 28),
					m.Subject,
				)
				fmt.Printf("  thread %s  %s\n", m.ThreadID, truncate(m.Snippet, 80))
			}
			return nil
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
