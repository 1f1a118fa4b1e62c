package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReplyCmd() *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "reply <thread-id>",
		Short: "Send a reply on a conversation",
		Long: `Send a plain-text reply to the latest message of a conversation.

Without --body, the assistant generates reply drafts for the conversation
and the concise draft is sent.`,
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

			original, err := app.latestThreadMessage(ctx, args[0])
			if err != nil {
				return err
			}

			if body == "" {
				set, err := app.session.GenerateReplies(ctx, original.Body(), "")
				if err != nil {
					return fmt.Errorf("generating reply: %w", err)
				}
				body = set.Concise().Content
			}

			if err := app.session.SendReply(ctx, original, body); err != nil {
				return fmt.Errorf("sending reply: %w", err)
			}
			fmt.Println("Reply sent.")
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Reply text. Omit to send an AI-generated reply.")
	return cmd
}
