package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syedahmad/aireply/internal/genai"
)

func newDraftsCmd() *cobra.Command {
	var notes string
	var send string

	cmd := &cobra.Command{
		Use:   "drafts <thread-id>",
		Short: "Generate three reply drafts for a conversation",
		Long: `Ask the assistant for three reply drafts to the latest message
of a conversation: concise, balanced, and detailed.

Notes steer the drafts ("decline politely", "propose Tuesday instead").
With --send, the chosen draft is sent immediately.`,
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

			set, err := app.session.GenerateReplies(ctx, original.Body(), notes)
			if err != nil {
				return fmt.Errorf("generating drafts: %w", err)
			}

			drafts := map[string]genai.GeneratedReply{
				"concise":  set.Concise(),
				"balanced": set.Balanced(),
				"detailed": set.Detailed(),
			}

			if send != "" {
				draft, ok := drafts[send]
				if !ok {
					return fmt.Errorf("unknown draft %q: choose concise, balanced, or detailed", send)
				}
				if err := app.session.SendReply(ctx, original, draft.Content); err != nil {
					return fmt.Errorf("sending reply: %w", err)
				}
				fmt.Printf("Sent the %s draft.\n", send)
				return nil
			}

			for _, name := range []string{"concise", "balanced", "detailed"} {
				draft := drafts[name]
				fmt.Printf("--- %s ---\n", name)
				fmt.Printf("Subject: %s\n\n%s\n\n", draft.Subject, draft.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Guidance for the drafts, e.g. \"decline politely\".")
	cmd.Flags().StringVar(&send, "send", "", "Send one draft immediately: concise, balanced, or detailed.")
	return cmd
}
