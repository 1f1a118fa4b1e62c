package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a Gmail access token",
		Long: `Sign in using an OAuth access token for the Gmail API.

The token is obtained through your own OAuth flow (for example the OAuth
playground or gcloud) and stored in the system keyring so later commands
can resume the session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.shutdown(ctx)

			if token == "" {
				token = os.Getenv("GMAIL_ACCESS_TOKEN")
			}
			if token == "" {
				return fmt.Errorf("no token provided: use --token or set GMAIL_ACCESS_TOKEN")
			}
			if err := app.session.SignIn(token); err != nil {
				return err
			}
			fmt.Println("Signed in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Gmail API access token. Can also use GMAIL_ACCESS_TOKEN env var.")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.shutdown(ctx)

			app.session.SignOut()
			fmt.Println("Signed out.")
			return nil
		},
	}
}
