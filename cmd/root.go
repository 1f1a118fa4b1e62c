package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go/option"
	"github.com/spf13/cobra"

	"github.com/syedahmad/aireply/internal/config"
	"github.com/syedahmad/aireply/internal/genai"
	"github.com/syedahmad/aireply/internal/gmail"
	"github.com/syedahmad/aireply/internal/instrumentation"
	"github.com/syedahmad/aireply/internal/logging"
	"github.com/syedahmad/aireply/internal/session"
)

// rootCmd represents the base command for the aireply application
var rootCmd = &cobra.Command{
	Use:   "aireply",
	Short: "AI-assisted Gmail client",
	Long: `aireply reads your Gmail inbox and drafts replies with an AI assistant.

Sign in with a Gmail access token, browse your inbox and threads, and let
the assistant generate reply drafts and summaries for any conversation.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

var configPath string

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "aireply version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/aireply/config.yaml)")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newInboxCmd())
	rootCmd.AddCommand(newThreadCmd())
	rootCmd.AddCommand(newReplyCmd())
	rootCmd.AddCommand(newDraftsCmd())
	rootCmd.AddCommand(newSummarizeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aireply version %s\n", version)
		},
	}
}

// app bundles the wired-up collaborators every command needs.
type app struct {
	cfg      *config.Config
	session  *session.Session
	provider *instrumentation.Provider
}

// newApp loads configuration, sets up logging and instrumentation, wires
// the gateways into a session, and attempts to restore a previous
// sign-in.
func newApp(ctx context.Context) (*app, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(cfg.LogLevel)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	if provider.Enabled() {
		logger.Debug("instrumentation enabled",
			slog.String("service", instrConfig.ServiceName),
			slog.String("metrics_exporter", instrConfig.MetricsExporter),
			slog.String("tracing_exporter", instrConfig.TracingExporter),
		)
	}

	var requestOpts []option.RequestOption
	if cfg.OpenAI.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	generator := genai.NewClient(cfg.OpenAI.APIKey, requestOpts,
		genai.WithModel(cfg.OpenAI.Model),
		genai.WithLogger(logger),
	)

	store := session.NewKeyringStore(cfg.Keyring.Service, expandHome(cfg.Keyring.FileDir))
	sess := session.New(session.Config{
		Store: store,
		NewMailGateway: func(token string) session.MailGateway {
			opts := []gmail.Option{gmail.WithLogger(logger)}
			if cfg.Gmail.BaseURL != "" {
				opts = append(opts, gmail.WithBaseURL(cfg.Gmail.BaseURL))
			}
			return gmail.NewClient(token, opts...)
		},
		Generator: generator,
		Logger:    logger,
		Metrics:   provider.Metrics(),
	})
	sess.RestoreSession()

	return &app{cfg: cfg, session: sess, provider: provider}, nil
}

func (a *app) shutdown(ctx context.Context) {
	_ = a.provider.Shutdown(ctx)
}

func (a *app) requireSignIn() error {
	if !a.session.SignedIn() {
		return fmt.Errorf("not signed in: run 'aireply login' first")
	}
	return nil
}

// latestThreadMessage fetches a thread and returns its most recent
// message, the one a reply or summary targets.
func (a *app) latestThreadMessage(ctx context.Context, threadID string) (gmail.Message, error) {
	messages := a.session.FetchThread(ctx, threadID)
	if len(messages) == 0 {
		return gmail.Message{}, fmt.Errorf("thread %s has no readable messages", threadID)
	}
	return messages[len(messages)-1], nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
