// Package cli implements the andiamo admin command-line frontend.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/andiamoid/andiamo-admin/internal/client/config"
	"github.com/andiamoid/andiamo-admin/internal/logging"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	authMode   string
	jsonOutput bool
	verbose    bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "andiamo",
	Short: "Admin CLI for the Andiamo.id jastip backend",
	Long: `andiamo is the command-line admin frontend for the Andiamo.id jastip service.

The session persists between invocations in a local store, so a single login
carries over until logout or until the backend rejects the credential.

Environment Variables:
  ANDIAMO_API_BASE_URL  Backend API base URL (default: http://localhost:8000/api)
  ANDIAMO_AUTH_MODE     Auth mode, token or cookie (default: token)
  ANDIAMO_DATA_DIR      Directory for the local credential store (default: .)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API base URL (overrides ANDIAMO_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&authMode, "auth-mode", "", "Auth mode: token or cookie (overrides ANDIAMO_AUTH_MODE)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose diagnostics on stderr")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if authMode != "" {
		mode, err := config.ParseAuthMode(authMode)
		if err != nil {
			return nil, err
		}
		cfg.AuthMode = mode
	}
	return cfg, nil
}

func newLogger() logging.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return logging.NewTextLogger(os.Stderr, level)
}

// run adapts a command body to cobra: signal-aware context, app setup and
// teardown, exit code. Command output goes to stdout, diagnostics to stderr.
func run(body func(ctx context.Context, w io.Writer, app *App, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		app, err := NewApp(ctx, cfg, newLogger())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		code := body(ctx, os.Stdout, app, args)
		_ = app.Close()
		if code != 0 {
			os.Exit(code)
		}
	}
}
