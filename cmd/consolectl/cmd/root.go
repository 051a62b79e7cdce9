// Package cmd implements the consolectl CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/consolehq/go-console-client/gateway"
	"github.com/consolehq/go-console-client/internal/config"
	"github.com/consolehq/go-console-client/session"
	"github.com/consolehq/go-console-client/storage"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	// Global flags
	outputFormat string
	serverURL    string
	stateFile    string

	// Shared instances, built once per invocation
	cfg  config.Config
	api  gateway.Client
	ctrl *session.Controller
)

var rootCmd = &cobra.Command{
	Use:   "consolectl",
	Short: "Admin console CLI",
	Long: `consolectl is a command-line client for the admin console API.

It authenticates against the console, keeps the session across invocations,
and exposes the permission-gated admin views (users, roles, invitees,
organizations) as commands. Switch organization context with 'org switch'.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}
		return initSession()
	},
}

// initSession wires config, persisted storage, the API client, and the
// session controller, then rehydrates any prior session from disk.
func initSession() error {
	cfg = config.New()

	base := serverURL
	if base == "" {
		base = cfg.GetBaseURL()
	}
	timeout, err := time.ParseDuration(cfg.GetHTTPTimeout())
	if err != nil {
		return fmt.Errorf("invalid %s: %w", "CONSOLE_HTTP_TIMEOUT", err)
	}
	api = gateway.NewHTTPClient(base, gateway.WithTimeout(timeout))

	path := stateFile
	if path == "" {
		path = cfg.GetStateFilePath()
	}
	store, err := storage.OpenFileStore(path)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}

	ctrl, err = session.New(session.Deps{Gateway: api, Store: store})
	if err != nil {
		return err
	}
	ctrl.Rehydrate()
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Console API base URL (default: $CONSOLE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&stateFile, "state", "", "Session state file (default: $CONSOLE_STATE_FILE)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func notAuthenticated() error {
	fmt.Fprintln(os.Stderr, "Error: Not authenticated.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Run 'consolectl login' to sign in.")
	os.Exit(2)
	return nil
}
