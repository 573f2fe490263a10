// Package cli implements the bialog command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bialog/bialog/internal/config"
	"github.com/bialog/bialog/internal/logging"
	"github.com/bialog/bialog/internal/tui"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Persistent flag names.
const (
	flagDebug       = "debug"
	flagConfig      = "config"
	flagToken       = "token"
	flagAPIEndpoint = "api-endpoint"
)

// NewRootCmd creates the root Cobra command for the bialog CLI. Running it
// without a subcommand opens the home screen.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "bialog",
		Short:         "びあログ terminal client",
		Long:          "bialog: browse your purchase history, favorite brands and beer preferences from the terminal",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, false); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd, tui.AppOptions{Start: tui.TargetHome})
		},
	}

	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging to stderr")
	cmd.PersistentFlags().String(flagConfig, "", "config file (default ~/.bialog/config.yaml)")
	cmd.PersistentFlags().String(flagToken, "", "access token to use instead of the stored credentials")
	cmd.PersistentFlags().String(flagAPIEndpoint, "", "backend base URL (overrides config and BIALOG_API_ENDPOINT)")

	cmd.AddCommand(
		NewPurchaselogCmd(),
		NewProfileCmd(),
		NewLoginCmd(),
		NewLogoutCmd(),
		newConfigCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Open the home screen
  bialog

  # Sign in and store the token in ~/.bialog/credentials.json
  bialog login --username hanako --password secret

  # Browse purchase history starting at page 3
  bialog purchaselog --page 3

  # Print one page as JSON
  bialog purchaselog --page 2 --output json | jq .

  # Add a favorite brand
  bialog profile favorite add "Yona Yona Ale"

  # Write the default configuration
  bialog config init`

// loadConfig reads the effective configuration and applies flag overrides.
// With allowMissing, a --config file that does not exist yet yields the
// defaults instead of an error.
func loadConfig(cmd *cobra.Command, allowMissing bool) error {
	path, _ := cmd.Flags().GetString(flagConfig)
	if allowMissing && path != "" {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if endpoint, _ := cmd.Flags().GetString(flagAPIEndpoint); endpoint != "" {
		cfg.API.Endpoint = endpoint
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// newConfigCmd creates the config command group. Its subcommands run before a
// config file exists, so a missing --config file is tolerated.
func newConfigCmd() *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, true); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
