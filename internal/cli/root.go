// Package cli implements the loyadm terminal client for the loyalty admin API.
package cli

import (
	"fmt"
	"os"
	"time"

	"loyaltyadmin/internal/apiclient"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	serverURL string
	verbose   bool

	cfg    Config
	logger zerolog.Logger
)

// NewRootCmd creates the loyadm root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "loyadm",
		Short: "Terminal client for the loyalty program admin API",
		Long: `loyadm browses and edits the loyalty program's admin collections
(investors, customers, managers, rewards, invoices and the audit trail)
against a running backend.

Sort preferences are remembered per collection between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()

			var err error
			cfg, err = LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.Server = serverURL
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Admin API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows request logs)")

	rootCmd.AddCommand(
		newInvestorsCmd(),
		newCustomersCmd(),
		newManagersCmd(),
		newRewardsCmd(),
		newInvoicesCmd(),
		newLogsCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newAPIClient() *apiclient.Client {
	return apiclient.New(apiclient.Config{
		BaseURL:  cfg.Server,
		Timeout:  15 * time.Second,
		Logger:   logger,
		UserName: cfg.User,
	})
}
