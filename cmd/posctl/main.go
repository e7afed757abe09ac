package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spec-kit/pos-backoffice/internal/config"
)

var (
	sessionSecret string
	outputFormat  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "posctl",
		Short:         "POS back-office admin CLI",
		Long:          `posctl mints and inspects session tokens and hashes passwords for seeding accounts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&sessionSecret, "secret", "", "Session signing secret (env: AUTH_SESSION_SECRET)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json)")

	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(passwordCmd())
	return rootCmd
}

// resolveConfig loads the service configuration, letting --secret override
// the environment.
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if sessionSecret != "" {
		cfg.Auth.SessionSecret = sessionSecret
	}
	return cfg, nil
}
