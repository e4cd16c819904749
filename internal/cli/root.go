// Package cli wires the command-line surface: serving the dashboard,
// one-shot exports, batch checks and template generation.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"budgetdash/internal/config"
)

var (
	flagDataDir    string
	flagPort       string
	flagPolicyFile string
)

var rootCmd = &cobra.Command{
	Use:   "budgetdash",
	Short: "Personal finance dashboard over monthly spreadsheet workbooks",
	Long: "budgetdash ingests one .xlsx workbook per month from a data directory,\n" +
		"normalizes the transactions and serves summaries, a category matrix and\n" +
		"label editing over HTTP.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the monthly workbooks (overrides DATA_DIR)")
	rootCmd.PersistentFlags().StringVarP(&flagPort, "port", "p", "", "HTTP listen port (overrides PORT)")
	rootCmd.PersistentFlags().StringVar(&flagPolicyFile, "policy-file", "", "TOML file overriding the ingest policy (overrides POLICY_FILE)")
}

// loadConfig resolves configuration from .env, the environment and flags,
// in increasing order of precedence, and validates the result.
func loadConfig() (*config.Config, config.Policy, error) {
	// Missing .env files are fine; the environment still applies.
	_ = godotenv.Load()

	cfg := config.Load()
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagPort != "" {
		cfg.Port = flagPort
	}
	if flagPolicyFile != "" {
		cfg.PolicyFile = flagPolicyFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, config.Policy{}, err
	}

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return nil, config.Policy{}, err
	}

	setupLogger(cfg.LogLevel)
	return cfg, policy, nil
}

func setupLogger(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
}
