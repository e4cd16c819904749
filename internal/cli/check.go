package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetdash/internal/ingest"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Ingest the data directory and report per-file errors",
	Long: "check runs a full ingestion pass without serving anything. Every file\n" +
		"error lands on stderr; the exit code is non-zero when no file loaded.",
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, policy, err := loadConfig()
	if err != nil {
		return err
	}

	loader := ingest.NewLoader(cfg.DataDir, policy)
	ds := loader.Load(cmd.Context())

	for _, e := range ds.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", e)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Months loaded: %d\n", len(ds.Summary))
	fmt.Fprintf(cmd.OutOrStdout(), "Transactions:  %d\n", len(ds.Transactions))
	for _, s := range ds.Summary {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-10s income %.2f, expenses %.2f, investments %.2f, surplus %.2f\n",
			s.Month, s.TotalIncome, s.TotalExpenses, s.Investments, s.Surplus)
	}

	if len(ds.Summary) == 0 {
		return fmt.Errorf("no usable workbooks in %s", cfg.DataDir)
	}
	return nil
}
