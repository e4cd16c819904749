package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetdash/internal/ingest"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Ingest the data directory and write the labeled-transactions CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output CSV path (overrides EXPORT_PATH)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, policy, err := loadConfig()
	if err != nil {
		return err
	}
	out := cfg.ExportPath
	if flagExportOut != "" {
		out = flagExportOut
	}

	session := ingest.NewSession(ingest.NewLoader(cfg.DataDir, policy))
	ds := session.Reload(cmd.Context())
	for _, e := range ds.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", e)
	}

	n, err := session.ExportCSV(out)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s\n", n, out)
	return nil
}
