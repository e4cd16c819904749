package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"budgetdash/internal/workbook"
)

var flagTemplateBlank bool

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a monthly workbook template into the data directory",
	RunE:  runTemplate,
}

func init() {
	templateCmd.Flags().BoolVar(&flagTemplateBlank, "blank", false, "Omit the sample transactions")
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, _ []string) error {
	cfg, policy, err := loadConfig()
	if err != nil {
		return err
	}

	name := "Template.xlsx"
	if flagTemplateBlank {
		name = "BlankTemplate.xlsx"
	}
	path := filepath.Join(cfg.DataDir, name)

	if err := workbook.WriteTemplate(path, flagTemplateBlank, policy.IncomeAnchorRow, policy.IncomeAnchorCol); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
