package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TransactionHeader is the canonical column order of the transaction sheet.
var TransactionHeader = []string{"Date", "Description", "Category", "Amount", "Who", "Whom", "Label"}

// sampleRows seed the non-blank template so the expected shapes are visible.
var sampleRows = [][]interface{}{
	{"2025-01-05", "Groceries", "Food", 500.0, "Self", "Supermart", "N"},
	{"2025-01-12", "Movie night", "Entertainment", 300.0, "Self", "Cinema", "W"},
	{"2025-01-20", "Index fund SIP", "Investment - Mutual Funds", 2000.0, "Self", "Broker", ""},
}

// WriteTemplate generates a monthly workbook template at path: a first
// "Dashboard" sheet carrying the income anchor cell and a second
// "Transactions" sheet with the canonical header. With blank=true the
// transaction sheet holds only the header.
//
// anchorRow/anchorCol are zero-indexed, matching config.Policy.
func WriteTemplate(path string, blank bool, anchorRow, anchorCol int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Dashboard"); err != nil {
		return fmt.Errorf("template: rename dashboard sheet: %w", err)
	}
	if _, err := f.NewSheet(transactionSheetName); err != nil {
		return fmt.Errorf("template: create transaction sheet: %w", err)
	}

	anchor, err := excelize.CoordinatesToCellName(anchorCol+1, anchorRow+1)
	if err != nil {
		return fmt.Errorf("template: anchor coordinates: %w", err)
	}
	label, err := excelize.CoordinatesToCellName(anchorCol, anchorRow+1) // one column left of the anchor
	if err != nil {
		return fmt.Errorf("template: anchor label coordinates: %w", err)
	}
	if err := f.SetCellValue("Dashboard", label, "Monthly Income"); err != nil {
		return fmt.Errorf("template: write anchor label: %w", err)
	}
	if err := f.SetCellValue("Dashboard", anchor, 0); err != nil {
		return fmt.Errorf("template: write anchor cell: %w", err)
	}

	header := make([]interface{}, len(TransactionHeader))
	for i, name := range TransactionHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(transactionSheetName, "A1", &header); err != nil {
		return fmt.Errorf("template: write header: %w", err)
	}
	if !blank {
		for i, row := range sampleRows {
			cell := fmt.Sprintf("A%d", i+2)
			r := row
			if err := f.SetSheetRow(transactionSheetName, cell, &r); err != nil {
				return fmt.Errorf("template: write sample row: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("template: save %s: %w", path, err)
	}
	return nil
}
