package ingest

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"budgetdash/internal/config"
	"budgetdash/internal/core"
)

// writeMonthWorkbook builds a two-sheet workbook in the stock template
// shape: a Dashboard sheet (optionally carrying the income anchor at O3)
// and a Transactions sheet with the given header and rows.
func writeMonthWorkbook(t *testing.T, dir, stem string, header []string, rows [][]interface{}, income *float64) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Dashboard"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Transactions"); err != nil {
		t.Fatal(err)
	}
	if income != nil {
		if err := f.SetCellValue("Dashboard", "O3", *income); err != nil {
			t.Fatal(err)
		}
	}

	h := make([]interface{}, len(header))
	for i, name := range header {
		h[i] = name
	}
	if err := f.SetSheetRow("Transactions", "A1", &h); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Transactions", cell, &r); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.SaveAs(filepath.Join(dir, stem+".xlsx")); err != nil {
		t.Fatal(err)
	}
}

func fullHeader() []string {
	return []string{"Date", "Description", "Category", "Amount", "Who", "Whom", "Label"}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	income := 5000.0

	writeMonthWorkbook(t, dir, "Mar", fullHeader(), [][]interface{}{
		{"2025-03-05", "Groceries", "Food", 500.0, "Self", "Supermart", "N"},
		{"2025-03-10", "SIP", "Investment - Mutual Funds", 2000.0, "Self", "Broker", ""},
	}, &income)
	writeMonthWorkbook(t, dir, "Jan", fullHeader(), [][]interface{}{
		{"2025-01-02", "Rent", "Housing", 1000.0, "Self", "Landlord", "N"},
	}, nil)
	// Missing the Amount column: fatal for this file only.
	writeMonthWorkbook(t, dir, "Feb", []string{"Category", "Label"}, [][]interface{}{
		{"Food", "N"},
	}, nil)
	// Unreadable file: not a real workbook.
	if err := os.WriteFile(filepath.Join(dir, "Apr.xlsx"), []byte("not a workbook"), 0644); err != nil {
		t.Fatal(err)
	}
	// Reserved template names are never ingested.
	writeMonthWorkbook(t, dir, "Template", fullHeader(), [][]interface{}{
		{"2025-01-01", "Sample", "Sample", 1.0, "Self", "Nobody", "N"},
	}, nil)
	// Non-xlsx files are ignored entirely.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir, config.DefaultPolicy())
	ds := loader.Load(context.Background())

	// Two valid months, in chronological order.
	if len(ds.Summary) != 2 {
		t.Fatalf("summary rows = %d, want 2 (ledger: %v)", len(ds.Summary), ds.Errors)
	}
	if ds.Summary[0].Month != "January" || ds.Summary[1].Month != "March" {
		t.Errorf("summary order = %q, %q; want January, March", ds.Summary[0].Month, ds.Summary[1].Month)
	}

	// January: no anchor, fallback income 1000 * 1.5.
	jan := ds.Summary[0]
	if jan.TotalIncome != 1500 || jan.TotalExpenses != 1000 || jan.Surplus != 500 {
		t.Errorf("January summary = %+v", jan)
	}
	// March: anchored income, investments excluded from expenses.
	mar := ds.Summary[1]
	if mar.TotalIncome != 5000 || mar.TotalExpenses != 500 || mar.Investments != 2000 || mar.Surplus != 4500 {
		t.Errorf("March summary = %+v", mar)
	}
	if mar.TopExpenseCategory != "Food" || mar.TopExpenseAmount != 500 {
		t.Errorf("March top = %q/%v", mar.TopExpenseCategory, mar.TopExpenseAmount)
	}

	// Transactions concatenated in month order; none from failed or
	// template files.
	if len(ds.Transactions) != 3 {
		t.Fatalf("transactions = %d, want 3", len(ds.Transactions))
	}
	for _, tx := range ds.Transactions {
		if tx.Category == "Sample" {
			t.Error("template file was ingested")
		}
	}
	if ds.Transactions[1].Label != core.LabelNeeds || ds.Transactions[2].Label != core.LabelSavings {
		t.Errorf("labels = %q, %q; want Needs, Savings (auto)", ds.Transactions[1].Label, ds.Transactions[2].Label)
	}

	// Two ledger entries, each naming its file; the batch survived both.
	if len(ds.Errors) != 2 {
		t.Fatalf("ledger = %v, want 2 entries", ds.Errors)
	}
	joined := strings.Join(ds.Errors, "\n")
	if !strings.Contains(joined, "Feb.xlsx") || !strings.Contains(joined, "Amount") {
		t.Errorf("ledger should name Feb.xlsx and the missing column: %v", ds.Errors)
	}
	if !strings.Contains(joined, "Apr.xlsx") {
		t.Errorf("ledger should name the unreadable Apr.xlsx: %v", ds.Errors)
	}

	// Matrix columns include failed months as zero columns.
	wantMonths := []string{"January", "February", "March", "April"}
	if !reflect.DeepEqual(ds.Matrix.Months, wantMonths) {
		t.Errorf("matrix months = %v, want %v", ds.Matrix.Months, wantMonths)
	}
	if got := ds.Matrix.Cell("Food", "March"); got != 500 {
		t.Errorf("Cell(Food, March) = %v, want 500", got)
	}
	if got := ds.Matrix.Cell("Food", "January"); got != 0 {
		t.Errorf("Cell(Food, January) = %v, want 0", got)
	}
	if got := ds.Matrix.Cell("Housing", "February"); got != 0 {
		t.Errorf("Cell(Housing, February) = %v, want 0 (failed month)", got)
	}
	// Investment categories never appear as matrix rows.
	for _, row := range ds.Matrix.Rows {
		if strings.HasPrefix(row.Category, core.InvestmentPrefix) {
			t.Errorf("investment category %q leaked into the matrix", row.Category)
		}
	}
}

func TestLoader_Determinism(t *testing.T) {
	dir := t.TempDir()
	writeMonthWorkbook(t, dir, "Jan", fullHeader(), [][]interface{}{
		{"2025-01-02", "Rent", "Housing", 1000.0, "Self", "Landlord", "N"},
		{"2025-01-05", "Groceries", "Food", 500.0, "Self", "Supermart", ""},
	}, nil)
	writeMonthWorkbook(t, dir, "Feb", fullHeader(), [][]interface{}{
		{"2025-02-02", "Rent", "Housing", 1000.0, "Self", "Landlord", "N"},
	}, nil)

	loader := NewLoader(dir, config.DefaultPolicy())
	first := loader.Load(context.Background())
	second := loader.Load(context.Background())

	if !reflect.DeepEqual(first.Summary, second.Summary) {
		t.Error("summary differs between identical passes")
	}
	if !reflect.DeepEqual(first.Transactions, second.Transactions) {
		t.Error("corpus differs between identical passes")
	}
	if !reflect.DeepEqual(first.Matrix, second.Matrix) {
		t.Error("matrix differs between identical passes")
	}
	if !reflect.DeepEqual(first.Errors, second.Errors) {
		t.Error("ledger differs between identical passes")
	}
}

func TestLoader_NoValidFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Jan.xlsx"), []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir, config.DefaultPolicy())
	ds := loader.Load(context.Background())

	// Empty but fully shaped: no nils for downstream code to trip on.
	if ds.Summary == nil || ds.Transactions == nil || ds.Matrix.Rows == nil || ds.Matrix.Months == nil {
		t.Error("empty dataset must be shaped, not nil")
	}
	if len(ds.Summary) != 0 || len(ds.Transactions) != 0 || len(ds.Matrix.Rows) != 0 {
		t.Errorf("dataset should be empty: %+v", ds)
	}
	if len(ds.Errors) == 0 {
		t.Error("ledger must be non-empty when nothing loaded")
	}
}

func TestLoader_EmptyDirectory(t *testing.T) {
	loader := NewLoader(t.TempDir(), config.DefaultPolicy())
	ds := loader.Load(context.Background())
	if len(ds.Errors) == 0 {
		t.Error("ledger must be non-empty when there are no files at all")
	}
	if len(ds.Matrix.Months) != 0 {
		t.Errorf("matrix months = %v, want none", ds.Matrix.Months)
	}
}

func TestLoader_MissingDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope"), config.DefaultPolicy())
	ds := loader.Load(context.Background())
	if len(ds.Errors) == 0 {
		t.Error("unreadable data directory must land in the ledger")
	}
}
