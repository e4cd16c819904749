package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"budgetdash/internal/config"
	"budgetdash/internal/core"
	"budgetdash/internal/workbook"
)

// TemplateFiles are reference documents living in the data directory; they
// are served for download but never ingested as data.
var TemplateFiles = map[string]bool{
	"Template.xlsx":      true,
	"BlankTemplate.xlsx": true,
}

type (
	// Loader runs one full ingestion pass over the data directory.
	Loader struct {
		dataDir string
		policy  config.Policy
	}

	// fileEntry is a discovered workbook with its resolved month.
	fileEntry struct {
		Path  string
		Month core.Month
	}

	// fileResult is one successfully normalized file.
	fileResult struct {
		Month core.Month
		Txns  []core.Transaction
		Stats FileStats
	}
)

func NewLoader(dataDir string, policy config.Policy) *Loader {
	return &Loader{dataDir: dataDir, policy: policy}
}

// discover lists the ingestable workbooks in chronological month order.
// Template files and non-.xlsx entries are skipped; unrecognized month
// stems sort last in stable discovery order.
func (l *Loader) discover() ([]fileEntry, error) {
	entries, err := os.ReadDir(l.dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data directory %s: %w", l.dataDir, err)
	}

	var files []fileEntry
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".xlsx") || TemplateFiles[name] {
			continue
		}
		stem := strings.TrimSuffix(name, ".xlsx")
		files = append(files, fileEntry{
			Path:  filepath.Join(l.dataDir, name),
			Month: core.ResolveMonth(stem),
		})
	}

	// Stable chronological order: calendar months first, unrecognized
	// stems after them in discovery order.
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Month.Rank < files[j].Month.Rank
	})
	return files, nil
}

// Load runs a complete ingestion pass and returns the new dataset. Every
// per-file failure becomes one ledger entry tagged with the path; nothing
// aborts the batch. With zero valid files the dataset is empty but fully
// shaped, and the ledger is guaranteed non-empty.
func (l *Loader) Load(ctx context.Context) *core.Dataset {
	var ledger []string

	files, err := l.discover()
	if err != nil {
		ledger = append(ledger, err.Error())
	}

	results := make([]fileResult, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			ledger = append(ledger, fmt.Sprintf("ingestion interrupted: %v", err))
			break
		}
		slog.Debug("Processing workbook", "path", f.Path, "month", f.Month.Name)
		res, err := l.loadFile(f)
		if err != nil {
			ledger = append(ledger, fmt.Sprintf("%s: %v", f.Path, err))
			slog.Warn("Workbook rejected", "path", f.Path, "error", err)
			continue
		}
		slog.Info("Workbook loaded",
			"path", f.Path,
			"month", res.Stats.Month,
			"transactions", len(res.Txns),
			"income", res.Stats.Income,
			"expenses", res.Stats.RegularExpenses,
			"investments", res.Stats.Investments,
			"income_from_anchor", res.Stats.IncomeFromAnchor)
		results = append(results, res)
	}

	// Matrix columns cover every discovered month, failed files included,
	// so a rejected month still shows up as a zero column instead of
	// silently vanishing from the table.
	months := make([]string, 0, len(files))
	seen := map[string]bool{}
	for _, f := range files {
		if !seen[f.Month.Name] {
			seen[f.Month.Name] = true
			months = append(months, f.Month.Name)
		}
	}

	if len(results) == 0 {
		ledger = append(ledger, "failed to load any data from Excel files, check file format and try again")
		ds := emptyDataset(months)
		ds.Errors = ledger
		return ds
	}

	ds := aggregate(results, months)
	ds.Errors = ledger
	return ds
}

// loadFile processes a single workbook to completion. Any error excludes
// exactly this file.
func (l *Loader) loadFile(f fileEntry) (fileResult, error) {
	wb, err := workbook.Open(f.Path)
	if err != nil {
		return fileResult{}, err
	}
	defer wb.Close()

	header, rows, sheetName, err := wb.TransactionRows()
	if err != nil {
		return fileResult{}, err
	}
	slog.Debug("Reading sheet", "path", f.Path, "sheet", sheetName, "rows", len(rows))

	anchorValue, anchorOK := wb.IncomeAnchor(l.policy.IncomeAnchorRow, l.policy.IncomeAnchorCol)
	txns, stats, err := Normalize(header, rows, f.Month, AnchorValue{Value: anchorValue, OK: anchorOK}, wb.ParseDate, l.policy)
	if err != nil {
		return fileResult{}, err
	}
	return fileResult{Month: f.Month, Txns: txns, Stats: stats}, nil
}

func emptyDataset(months []string) *core.Dataset {
	if months == nil {
		months = []string{}
	}
	return &core.Dataset{
		Summary:      []core.MonthSummary{},
		Transactions: []core.Transaction{},
		Matrix:       core.CategoryMatrix{Months: months, Rows: []core.CategoryRow{}},
		Errors:       []string{},
		LoadedAt:     time.Now(),
	}
}
