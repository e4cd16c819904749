// Package workbook reads the monthly .xlsx files with excelize and shields
// the ingestion pipeline from spreadsheet quirks: variable sheet layouts,
// unnamed columns, ragged rows and serial-number dates.
package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrNoUsableSheet is returned when a workbook exposes no sheet at all.
var ErrNoUsableSheet = errors.New("workbook has no usable sheet")

// transactionSheetName is preferred when the workbook has a single sheet
// carrying this name.
const transactionSheetName = "Transactions"

// Row is one raw spreadsheet row keyed by header name. Values are the
// formatted cell strings; typing happens at the normalization boundary.
type Row map[string]string

// Workbook wraps an open excelize file.
type Workbook struct {
	file *excelize.File
	path string
}

// Open opens the workbook at path. The caller must Close it.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, path: path}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// transactionSheet picks the sheet holding transactions: the second sheet
// when there are at least two, else a sheet literally named "Transactions",
// else the first sheet.
func (w *Workbook) transactionSheet() (string, error) {
	sheets := w.file.GetSheetList()
	if len(sheets) >= 2 {
		return sheets[1], nil
	}
	for _, name := range sheets {
		if name == transactionSheetName {
			return name, nil
		}
	}
	if len(sheets) > 0 {
		return sheets[0], nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoUsableSheet, w.path)
}

// TransactionRows extracts the header and data rows from the transaction
// sheet. The header comes from the non-empty cells of row 0; columns with
// an empty header cell are dropped entirely. Fully blank data rows are
// skipped.
func (w *Workbook) TransactionRows() (header []string, rows []Row, sheetName string, err error) {
	sheetName, err = w.transactionSheet()
	if err != nil {
		return nil, nil, "", err
	}

	raw, err := w.file.GetRows(sheetName)
	if err != nil {
		return nil, nil, "", fmt.Errorf("read sheet %q of %s: %w", sheetName, w.path, err)
	}
	if len(raw) == 0 {
		return nil, nil, sheetName, nil
	}

	// Column index -> header name, skipping unnamed columns.
	names := make(map[int]string)
	for idx, cell := range raw[0] {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		names[idx] = name
		header = append(header, name)
	}

	for _, cells := range raw[1:] {
		row := make(Row, len(names))
		blank := true
		for idx, name := range names {
			v := ""
			if idx < len(cells) {
				v = strings.TrimSpace(cells[idx])
			}
			if v != "" {
				blank = false
			}
			row[name] = v
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}
	return header, rows, sheetName, nil
}

// IncomeAnchor probes a single numeric cell on the first sheet, addressed
// by zero-indexed row and column. It reports ok=false when the cell is
// absent, out of range or non-numeric; the caller decides the fallback.
func (w *Workbook) IncomeAnchor(row, col int) (float64, bool) {
	sheets := w.file.GetSheetList()
	if len(sheets) == 0 {
		return 0, false
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return 0, false
	}
	v, err := w.file.GetCellValue(sheets[0], cell)
	if err != nil {
		return 0, false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	income, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return income, true
}

// ParseDate parses a cell value as a calendar date, honoring the
// workbook's 1904 date system for serial numbers.
func (w *Workbook) ParseDate(value string) (time.Time, bool) {
	return ParseCellDate(value, w.date1904())
}

func (w *Workbook) date1904() bool {
	props, err := w.file.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}
