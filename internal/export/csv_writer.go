// Package export writes the canonical transaction corpus to CSV on
// explicit user request.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"budgetdash/internal/core"
)

// header is the CSV column order, matching the canonical transaction
// schema including the resolved label.
var header = []string{"Date", "Description", "Category", "Amount", "Who", "Whom", "Month", "Label"}

// CSVWriter writes transactions to a CSV file. It is safe for concurrent
// use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created
// automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends the transactions to the file.
func (c *CSVWriter) Write(txns []core.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tx := range txns {
		date := ""
		if !tx.Date.IsZero() {
			date = tx.Date.Format("2006-01-02")
		}
		row := []string{
			date,
			tx.Description,
			tx.Category,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			tx.Who,
			tx.Whom,
			tx.Month,
			string(tx.Label),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes buffered rows and closes the file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}

// WriteTransactions writes the whole corpus to path in one shot.
func WriteTransactions(path string, txns []core.Transaction) error {
	w, err := NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := w.Write(txns); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
