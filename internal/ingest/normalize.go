// Package ingest turns raw workbook rows into the canonical transaction
// corpus: per-file normalization, cross-file aggregation and the owned
// dataset session. Failures stay inside the file they came from; the batch
// always finishes.
package ingest

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"budgetdash/internal/config"
	"budgetdash/internal/core"
	"budgetdash/internal/workbook"
)

var (
	ErrMissingColumn = errors.New("required column not found")
	ErrBadAmount     = errors.New("non-numeric amount")
)

// requiredColumns must exist in the source header; their absence is fatal
// for the file. The remaining canonical columns are optional and filled
// with policy defaults when absent.
var requiredColumns = []string{"Category", "Amount", "Label"}

type (
	// AnchorValue carries the income anchor cell probe result.
	AnchorValue struct {
		Value float64
		OK    bool
	}

	// DateParser parses a raw cell value as a calendar date. The workbook
	// supplies one that honors its own date system.
	DateParser func(string) (time.Time, bool)

	// FileStats are the per-file aggregates derived during normalization.
	FileStats struct {
		Month            string
		Income           float64
		RegularExpenses  float64
		Investments      float64
		Surplus          float64
		TopCategory      string
		TopAmount        float64
		IncomeFromAnchor bool
	}
)

// Normalize validates and converts one file's raw rows into canonical
// transactions stamped with the ingestion month, and computes the per-file
// aggregates. A returned error means the whole file is rejected; the
// caller records it and moves on.
func Normalize(header []string, rows []workbook.Row, month core.Month, anchor AnchorValue, parseDate DateParser, policy config.Policy) ([]core.Transaction, FileStats, error) {
	stats := FileStats{Month: month.Name, TopCategory: "Unknown"}

	has := make(map[string]bool, len(header))
	for _, name := range header {
		has[name] = true
	}
	for _, col := range requiredColumns {
		if !has[col] {
			return nil, stats, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	// Validate every label before converting anything, so one message can
	// list all offending values.
	invalid := map[string]struct{}{}
	for _, row := range rows {
		if _, err := core.ParseLabelCode(row["Label"]); err != nil {
			invalid[strings.ToUpper(strings.TrimSpace(row["Label"]))] = struct{}{}
		}
	}
	if len(invalid) > 0 {
		values := make([]string, 0, len(invalid))
		for v := range invalid {
			values = append(values, v)
		}
		sort.Strings(values)
		return nil, stats, fmt.Errorf("%w: invalid label values: %s (accepted codes: %s)",
			core.ErrInvalidLabel, strings.Join(values, ", "), strings.Join(core.ValidLabelCodes(), ", "))
	}

	defaultDate := firstOfMonth(month, policy)
	txns := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		label, _ := core.ParseLabelCode(row["Label"]) // validated above

		amount, err := parseAmount(row["Amount"])
		if err != nil {
			return nil, stats, err
		}

		tx := core.Transaction{
			Category: strings.TrimSpace(row["Category"]),
			Amount:   amount,
			Label:    label,
			Month:    month.Name,
		}

		// The month comes from ingestion context; a date cell only refines
		// the day. Unparsable or absent dates fall back to the 1st of the
		// ingestion month in the policy year.
		tx.Date = defaultDate
		if has["Date"] {
			if d, ok := parseDate(row["Date"]); ok {
				tx.Date = d
			}
		}

		if has["Description"] {
			tx.Description = strings.TrimSpace(row["Description"])
		} else {
			tx.Description = tx.Category + " expense"
		}
		if has["Who"] {
			tx.Who = strings.TrimSpace(row["Who"])
		} else {
			tx.Who = core.DefaultWho
		}
		if has["Whom"] {
			tx.Whom = strings.TrimSpace(row["Whom"])
		} else {
			tx.Whom = core.DefaultWhom
		}

		txns = append(txns, tx)
	}

	core.ApplyInvestmentOverride(txns)

	categoryTotals := map[string]float64{}
	for _, tx := range txns {
		if tx.IsInvestment() {
			stats.Investments += tx.Amount
			continue
		}
		stats.RegularExpenses += tx.Amount
		categoryTotals[tx.Category] += tx.Amount
	}

	if anchor.OK {
		stats.Income = anchor.Value
		stats.IncomeFromAnchor = true
	} else {
		stats.Income = stats.RegularExpenses * policy.IncomeFallbackRatio
	}
	stats.Surplus = stats.Income - stats.RegularExpenses

	// Top regular-expense category; sorted iteration keeps ties
	// deterministic.
	if len(categoryTotals) > 0 {
		categories := make([]string, 0, len(categoryTotals))
		for c := range categoryTotals {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		stats.TopCategory = categories[0]
		stats.TopAmount = categoryTotals[categories[0]]
		for _, c := range categories[1:] {
			if categoryTotals[c] > stats.TopAmount {
				stats.TopCategory = c
				stats.TopAmount = categoryTotals[c]
			}
		}
	}

	return txns, stats, nil
}

// parseAmount converts an Amount cell. An empty cell counts as zero; any
// other non-numeric value rejects the file.
func parseAmount(raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, nil
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, raw)
	}
	return amount, nil
}

// firstOfMonth is the default transaction date for a file: the 1st of its
// month in the policy year. Unrecognized months land on January.
func firstOfMonth(month core.Month, policy config.Policy) time.Time {
	m := time.January
	if month.Rank >= 1 && month.Rank <= 12 {
		m = time.Month(month.Rank)
	}
	return time.Date(policy.DefaultYear, m, 1, 0, 0, 0, 0, time.UTC)
}
