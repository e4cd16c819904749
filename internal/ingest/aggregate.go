package ingest

import (
	"sort"
	"time"

	"budgetdash/internal/core"
)

// aggregate merges the per-file results into one dataset. Transactions are
// concatenated in month-processing order with relative order preserved;
// summary rows follow the same order; the category matrix has categories
// as lexicographically sorted rows and the given months as columns, with
// absent (category, month) pairs holding 0.
func aggregate(results []fileResult, months []string) *core.Dataset {
	if months == nil {
		months = []string{}
	}

	summary := make([]core.MonthSummary, 0, len(results))
	transactions := make([]core.Transaction, 0)
	byMonth := make(map[string]map[string]float64, len(results))

	for _, res := range results {
		transactions = append(transactions, res.Txns...)
		summary = append(summary, core.MonthSummary{
			Month:              res.Stats.Month,
			TotalIncome:        res.Stats.Income,
			TotalExpenses:      res.Stats.RegularExpenses,
			Investments:        res.Stats.Investments,
			Surplus:            res.Stats.Surplus,
			TopExpenseCategory: res.Stats.TopCategory,
			TopExpenseAmount:   res.Stats.TopAmount,
		})

		totals := byMonth[res.Stats.Month]
		if totals == nil {
			totals = map[string]float64{}
			byMonth[res.Stats.Month] = totals
		}
		for _, tx := range res.Txns {
			if tx.IsInvestment() {
				continue
			}
			totals[tx.Category] += tx.Amount
		}
	}

	categorySet := map[string]struct{}{}
	for _, totals := range byMonth {
		for c := range totals {
			categorySet[c] = struct{}{}
		}
	}
	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	rows := make([]core.CategoryRow, 0, len(categories))
	for _, category := range categories {
		amounts := make([]float64, len(months))
		for i, month := range months {
			if totals, ok := byMonth[month]; ok {
				amounts[i] = totals[category]
			}
		}
		rows = append(rows, core.CategoryRow{Category: category, Amounts: amounts})
	}

	return &core.Dataset{
		Summary:      summary,
		Transactions: transactions,
		Matrix:       core.CategoryMatrix{Months: months, Rows: rows},
		LoadedAt:     time.Now(),
	}
}
