package core

import "time"

type (
	// MonthSummary is one row of the month-level summary table. Investments
	// are excluded from TotalExpenses and reported separately.
	MonthSummary struct {
		Month              string  `json:"month"`
		TotalIncome        float64 `json:"total_income"`
		TotalExpenses      float64 `json:"total_expenses"`
		Investments        float64 `json:"investments"`
		Surplus            float64 `json:"surplus"`
		TopExpenseCategory string  `json:"top_expense_category"`
		TopExpenseAmount   float64 `json:"top_expense_amount"`
	}

	// CategoryRow is one matrix row: non-investment expense totals for a
	// category, aligned with CategoryMatrix.Months. Cells with no
	// transactions hold 0, never a missing value.
	CategoryRow struct {
		Category string    `json:"category"`
		Amounts  []float64 `json:"amounts"`
	}

	// CategoryMatrix is the month-by-category expense matrix. Months are in
	// chronological order, categories sorted lexicographically.
	CategoryMatrix struct {
		Months []string      `json:"months"`
		Rows   []CategoryRow `json:"rows"`
	}

	// Dataset is the immutable snapshot handed to the presentation layer.
	// It is rebuilt in full on every load and replaced wholesale; a
	// partially built dataset is never visible to readers.
	Dataset struct {
		Summary      []MonthSummary `json:"summary"`
		Transactions []Transaction  `json:"transactions"`
		Matrix       CategoryMatrix `json:"matrix"`
		Errors       []string       `json:"errors"`
		LoadedAt     time.Time      `json:"loaded_at"`
	}
)

// Cell returns the matrix value for a (category, month) pair; absent
// combinations are 0.
func (m CategoryMatrix) Cell(category, month string) float64 {
	col := -1
	for i, name := range m.Months {
		if name == month {
			col = i
			break
		}
	}
	if col < 0 {
		return 0
	}
	for _, row := range m.Rows {
		if row.Category == category {
			return row.Amounts[col]
		}
	}
	return 0
}
