package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	LabelNeeds      Label = "Needs"
	LabelWants      Label = "Wants"
	LabelLuxury     Label = "Luxury"
	LabelSavings    Label = "Savings"
	LabelInvestment Label = "Investment"
	LabelNone       Label = ""
)

// InvestmentPrefix marks categories that are excluded from regular expenses
// and auto-labeled as Savings.
const InvestmentPrefix = "Investment"

// Defaults substituted when an optional column is absent from the source.
const (
	DefaultWho  = "Unknown"
	DefaultWhom = "Vendor"
)

type (
	// Label is a budgeting classification, independent of the spreadsheet
	// category. The empty string means unlabeled.
	Label string

	// Transaction is the canonical, normalized unit. Month is attached at
	// ingestion from the source filename, never read from the sheet.
	Transaction struct {
		Date        time.Time `json:"date"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		Amount      float64   `json:"amount"`
		Who         string    `json:"who"`
		Whom        string    `json:"whom"`
		Label       Label     `json:"label"`
		Month       string    `json:"month"`
	}

	// EditKey identifies a transaction for label reconciliation. Edits from
	// a filtered or reordered table view are matched by this composite key,
	// never by row index.
	EditKey struct {
		Date        string
		Description string
		Amount      float64
		Who         string
	}
)

var ErrInvalidLabel = errors.New("invalid label value")

// labelCodes maps the short codes used in the spreadsheets to full labels.
var labelCodes = map[string]Label{
	"N": LabelNeeds,
	"W": LabelWants,
	"L": LabelLuxury,
	"S": LabelSavings,
	"I": LabelInvestment,
}

// ParseLabelCode maps a raw spreadsheet cell to a Label. Values are
// upper-cased first; blank, NAN and NONE all mean unlabeled. Anything else
// is an ErrInvalidLabel naming the offending value.
func ParseLabelCode(raw string) (Label, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case "", "NAN", "NONE":
		return LabelNone, nil
	}
	if l, ok := labelCodes[v]; ok {
		return l, nil
	}
	return LabelNone, fmt.Errorf("%w: %q", ErrInvalidLabel, raw)
}

// ParseLabel parses a full label name as used by the edit API. The empty
// string is accepted and clears the label.
func ParseLabel(name string) (Label, error) {
	switch Label(strings.TrimSpace(name)) {
	case LabelNeeds:
		return LabelNeeds, nil
	case LabelWants:
		return LabelWants, nil
	case LabelLuxury:
		return LabelLuxury, nil
	case LabelSavings:
		return LabelSavings, nil
	case LabelInvestment:
		return LabelInvestment, nil
	case LabelNone:
		return LabelNone, nil
	}
	return LabelNone, fmt.Errorf("%w: %q", ErrInvalidLabel, name)
}

// ValidLabelCodes returns the accepted short codes, sorted, for error
// messages and documentation.
func ValidLabelCodes() []string {
	codes := make([]string, 0, len(labelCodes))
	for c := range labelCodes {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// IsInvestment reports whether the transaction belongs to an
// Investment-prefixed category.
func (t Transaction) IsInvestment() bool {
	return strings.HasPrefix(t.Category, InvestmentPrefix)
}

// Key returns the composite reconciliation key. A zero date renders as the
// empty string so unknown dates still match consistently.
func (t Transaction) Key() EditKey {
	date := ""
	if !t.Date.IsZero() {
		date = t.Date.Format("2006-01-02")
	}
	return EditKey{
		Date:        date,
		Description: t.Description,
		Amount:      t.Amount,
		Who:         t.Who,
	}
}

// ApplyInvestmentOverride forces Label = Savings on every unlabeled
// Investment-prefixed transaction. Explicit non-empty labels are left
// alone, which makes the pass idempotent. Returns the number of
// transactions changed.
func ApplyInvestmentOverride(txns []Transaction) int {
	changed := 0
	for i := range txns {
		if txns[i].IsInvestment() && txns[i].Label == LabelNone {
			txns[i].Label = LabelSavings
			changed++
		}
	}
	return changed
}
