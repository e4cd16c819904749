package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Policy names the ingest conventions historically baked into the monthly
// workbook template. The income anchor is the fixed cell on the first sheet
// that carries a manually entered income figure; when it is absent or
// non-numeric, income falls back to regular expenses times the fallback
// ratio. The ratio is a deliberate heuristic, not a measured value.
type Policy struct {
	// DefaultYear is assumed for transactions whose sheet carries no usable
	// date; the day defaults to the 1st of the file's month.
	DefaultYear int `toml:"default_year"`

	// IncomeAnchorRow/Col locate the income cell on the first sheet,
	// zero-indexed. Row 2, column 14 is spreadsheet cell O3.
	IncomeAnchorRow int `toml:"income_anchor_row"`
	IncomeAnchorCol int `toml:"income_anchor_col"`

	// IncomeFallbackRatio multiplies regular expenses when the anchor cell
	// yields nothing.
	IncomeFallbackRatio float64 `toml:"income_fallback_ratio"`
}

// DefaultPolicy returns the conventions of the stock template.
func DefaultPolicy() Policy {
	return Policy{
		DefaultYear:         2025,
		IncomeAnchorRow:     2,
		IncomeAnchorCol:     14,
		IncomeFallbackRatio: 1.5,
	}
}

// LoadPolicy reads a TOML policy file over the defaults. An empty path
// returns the defaults unchanged.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Policy{}, fmt.Errorf("decode policy file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

// Validate rejects values no workbook layout could satisfy.
func (p Policy) Validate() error {
	if p.DefaultYear < 1900 || p.DefaultYear > 9999 {
		return fmt.Errorf("invalid default_year %d", p.DefaultYear)
	}
	if p.IncomeAnchorRow < 0 {
		return fmt.Errorf("invalid income_anchor_row %d: must not be negative", p.IncomeAnchorRow)
	}
	if p.IncomeAnchorCol < 0 {
		return fmt.Errorf("invalid income_anchor_col %d: must not be negative", p.IncomeAnchorCol)
	}
	if p.IncomeFallbackRatio <= 0 {
		return fmt.Errorf("invalid income_fallback_ratio %v: must be positive", p.IncomeFallbackRatio)
	}
	return nil
}
