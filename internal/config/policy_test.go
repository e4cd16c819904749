package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.DefaultYear != 2025 {
		t.Errorf("DefaultYear = %d, want 2025", p.DefaultYear)
	}
	// Row 2, column 14 zero-indexed is spreadsheet cell O3.
	if p.IncomeAnchorRow != 2 || p.IncomeAnchorCol != 14 {
		t.Errorf("anchor = (%d,%d), want (2,14)", p.IncomeAnchorRow, p.IncomeAnchorCol)
	}
	if p.IncomeFallbackRatio != 1.5 {
		t.Errorf("IncomeFallbackRatio = %v, want 1.5", p.IncomeFallbackRatio)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default policy should validate: %v", err)
	}
}

func TestLoadPolicy(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		p, err := LoadPolicy("")
		if err != nil {
			t.Fatalf("LoadPolicy(\"\") error: %v", err)
		}
		if p != DefaultPolicy() {
			t.Errorf("LoadPolicy(\"\") = %+v, want defaults", p)
		}
	})

	t.Run("file overrides merge over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.toml")
		content := "default_year = 2026\nincome_fallback_ratio = 2.0\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		p, err := LoadPolicy(path)
		if err != nil {
			t.Fatalf("LoadPolicy error: %v", err)
		}
		if p.DefaultYear != 2026 {
			t.Errorf("DefaultYear = %d, want 2026", p.DefaultYear)
		}
		if p.IncomeFallbackRatio != 2.0 {
			t.Errorf("IncomeFallbackRatio = %v, want 2.0", p.IncomeFallbackRatio)
		}
		// Untouched fields keep their defaults.
		if p.IncomeAnchorRow != 2 || p.IncomeAnchorCol != 14 {
			t.Errorf("anchor = (%d,%d), want defaults (2,14)", p.IncomeAnchorRow, p.IncomeAnchorCol)
		}
	})

	t.Run("invalid ratio rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.toml")
		if err := os.WriteFile(path, []byte("income_fallback_ratio = -1.0\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadPolicy(path)
		if err == nil || !strings.Contains(err.Error(), "income_fallback_ratio") {
			t.Errorf("LoadPolicy error = %v, want income_fallback_ratio complaint", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("LoadPolicy on missing file should error")
		}
	})
}
