package common

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"INVOICES_DIR", "DEBUG_TEXT_DIR", "SKIP_HIDDEN", "TAX_RATE",
		"GRAND_TOTAL_TOLERANCE", "CENTURY_PIVOT", "LEDGER_BACKEND", "LEDGER_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Batch.InputDir != "invoices" {
		t.Errorf("InputDir = %q, want invoices", cfg.Batch.InputDir)
	}
	if !cfg.Batch.SkipHidden {
		t.Error("SkipHidden default should be true")
	}
	if !cfg.Batch.TaxRate.Equal(decimal.RequireFromString("0.12")) {
		t.Errorf("TaxRate = %s, want 0.12", cfg.Batch.TaxRate)
	}
	if !cfg.Batch.GrandTotalTolerance.Equal(decimal.RequireFromString("1.00")) {
		t.Errorf("GrandTotalTolerance = %s, want 1.00", cfg.Batch.GrandTotalTolerance)
	}
	if cfg.Batch.CenturyPivot != 70 {
		t.Errorf("CenturyPivot = %d, want 70", cfg.Batch.CenturyPivot)
	}
	if cfg.Ledger.Backend != "xlsx" || cfg.Ledger.Path != "invoices.xlsx" {
		t.Errorf("ledger defaults = %+v", cfg.Ledger)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("INVOICES_DIR", "/srv/docs")
	t.Setenv("TAX_RATE", "0.15")
	t.Setenv("CENTURY_PIVOT", "50")
	t.Setenv("LEDGER_BACKEND", "sqlite")
	t.Setenv("LEDGER_PATH", "/srv/ledger.db")
	t.Setenv("SKIP_HIDDEN", "false")

	cfg := LoadConfig()
	if cfg.Batch.InputDir != "/srv/docs" {
		t.Errorf("InputDir = %q", cfg.Batch.InputDir)
	}
	if !cfg.Batch.TaxRate.Equal(decimal.RequireFromString("0.15")) {
		t.Errorf("TaxRate = %s", cfg.Batch.TaxRate)
	}
	if cfg.Batch.CenturyPivot != 50 {
		t.Errorf("CenturyPivot = %d", cfg.Batch.CenturyPivot)
	}
	if cfg.Batch.SkipHidden {
		t.Error("SKIP_HIDDEN=false not honored")
	}
	if cfg.Ledger.Backend != "sqlite" || cfg.Ledger.Path != "/srv/ledger.db" {
		t.Errorf("ledger = %+v", cfg.Ledger)
	}
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("TAX_RATE", "not-a-number")
	t.Setenv("CENTURY_PIVOT", "soon")
	t.Setenv("SKIP_HIDDEN", "maybe")

	cfg := LoadConfig()
	if !cfg.Batch.TaxRate.Equal(decimal.RequireFromString("0.12")) {
		t.Errorf("TaxRate = %s, want default 0.12", cfg.Batch.TaxRate)
	}
	if cfg.Batch.CenturyPivot != 70 {
		t.Errorf("CenturyPivot = %d, want default 70", cfg.Batch.CenturyPivot)
	}
	if !cfg.Batch.SkipHidden {
		t.Error("SkipHidden should fall back to true")
	}
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Ledger.Backend = "csv"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown backend accepted")
	}

	cfg = LoadConfig()
	cfg.Ledger.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty ledger path accepted")
	}

	cfg = LoadConfig()
	cfg.Batch.TaxRate = decimal.RequireFromString("-0.1")
	if err := cfg.Validate(); err == nil {
		t.Error("negative tax rate accepted")
	}

	cfg = LoadConfig()
	cfg.Batch.CenturyPivot = 150
	if err := cfg.Validate(); err == nil {
		t.Error("out-of-range century pivot accepted")
	}
}
