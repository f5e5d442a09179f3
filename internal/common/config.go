package common

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Batch  BatchConfig
	Ledger LedgerConfig
	OCR    OCRConfig
}

// BatchConfig holds batch-run configuration
type BatchConfig struct {
	InputDir   string
	DebugDir   string // raw-text dump per document; empty disables the debug sink
	SkipHidden bool

	// TaxRate is applied when the document carries no tax line (default 0.12).
	TaxRate decimal.Decimal

	// GrandTotalTolerance is the allowed gap between an extracted grand total
	// and subtotal+tax before a reconciliation warning is raised.
	GrandTotalTolerance decimal.Decimal

	// CenturyPivot interprets two-digit years: yy < pivot -> 20yy, else 19yy.
	CenturyPivot int
}

// LedgerConfig holds ledger-store configuration
type LedgerConfig struct {
	Backend string // "xlsx" | "sqlite"
	Path    string
}

// OCRConfig holds text-extraction configuration
type OCRConfig struct {
	Pdftotext     string
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	DPI           int
	MaxPages      int
	TessdataDir   string
}

// LoadConfig loads configuration from the environment, reading a .env file
// first if one is present next to the binary.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Batch: BatchConfig{
			InputDir:            getEnv("INVOICES_DIR", "invoices"),
			DebugDir:            getEnv("DEBUG_TEXT_DIR", "debug_ocr_text"),
			SkipHidden:          getEnvAsBool("SKIP_HIDDEN", true),
			TaxRate:             getEnvAsDecimal("TAX_RATE", "0.12"),
			GrandTotalTolerance: getEnvAsDecimal("GRAND_TOTAL_TOLERANCE", "1.00"),
			CenturyPivot:        getEnvAsInt("CENTURY_PIVOT", 70),
		},
		Ledger: LedgerConfig{
			Backend: getEnv("LEDGER_BACKEND", "xlsx"),
			Path:    getEnv("LEDGER_PATH", "invoices.xlsx"),
		},
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	d, _ := decimal.NewFromString(defaultValue)
	return d
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Ledger.Path == "" {
		return NewAppError("CONFIG_ERROR", "LEDGER_PATH is required", ErrInvalidInput)
	}
	if c.Ledger.Backend != "xlsx" && c.Ledger.Backend != "sqlite" {
		return NewAppError("CONFIG_ERROR", "LEDGER_BACKEND must be xlsx or sqlite", ErrInvalidInput)
	}
	if c.Batch.TaxRate.IsNegative() {
		return NewAppError("CONFIG_ERROR", "TAX_RATE must be non-negative", ErrInvalidInput)
	}
	if c.Batch.CenturyPivot < 0 || c.Batch.CenturyPivot > 99 {
		return NewAppError("CONFIG_ERROR", "CENTURY_PIVOT must be in 0..99", ErrInvalidInput)
	}
	return nil
}
