package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/ingest"
	"github.com/joseph-ayodele/invoice-ledger/internal/ledger"
	"github.com/joseph-ayodele/invoice-ledger/internal/ocr"
	"github.com/joseph-ayodele/invoice-ledger/internal/parser"
	"github.com/joseph-ayodele/invoice-ledger/internal/pipeline"
	"github.com/joseph-ayodele/invoice-ledger/internal/store"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a directory of invoice/PO documents into the ledger",
	Example: `  # process ./invoices into invoices.xlsx
  invoice-batch process --dir ./invoices

  # keep the ledger in SQLite instead
  invoice-batch process --dir ./invoices --backend sqlite --ledger invoices.db`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().String("dir", "", "directory of documents to process (overrides INVOICES_DIR)")
	processCmd.Flags().String("ledger", "", "ledger file path (overrides LEDGER_PATH)")
	processCmd.Flags().String("backend", "", "ledger backend: xlsx | sqlite (overrides LEDGER_BACKEND)")
	processCmd.Flags().String("tax-rate", "", "tax rate used when no tax line is found (overrides TAX_RATE)")
	processCmd.Flags().String("debug-dir", "", "directory for raw-text dumps; empty disables (overrides DEBUG_TEXT_DIR)")
}

func runProcess(cmd *cobra.Command, _ []string) error {
	logger := slog.Default()
	cfg := common.LoadConfig()
	applyProcessFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := store.Open(cfg.Ledger, logger)
	if err != nil {
		return fmt.Errorf("open ledger store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("close ledger store", "error", cerr)
		}
	}()

	ctx := cmd.Context()
	led, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	paths, stats, err := ingest.ListDocuments(cfg.Batch.InputDir, cfg.Batch.SkipHidden)
	if err != nil {
		return fmt.Errorf("scan %s: %w", cfg.Batch.InputDir, err)
	}
	logger.Info("ingest.done", "dir", cfg.Batch.InputDir, "scanned", stats.Scanned, "matched", stats.Matched)
	if len(paths) == 0 {
		logger.Warn("ingest.empty", "dir", cfg.Batch.InputDir)
		return nil
	}

	source := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)

	p := parser.New(parser.Config{
		TaxRate:             cfg.Batch.TaxRate,
		GrandTotalTolerance: cfg.Batch.GrandTotalTolerance,
		CenturyPivot:        cfg.Batch.CenturyPivot,
	}, logger)
	rec := ledger.NewReconciler(led, logger)
	proc := pipeline.NewProcessor(logger, source, p, rec, cfg.Batch.DebugDir)

	_, batchStats := proc.ProcessBatch(ctx, paths)

	if err := st.Save(ctx, rec.Ledger()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Processed %d documents: %d inserted, %d duplicates, %d rejected, %d POs created, %d errors\n",
		batchStats.Processed, batchStats.Inserted, batchStats.Duplicates,
		batchStats.Rejected, batchStats.POCreated, batchStats.Errors)
	fmt.Fprintf(os.Stdout, "Ledger: %s\n", cfg.Ledger.Path)
	return nil
}

func applyProcessFlags(cmd *cobra.Command, cfg *common.Config) {
	if v, _ := cmd.Flags().GetString("dir"); v != "" {
		cfg.Batch.InputDir = v
	}
	if v, _ := cmd.Flags().GetString("ledger"); v != "" {
		cfg.Ledger.Path = v
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Ledger.Backend = v
	}
	if v, _ := cmd.Flags().GetString("debug-dir"); cmd.Flags().Changed("debug-dir") {
		cfg.Batch.DebugDir = v
	}
	if v, _ := cmd.Flags().GetString("tax-rate"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.Batch.TaxRate = d
		}
	}
}
