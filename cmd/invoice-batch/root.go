package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "invoice-batch",
	Short:   "Parse scanned invoices and reconcile them into the PO/invoice ledger",
	Version: version,
	Long: `invoice-batch extracts structured fields from scanned invoices and
purchase orders, links each invoice to its purchase order, and appends the
results to a ledger (an Excel workbook or a SQLite database).

Documents are processed sequentially; re-running over the same input is
safe and produces no duplicate rows.`,
}

func Execute() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
