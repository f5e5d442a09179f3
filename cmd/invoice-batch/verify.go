package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/store"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check ledger invariants: unique keys and gapless serial numbers",
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().String("ledger", "", "ledger file path (overrides LEDGER_PATH)")
	verifyCmd.Flags().String("backend", "", "ledger backend: xlsx | sqlite (overrides LEDGER_BACKEND)")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	logger := slog.Default()
	cfg := common.LoadConfig()
	if v, _ := cmd.Flags().GetString("ledger"); v != "" {
		cfg.Ledger.Path = v
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Ledger.Backend = v
	}
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

	led, err := st.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	if err := led.Verify(); err != nil {
		fmt.Fprintf(os.Stderr, "ledger verification FAILED: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "ledger OK: %d purchase orders, %d invoices\n",
		len(led.PurchaseOrders()), len(led.Invoices()))
	return nil
}
