// Package store persists the two ledger tables. The engine loads a full
// snapshot at batch start and writes the whole ledger back at batch end;
// both backends keep rows in insertion order and never rewrite history.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/ledger"
)

// Store is the persistence boundary for the ledger. I/O failures here are
// fatal to a batch run and surfaced to the operator.
type Store interface {
	Load(ctx context.Context) (*ledger.Ledger, error)
	Save(ctx context.Context, l *ledger.Ledger) error
	Close() error
}

// Open selects a backend from configuration.
func Open(cfg common.LedgerConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Backend {
	case "xlsx", "":
		return NewXLSXStore(cfg.Path, logger), nil
	case "sqlite":
		return OpenSQLiteStore(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Backend)
	}
}
