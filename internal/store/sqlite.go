package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/ledger"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS po_details (
	serial_number INTEGER PRIMARY KEY,
	po_number     TEXT NOT NULL UNIQUE,
	po_date       TEXT NOT NULL DEFAULT '',
	po_amount     TEXT NOT NULL DEFAULT '0',
	department    TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS invoice_details (
	serial_number  INTEGER PRIMARY KEY,
	invoice_number TEXT NOT NULL UNIQUE,
	invoice_date   TEXT NOT NULL DEFAULT '',
	po_number      TEXT NOT NULL DEFAULT '',
	po_date        TEXT NOT NULL DEFAULT '',
	department     TEXT NOT NULL DEFAULT '',
	gr_id          TEXT NOT NULL DEFAULT '',
	gr_date        TEXT NOT NULL DEFAULT '',
	subtotal       TEXT NOT NULL DEFAULT '0',
	tax            TEXT NOT NULL DEFAULT '0',
	grand_total    TEXT NOT NULL DEFAULT '0',
	status         TEXT NOT NULL DEFAULT 'UnPaid'
);`

const sqliteDateLayout = "2006-01-02"

// SQLiteStore keeps the ledger in a single-file database for deployments
// that want a queryable ledger instead of a workbook. Amounts are stored as
// decimal strings so no precision is lost to float columns.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func OpenSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("ledger.sqlite.opened", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*ledger.Ledger, error) {
	pos, err := s.loadPOs(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.loadInvoices(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ledger.sqlite.loaded", "pos", len(pos), "invoices", len(invoices))
	return ledger.New(pos, invoices), nil
}

func (s *SQLiteStore) loadPOs(ctx context.Context) ([]entity.PurchaseOrder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT serial_number, po_number, po_date, po_amount, department
		 FROM po_details ORDER BY serial_number`)
	if err != nil {
		return nil, fmt.Errorf("query po_details: %w", err)
	}
	defer rows.Close()

	var out []entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		var date, amount string
		if err := rows.Scan(&po.SerialNumber, &po.PONumber, &date, &amount, &po.Department); err != nil {
			return nil, err
		}
		po.PODate = decodeDate(date)
		po.POAmount = parseCellAmount(amount)
		out = append(out, po)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadInvoices(ctx context.Context) ([]entity.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT serial_number, invoice_number, invoice_date, po_number, po_date,
		        department, gr_id, gr_date, subtotal, tax, grand_total, status
		 FROM invoice_details ORDER BY serial_number`)
	if err != nil {
		return nil, fmt.Errorf("query invoice_details: %w", err)
	}
	defer rows.Close()

	var out []entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var invDate, poDate, grDate, subtotal, tax, grand, status string
		if err := rows.Scan(&inv.SerialNumber, &inv.InvoiceNumber, &invDate, &inv.PONumber,
			&poDate, &inv.Department, &inv.GRID, &grDate, &subtotal, &tax, &grand, &status); err != nil {
			return nil, err
		}
		inv.InvoiceDate = decodeDate(invDate)
		inv.PODate = decodeDate(poDate)
		inv.GRDate = decodeDate(grDate)
		inv.Subtotal = parseCellAmount(subtotal)
		inv.Tax = parseCellAmount(tax)
		inv.GrandTotal = parseCellAmount(grand)
		inv.Status = constants.InvoiceStatus(status)
		if inv.Status != constants.StatusPaid {
			inv.Status = constants.StatusUnPaid
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Save appends new rows. Existing serials conflict on the primary key and
// are ignored, which keeps the tables append-only across repeated saves.
func (s *SQLiteStore) Save(ctx context.Context, l *ledger.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, po := range l.PurchaseOrders() {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO po_details
			 (serial_number, po_number, po_date, po_amount, department)
			 VALUES (?, ?, ?, ?, ?)`,
			po.SerialNumber, po.PONumber, encodeDate(po.PODate),
			po.POAmount.StringFixed(2), po.Department)
		if err != nil {
			return fmt.Errorf("insert po %s: %w", po.PONumber, err)
		}
	}
	for _, inv := range l.Invoices() {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO invoice_details
			 (serial_number, invoice_number, invoice_date, po_number, po_date,
			  department, gr_id, gr_date, subtotal, tax, grand_total, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			inv.SerialNumber, inv.InvoiceNumber, encodeDate(inv.InvoiceDate), inv.PONumber,
			encodeDate(inv.PODate), inv.Department, inv.GRID, encodeDate(inv.GRDate),
			inv.Subtotal.StringFixed(2), inv.Tax.StringFixed(2),
			inv.GrandTotal.StringFixed(2), string(inv.Status))
		if err != nil {
			return fmt.Errorf("insert invoice %s: %w", inv.InvoiceNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("ledger.sqlite.saved",
		"pos", len(l.PurchaseOrders()),
		"invoices", len(l.Invoices()),
	)
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func encodeDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(sqliteDateLayout)
}

func decodeDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(sqliteDateLayout, s, time.UTC); err == nil {
		return t
	}
	return time.Time{}
}
