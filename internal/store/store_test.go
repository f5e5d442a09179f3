package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/ledger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleLedger() *ledger.Ledger {
	pos := []entity.PurchaseOrder{
		{
			SerialNumber: 1,
			PONumber:     "5700896853",
			PODate:       day(2025, time.March, 28),
			POAmount:     decimal.RequireFromString("45000.00"),
			Department:   "Stores",
		},
	}
	invoices := []entity.Invoice{
		{
			SerialNumber:  1,
			InvoiceNumber: "1523",
			InvoiceDate:   day(2025, time.July, 22),
			PONumber:      "5700896853",
			PODate:        day(2025, time.March, 28),
			Department:    "Stores",
			GRID:          "4900462047",
			GRDate:        day(2025, time.April, 29),
			Subtotal:      decimal.RequireFromString("80739.82"),
			Tax:           decimal.RequireFromString("10496.18"),
			GrandTotal:    decimal.RequireFromString("91236.00"),
			Status:        constants.StatusUnPaid,
		},
		{
			// sparse row: no dates, no PO link, no department
			SerialNumber:  2,
			InvoiceNumber: "A10001",
			Subtotal:      decimal.RequireFromString("100.00"),
			Tax:           decimal.RequireFromString("12.00"),
			GrandTotal:    decimal.RequireFromString("112.00"),
			Status:        constants.StatusPaid,
		},
	}
	return ledger.New(pos, invoices)
}

func assertRoundTrip(t *testing.T, got *ledger.Ledger) {
	t.Helper()

	pos := got.PurchaseOrders()
	if len(pos) != 1 {
		t.Fatalf("po rows = %d, want 1", len(pos))
	}
	po := pos[0]
	if po.SerialNumber != 1 || po.PONumber != "5700896853" {
		t.Errorf("po row = %+v", po)
	}
	if !po.PODate.Equal(day(2025, time.March, 28)) {
		t.Errorf("po_date = %v", po.PODate)
	}
	if !po.POAmount.Equal(decimal.RequireFromString("45000.00")) {
		t.Errorf("po_amount = %s", po.POAmount)
	}
	if po.Department != "Stores" {
		t.Errorf("department = %q", po.Department)
	}

	invoices := got.Invoices()
	if len(invoices) != 2 {
		t.Fatalf("invoice rows = %d, want 2", len(invoices))
	}
	inv := invoices[0]
	if inv.InvoiceNumber != "1523" || inv.GRID != "4900462047" {
		t.Errorf("invoice row = %+v", inv)
	}
	if !inv.InvoiceDate.Equal(day(2025, time.July, 22)) {
		t.Errorf("invoice_date = %v", inv.InvoiceDate)
	}
	if !inv.Subtotal.Equal(decimal.RequireFromString("80739.82")) {
		t.Errorf("subtotal = %s", inv.Subtotal)
	}
	if !inv.GrandTotal.Equal(decimal.RequireFromString("91236.00")) {
		t.Errorf("grand_total = %s", inv.GrandTotal)
	}
	if inv.Status != constants.StatusUnPaid {
		t.Errorf("status = %q", inv.Status)
	}

	sparse := invoices[1]
	if sparse.InvoiceNumber != "A10001" {
		t.Errorf("sparse invoice_number = %q", sparse.InvoiceNumber)
	}
	if !sparse.InvoiceDate.IsZero() || !sparse.PODate.IsZero() || !sparse.GRDate.IsZero() {
		t.Errorf("sparse dates should stay zero: %+v", sparse)
	}
	if sparse.Department != "" {
		t.Errorf("sparse department = %q, want empty", sparse.Department)
	}
	if sparse.Status != constants.StatusPaid {
		t.Errorf("sparse status = %q", sparse.Status)
	}

	if err := got.Verify(); err != nil {
		t.Errorf("Verify after load: %v", err)
	}
}

func TestXLSXStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.xlsx")
	st := NewXLSXStore(path, nil)
	ctx := context.Background()

	if err := st.Save(ctx, sampleLedger()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertRoundTrip(t, got)
}

func TestXLSXStoreMissingFileIsEmpty(t *testing.T) {
	st := NewXLSXStore(filepath.Join(t.TempDir(), "absent.xlsx"), nil)
	led, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(led.PurchaseOrders()) != 0 || len(led.Invoices()) != 0 {
		t.Errorf("expected an empty ledger, got %d/%d rows",
			len(led.PurchaseOrders()), len(led.Invoices()))
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.db")
	st, err := OpenSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			t.Errorf("Close: %v", cerr)
		}
	}()
	ctx := context.Background()

	if err := st.Save(ctx, sampleLedger()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertRoundTrip(t, got)

	// saving the same snapshot again must not grow the tables
	if err := st.Save(ctx, got); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	again, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(again.Invoices()) != 2 || len(again.PurchaseOrders()) != 1 {
		t.Errorf("repeated save grew tables: %d/%d rows",
			len(again.PurchaseOrders()), len(again.Invoices()))
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(common.LedgerConfig{Backend: "csv", Path: "x"}, nil); err == nil {
		t.Error("unknown backend accepted")
	}
}
