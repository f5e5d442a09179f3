package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return New(Config{}, nil)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func assertAmount(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestParseInvoiceFullDocument(t *testing.T) {
	text := `INVOICE
Invoice No: 1523
Invoice Date: 22-Jul-25
PO NO 5700896853 PO DATE 28-Mar-25
TOTAL: 80,739.82
KPRA 13%: 10,496.18
GRAND TOTAL: 91,236.00
`
	res, err := newTestParser(t).ParseInvoice(text)
	if err != nil {
		t.Fatalf("ParseInvoice: %v", err)
	}
	inv := res.Invoice

	if inv.InvoiceNumber != "1523" {
		t.Errorf("invoice_number = %q, want 1523", inv.InvoiceNumber)
	}
	if want := time.Date(2025, time.July, 22, 0, 0, 0, 0, time.UTC); !inv.InvoiceDate.Equal(want) {
		t.Errorf("invoice_date = %v, want %v", inv.InvoiceDate, want)
	}
	if inv.PONumber != "5700896853" {
		t.Errorf("po_number = %q, want 5700896853", inv.PONumber)
	}
	if want := time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC); !inv.PODate.Equal(want) {
		t.Errorf("po_date = %v, want %v", inv.PODate, want)
	}
	assertAmount(t, "subtotal", inv.Subtotal, mustDecimal(t, "80739.82"))
	// the extracted tax line is kept, not re-derived from the rate
	assertAmount(t, "tax", inv.Tax, mustDecimal(t, "10496.18"))
	assertAmount(t, "grand_total", inv.GrandTotal, mustDecimal(t, "91236.00"))
	if inv.Status != constants.StatusUnPaid {
		t.Errorf("status = %q, want UnPaid", inv.Status)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	wantMissing := map[string]bool{constants.FieldGRID: true, constants.FieldGRDate: true}
	for _, f := range res.Missing {
		if !wantMissing[f] {
			t.Errorf("field %q unexpectedly missing", f)
		}
		delete(wantMissing, f)
	}
	for f := range wantMissing {
		t.Errorf("field %q not reported missing", f)
	}
}

func TestParseInvoiceDerivesTaxFromRate(t *testing.T) {
	text := `Invoice No: 7788
Invoice Date: 5-Aug-25
TOTAL: 69,450.44
`
	res, err := newTestParser(t).ParseInvoice(text)
	if err != nil {
		t.Fatalf("ParseInvoice: %v", err)
	}
	inv := res.Invoice
	assertAmount(t, "subtotal", inv.Subtotal, mustDecimal(t, "69450.44"))
	assertAmount(t, "tax", inv.Tax, mustDecimal(t, "8334.05")) // 69450.44 * 0.12
	assertAmount(t, "grand_total", inv.GrandTotal, mustDecimal(t, "77784.49"))
}

func TestParseInvoiceCustomTaxRate(t *testing.T) {
	p := New(Config{TaxRate: mustDecimal(t, "0.15")}, nil)
	res, err := p.ParseInvoice("Invoice No: 42\nTOTAL: 200.00\n")
	if err != nil {
		t.Fatalf("ParseInvoice: %v", err)
	}
	assertAmount(t, "tax", res.Invoice.Tax, mustDecimal(t, "30.00"))
	assertAmount(t, "grand_total", res.Invoice.GrandTotal, mustDecimal(t, "230.00"))
}

func TestParseInvoiceGrandTotalMismatchWarns(t *testing.T) {
	text := `Invoice No: 9001
TOTAL: 100.00
GRAND TOTAL: 150.00
`
	res, err := newTestParser(t).ParseInvoice(text)
	if err != nil {
		t.Fatalf("ParseInvoice: %v", err)
	}
	// extracted grand total is authoritative even when it disagrees
	assertAmount(t, "grand_total", res.Invoice.GrandTotal, mustDecimal(t, "150.00"))
	if len(res.Warnings) == 0 {
		t.Fatal("expected a grand-total mismatch warning")
	}
}

func TestParseInvoiceTabularPOBlock(t *testing.T) {
	text := `Invoice No: 2210
Invoice Date: 30-Apr-25
PO NO | PO DATE | GR NO | GR DATE
5700967487 | 28-Mar-25 | 4900462047 | 29-Apr-25
TOTAL: 1,000.00
`
	res, err := newTestParser(t).ParseInvoice(text)
	if err != nil {
		t.Fatalf("ParseInvoice: %v", err)
	}
	inv := res.Invoice
	if inv.PONumber != "5700967487" {
		t.Errorf("po_number = %q, want 5700967487", inv.PONumber)
	}
	if inv.GRID != "4900462047" {
		t.Errorf("gr_id = %q, want 4900462047", inv.GRID)
	}
	if want := time.Date(2025, time.April, 29, 0, 0, 0, 0, time.UTC); !inv.GRDate.Equal(want) {
		t.Errorf("gr_date = %v, want %v", inv.GRDate, want)
	}
	for _, f := range res.Missing {
		if f == constants.FieldPONumber || f == constants.FieldGRID {
			t.Errorf("field %q reported missing despite the tabular block", f)
		}
	}
}

func TestParseInvoiceMissingNumberIsFatal(t *testing.T) {
	_, err := newTestParser(t).ParseInvoice("some document without numbers")
	if err == nil {
		t.Fatal("expected an error for a document without an invoice number")
	}
	if !errors.Is(err, common.ErrMissingDedupKey) {
		t.Errorf("error %v does not wrap ErrMissingDedupKey", err)
	}
}

func TestParseInvoicePaidStatus(t *testing.T) {
	res, err := newTestParser(t).ParseInvoice("Invoice No: 55\nTOTAL: 10.00\nStatus: PAID\n")
	if err != nil {
		t.Fatalf("ParseInvoice: %v", err)
	}
	if res.Invoice.Status != constants.StatusPaid {
		t.Errorf("status = %q, want Paid", res.Invoice.Status)
	}
}

func TestParsePurchaseOrder(t *testing.T) {
	text := `PURCHASE ORDER
PO NO: 5700967487
PO Date: 28-Mar-25
Department: Procurement
Amount: 45,000.00
`
	po, missing, err := newTestParser(t).ParsePurchaseOrder(text)
	if err != nil {
		t.Fatalf("ParsePurchaseOrder: %v", err)
	}
	if po.PONumber != "5700967487" {
		t.Errorf("po_number = %q, want 5700967487", po.PONumber)
	}
	if want := time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC); !po.PODate.Equal(want) {
		t.Errorf("po_date = %v, want %v", po.PODate, want)
	}
	if po.Department != "Procurement" {
		t.Errorf("department = %q, want Procurement", po.Department)
	}
	assertAmount(t, "po_amount", po.POAmount, mustDecimal(t, "45000.00"))
	if len(missing) != 0 {
		t.Errorf("unexpected missing fields: %v", missing)
	}

	if _, _, err := newTestParser(t).ParsePurchaseOrder("an unrelated page"); !errors.Is(err, common.ErrMissingDedupKey) {
		t.Errorf("expected ErrMissingDedupKey, got %v", err)
	}
}

func TestDetectDocType(t *testing.T) {
	cases := []struct {
		text string
		want DocType
	}{
		{"INVOICE\nInvoice No: 1523", DocInvoice},
		{"PURCHASE ORDER\nPO NO: 5700967487", DocPurchaseOrder},
		{"PO NO 5700967487 PO DATE 28-Mar-25", DocPurchaseOrder},
		{"quarterly newsletter", DocUnknown},
	}
	for _, tc := range cases {
		if got := DetectDocType(tc.text); got != tc.want {
			t.Errorf("DetectDocType(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestValidateRecord(t *testing.T) {
	valid := &entity.Invoice{
		InvoiceNumber: "A10001",
		InvoiceDate:   time.Date(2025, time.July, 22, 0, 0, 0, 0, time.UTC),
		PONumber:      "5700896853",
		Subtotal:      mustDecimal(t, "80739.82"),
		Tax:           mustDecimal(t, "10496.18"),
		GrandTotal:    mustDecimal(t, "91236.00"),
		Status:        constants.StatusUnPaid,
	}
	if err := ValidateRecord(valid); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}

	bad := *valid
	bad.InvoiceNumber = ""
	if err := ValidateRecord(&bad); err == nil {
		t.Error("empty invoice_number accepted")
	}

	bad = *valid
	bad.Status = "Pending"
	if err := ValidateRecord(&bad); err == nil {
		t.Error("unknown status accepted")
	}
}
