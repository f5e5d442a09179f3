// Package ledger holds the two append-only tables (PO_Details and
// Invoice_Details) and the reconciliation that links candidate invoices
// into them. Rows are never updated or deleted; uniqueness is enforced
// before every append.
package ledger

import (
	"fmt"

	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/normalize"
)

// Ledger owns the in-memory snapshot of both tables for the duration of a
// batch run. The Reconciler is the only writer; everything else reads.
type Ledger struct {
	pos      []entity.PurchaseOrder
	invoices []entity.Invoice

	poIndex      map[string]int // normalized PO number -> index into pos
	invoiceIndex map[string]int // normalized invoice number -> index into invoices
}

// New builds a ledger from table snapshots loaded out of the store.
// Row order is preserved; indexes are keyed on normalized numbers.
func New(pos []entity.PurchaseOrder, invoices []entity.Invoice) *Ledger {
	l := &Ledger{
		pos:          pos,
		invoices:     invoices,
		poIndex:      make(map[string]int, len(pos)),
		invoiceIndex: make(map[string]int, len(invoices)),
	}
	for i, po := range pos {
		l.poIndex[normalize.PONumber(po.PONumber)] = i
	}
	for i, inv := range invoices {
		l.invoiceIndex[normalize.InvoiceNumber(inv.InvoiceNumber)] = i
	}
	return l
}

// PurchaseOrders returns the PO table in insertion order.
func (l *Ledger) PurchaseOrders() []entity.PurchaseOrder { return l.pos }

// Invoices returns the invoice table in insertion order.
func (l *Ledger) Invoices() []entity.Invoice { return l.invoices }

// LookupPO finds a purchase order by normalized number.
func (l *Ledger) LookupPO(poNumber string) (entity.PurchaseOrder, bool) {
	i, ok := l.poIndex[normalize.PONumber(poNumber)]
	if !ok {
		return entity.PurchaseOrder{}, false
	}
	return l.pos[i], true
}

// HasInvoice reports whether the normalized invoice number is already in
// the invoice table.
func (l *Ledger) HasInvoice(invoiceNumber string) bool {
	_, ok := l.invoiceIndex[normalize.InvoiceNumber(invoiceNumber)]
	return ok
}

func (l *Ledger) nextPOSerial() int {
	max := 0
	for _, po := range l.pos {
		if po.SerialNumber > max {
			max = po.SerialNumber
		}
	}
	return max + 1
}

func (l *Ledger) nextInvoiceSerial() int {
	max := 0
	for _, inv := range l.invoices {
		if inv.SerialNumber > max {
			max = inv.SerialNumber
		}
	}
	return max + 1
}

func (l *Ledger) appendPO(po entity.PurchaseOrder) {
	l.poIndex[normalize.PONumber(po.PONumber)] = len(l.pos)
	l.pos = append(l.pos, po)
}

func (l *Ledger) appendInvoice(inv entity.Invoice) {
	l.invoiceIndex[normalize.InvoiceNumber(inv.InvoiceNumber)] = len(l.invoices)
	l.invoices = append(l.invoices, inv)
}

// Verify checks the table invariants: unique keys and serial numbers that
// run 1..N with no gaps or repeats in insertion order.
func (l *Ledger) Verify() error {
	seenPO := make(map[string]struct{}, len(l.pos))
	for i, po := range l.pos {
		key := normalize.PONumber(po.PONumber)
		if key == "" {
			return fmt.Errorf("po row %d: empty po_number", i)
		}
		if _, dup := seenPO[key]; dup {
			return fmt.Errorf("po row %d: duplicate po_number %q", i, po.PONumber)
		}
		seenPO[key] = struct{}{}
		if po.SerialNumber != i+1 {
			return fmt.Errorf("po row %d: serial_number %d, want %d", i, po.SerialNumber, i+1)
		}
	}

	seenInv := make(map[string]struct{}, len(l.invoices))
	for i, inv := range l.invoices {
		key := normalize.InvoiceNumber(inv.InvoiceNumber)
		if key == "" {
			return fmt.Errorf("invoice row %d: empty invoice_number", i)
		}
		if _, dup := seenInv[key]; dup {
			return fmt.Errorf("invoice row %d: duplicate invoice_number %q", i, inv.InvoiceNumber)
		}
		seenInv[key] = struct{}{}
		if inv.SerialNumber != i+1 {
			return fmt.Errorf("invoice row %d: serial_number %d, want %d", i, inv.SerialNumber, i+1)
		}
	}
	return nil
}
