package ledger

import (
	"log/slog"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/normalize"
)

// ReconcileResult reports what one reconciliation did: the outcome plus the
// rows that were appended (NewPO is nil unless a PO was auto-created).
type ReconcileResult struct {
	Outcome constants.Outcome
	NewPO   *entity.PurchaseOrder
	Invoice *entity.Invoice
}

// Reconciler links candidate invoices into the ledger. It holds exclusive
// write access to the ledger for the duration of a batch run; reconciliation
// is strictly sequential because serial assignment and duplicate detection
// depend on a monotonically-advancing view of both tables.
type Reconciler struct {
	ledger *Ledger
	logger *slog.Logger
}

func NewReconciler(l *Ledger, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{ledger: l, logger: logger}
}

// Ledger exposes the reconciler's table snapshot for persistence and
// verification.
func (r *Reconciler) Ledger() *Ledger { return r.ledger }

// Reconcile links one candidate invoice into the ledger. The candidate is
// mutated: serial number assigned, department and PO date copied from the
// linked purchase order. Both appends (optional PO auto-create, then the
// invoice) happen before return, so the mutation set is atomic per document.
func (r *Reconciler) Reconcile(cand *entity.Invoice) ReconcileResult {
	key := normalize.InvoiceNumber(cand.InvoiceNumber)
	if key == "" {
		r.logger.Warn("reconcile.rejected_missing_key")
		return ReconcileResult{Outcome: constants.OutcomeRejectedNoKey}
	}

	if r.ledger.HasInvoice(key) {
		r.logger.Info("reconcile.skip_duplicate", "invoice_number", cand.InvoiceNumber)
		return ReconcileResult{Outcome: constants.OutcomeSkippedDuplicate}
	}

	var newPO *entity.PurchaseOrder
	if cand.PONumber != "" {
		if po, ok := r.ledger.LookupPO(cand.PONumber); ok {
			// denormalized snapshot; the PO row itself is never touched
			cand.PODate = po.PODate
			cand.Department = po.Department
		} else {
			po := entity.PurchaseOrder{
				SerialNumber: r.ledger.nextPOSerial(),
				PONumber:     cand.PONumber,
				PODate:       cand.PODate,
				Department:   cand.Department,
			}
			r.ledger.appendPO(po)
			newPO = &po
			cand.Department = po.Department
			r.logger.Info("reconcile.po_autocreated",
				"po_number", po.PONumber,
				"serial_number", po.SerialNumber,
				"invoice_number", cand.InvoiceNumber,
			)
		}
	}

	cand.SerialNumber = r.ledger.nextInvoiceSerial()
	r.ledger.appendInvoice(*cand)

	r.logger.Info("reconcile.inserted",
		"invoice_number", cand.InvoiceNumber,
		"serial_number", cand.SerialNumber,
		"po_number", cand.PONumber,
	)
	return ReconcileResult{Outcome: constants.OutcomeInserted, NewPO: newPO, Invoice: cand}
}

// RegisterPurchaseOrder appends a purchase order parsed from a standalone PO
// document. Creation is idempotent: an existing number is left untouched and
// created=false is returned.
func (r *Reconciler) RegisterPurchaseOrder(po *entity.PurchaseOrder) (created bool) {
	if _, ok := r.ledger.LookupPO(po.PONumber); ok {
		r.logger.Info("reconcile.po_exists", "po_number", po.PONumber)
		return false
	}
	po.SerialNumber = r.ledger.nextPOSerial()
	r.ledger.appendPO(*po)
	r.logger.Info("reconcile.po_inserted", "po_number", po.PONumber, "serial_number", po.SerialNumber)
	return true
}
