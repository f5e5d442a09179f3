package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-ledger/constants"
)

// Invoice is one row of the Invoice_Details table.
// PODate and Department are denormalized copies taken from the linked
// PurchaseOrder at reconcile time; they are never re-synced afterwards.
type Invoice struct {
	SerialNumber  int                     `json:"serial_number"`
	InvoiceNumber string                  `json:"invoice_number"`
	InvoiceDate   time.Time               `json:"invoice_date,omitempty"`
	PONumber      string                  `json:"po_number,omitempty"`
	PODate        time.Time               `json:"po_date,omitempty"`
	Department    string                  `json:"department,omitempty"`
	GRID          string                  `json:"gr_id,omitempty"`
	GRDate        time.Time               `json:"gr_date,omitempty"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	Tax           decimal.Decimal         `json:"tax"`
	GrandTotal    decimal.Decimal         `json:"grand_total"`
	Status        constants.InvoiceStatus `json:"status"`
}
