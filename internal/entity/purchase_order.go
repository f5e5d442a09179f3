package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is one row of the PO_Details table.
// Rows are append-only: SerialNumber is assigned at creation and never changes.
type PurchaseOrder struct {
	SerialNumber int             `json:"serial_number"`
	PONumber     string          `json:"po_number"`
	PODate       time.Time       `json:"po_date,omitempty"` // zero when unknown
	POAmount     decimal.Decimal `json:"po_amount"`
	Department   string          `json:"department,omitempty"`
}
