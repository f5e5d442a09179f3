package parser

import "strings"

// DocType classifies a document by its text content.
type DocType int

const (
	DocUnknown DocType = iota
	DocInvoice
	DocPurchaseOrder
)

func (t DocType) String() string {
	switch t {
	case DocInvoice:
		return "invoice"
	case DocPurchaseOrder:
		return "purchase_order"
	default:
		return "unknown"
	}
}

// DetectDocType decides whether text is an invoice, a standalone purchase
// order, or neither. Invoices carry an "Invoice No" label; PO documents
// mention a purchase order without any invoice wording.
func DetectDocType(text string) DocType {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "invoice") && strings.Contains(t, "invoice no"):
		return DocInvoice
	case strings.Contains(t, "purchase order"),
		strings.Contains(t, "po no") && !strings.Contains(t, "invoice"):
		return DocPurchaseOrder
	default:
		return DocUnknown
	}
}
