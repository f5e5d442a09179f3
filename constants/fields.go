package constants

// Field names the extractor can recover from document text.
// These are stable identifiers used in logs and in "missing fields" reports.
const (
	FieldInvoiceNumber = "invoice_number"
	FieldInvoiceDate   = "invoice_date"
	FieldPONumber      = "po_number"
	FieldPODate        = "po_date"
	FieldPOAmount      = "po_amount"
	FieldGRID          = "gr_id"
	FieldGRDate        = "gr_date"
	FieldSubtotal      = "subtotal"
	FieldTax           = "tax"
	FieldGrandTotal    = "grand_total"
	FieldStatus        = "status"
	FieldDepartment    = "department"
)
