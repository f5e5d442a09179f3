package constants

// InvoiceStatus is the payment status recorded on an invoice row.
type InvoiceStatus string

// Stable values (store these exact strings in the ledger).
const (
	StatusPaid   InvoiceStatus = "Paid"
	StatusUnPaid InvoiceStatus = "UnPaid"
)

// Outcome is the terminal result of processing one document.
// Every document yields exactly one outcome.
type Outcome string

const (
	OutcomeInserted         Outcome = "INSERTED"             // new invoice row appended
	OutcomeSkippedDuplicate Outcome = "SKIPPED_DUPLICATE"    // invoice number already in ledger
	OutcomeRejectedNoKey    Outcome = "REJECTED_MISSING_KEY" // invoice number unrecoverable
	OutcomePOInserted       Outcome = "PO_INSERTED"          // standalone PO document, row appended
	OutcomePOExists         Outcome = "PO_EXISTS"            // standalone PO document, number already known
	OutcomeParseError       Outcome = "PARSE_ERROR"          // text extraction or parse failed
)
