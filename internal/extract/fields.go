// Package extract recovers schema fields from noisy free-form document text.
//
// Each field owns an ordered cascade of patterns, strictest first: an exact
// label, OCR-corruption-tolerant label variants, punctuation-optional forms,
// then positional fallbacks. Patterns are tried in order and the first match
// wins; there is no scoring. New OCR-noise variants are added by appending a
// pattern to the field's cascade, not by editing control flow.
package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-ledger/constants"
)

type cascade []*regexp.Regexp

var fieldPatterns = map[string]cascade{
	constants.FieldInvoiceNumber: {
		// captures the full number including a letter prefix (A10001 or 10001)
		regexp.MustCompile(`(?i)invoice\s*no[:\s.]*[:\s]*([A-Z]?\d+)`),
		regexp.MustCompile(`(?i)invoice\s*#[:\s]*([A-Z]?\d+)`),
		regexp.MustCompile(`(?i)inv[\s.]*no[:\s.]*[:\s]*([A-Z]?\d+)`),
		regexp.MustCompile(`(?i)invoice\s*number[:\s]*([A-Z]?\d+)`),
		// label on one line, number on the next
		regexp.MustCompile(`(?im)invoice\s*no[:\s.]*$\n^.*?([A-Z]?\d{4,})`),
	},
	constants.FieldInvoiceDate: {
		regexp.MustCompile(`(?i)invoice\s*date[:\s.]*[:\s]*(\d{1,2}[-/]\w+[-/]\d{2,4})`),
		regexp.MustCompile(`(?i)invoice\s*date[:\s.]*[:\s]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
		// flexible spacing between "Invoice" and "Date"
		regexp.MustCompile(`(?is)invoice[\s\S]{0,30}?date[:\s]*(\d{1,2}[-/]\w+[-/]\d{2,4})`),
		// OCR garbles: "Invoice" read as "Iwoie" / "iavoie"
		regexp.MustCompile(`(?is)(?:iwoie|iavoie)[\s\S]{0,20}?date[:\s]*(\d{1,2}[-/]\w+[-/]\d{2,4})`),
		// any date-ish token shortly after the invoice number
		regexp.MustCompile(`(?is)invoice\s*no[:\s]*\d+[\s\S]{0,100}?(\d{1,2}[-/]\w+[-/]\d{2,4})`),
	},
	constants.FieldPONumber: {
		regexp.MustCompile(`(?i)po\s*no[:\s.]*[:\s]*(\d+)`),
		regexp.MustCompile(`(?i)po\s*number[:\s]*(\d+)`),
		regexp.MustCompile(`(?i)p\.?o\.?[:\s]*(\d+)`),
		regexp.MustCompile(`(?i)purchase\s*order[:\s]*(\d+)`),
	},
	constants.FieldPODate: {
		regexp.MustCompile(`(?i)po\s*date[:\s.]*[:\s]*(\d{1,2}[-/]\w+[-/]\d{2,4})`),
		regexp.MustCompile(`(?i)po\s*date[:\s.]*[:\s]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
		regexp.MustCompile(`(?i)p\.?o\.?\s*date[:\s]*(\d{1,2}[-/]\w+[-/]\d{2,4})`),
	},
	constants.FieldGRID: {
		regexp.MustCompile(`(?i)gr\s*no[:\s.]*[:\s]*(\d+)`),
		regexp.MustCompile(`(?i)gr\s*number[:\s]*(\d+)`),
		regexp.MustCompile(`(?i)g\.?r\.?[:\s]*(\d+)`),
		regexp.MustCompile(`(?i)goods\s*receipt[:\s]*(\d+)`),
	},
	constants.FieldGRDate: {
		regexp.MustCompile(`(?i)gr\s*date[:\s.]*[:\s]*(\d{1,2}[-/]\w+[-/]\d{2,4})`),
		regexp.MustCompile(`(?i)gr\s*date[:\s.]*[:\s]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
		regexp.MustCompile(`(?i)g\.?r\.?\s*date[:\s]*(\d{1,2}[-/]\w+[-/]\d{2,4})`),
	},
	constants.FieldSubtotal: {
		// a TOTAL line is the subtotal on these invoices; GRAND TOTAL is separate
		regexp.MustCompile(`(?im)^\s*total[:\s]+([0-9][0-9,]*\.?\d*)`),
		regexp.MustCompile(`(?i)sub\s*total[:\s]+([0-9][0-9,]*\.?\d*)`),
		regexp.MustCompile(`(?i)amount[:\s]+([0-9][0-9,]*\.?\d*)`),
	},
	constants.FieldTax: {
		// provincial levies (KPRA 13%: ...) or plain Tax/VAT lines
		regexp.MustCompile(`(?i)(?:kpra|tax)\s*\d+\s*%[:\s]+([0-9][0-9,]*\.?\d*)`),
		regexp.MustCompile(`(?i)(?:kpra|tax)[:\s]+([0-9][0-9,]*\.?\d*)`),
		regexp.MustCompile(`(?i)vat\s*\d+\s*%[:\s]+([0-9][0-9,]*\.?\d*)`),
	},
	constants.FieldGrandTotal: {
		regexp.MustCompile(`(?i)grand\s*total[:\s]+([0-9][0-9,]*\.?\d*)`),
		regexp.MustCompile(`(?i)total\s*amount[:\s]+([0-9][0-9,]*\.?\d*)`),
		regexp.MustCompile(`(?i)net\s*total[:\s]+([0-9][0-9,]*\.?\d*)`),
	},
	constants.FieldStatus: {
		regexp.MustCompile(`(?i)status[:\s]+(un\s*paid|paid)`),
		regexp.MustCompile(`(?i)\b(paid)\s+in\s+full\b`),
	},
	constants.FieldDepartment: {
		regexp.MustCompile(`(?i)department[:\s]+([A-Za-z][A-Za-z ]*)`),
		regexp.MustCompile(`(?i)dept[.:\s]+([A-Za-z][A-Za-z ]*)`),
	},
	constants.FieldPOAmount: {
		regexp.MustCompile(`(?i)(?:amount|total)[:\s]+([0-9][0-9,]*\.?\d*)`),
	},
}

// Field returns the first capture of the first matching pattern for the
// named field. Extraction is deterministic and side-effect-free; an unknown
// field name or a field with no matching pattern yields ok=false.
func Field(text, field string) (string, bool) {
	for _, re := range fieldPatterns[field] {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}
