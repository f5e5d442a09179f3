package normalize

import (
	"regexp"
	"strings"
)

var reKeyNoise = regexp.MustCompile(`[^A-Z0-9]`)

// InvoiceNumber canonicalizes an invoice number for use as the dedup key:
// uppercase, whitespace and punctuation noise removed. Leading letter
// prefixes are significant, so "A10001" and "10001" remain distinct keys.
func InvoiceNumber(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	return reKeyNoise.ReplaceAllString(s, "")
}

// PONumber canonicalizes a purchase-order number the same way invoice
// numbers are canonicalized.
func PONumber(raw string) string {
	return InvoiceNumber(raw)
}
