package extract

import (
	"regexp"
	"strings"
)

// TableFields are the values recovered from a tabular PO/GR header, where
// column labels and values sit on separate lines, pipe- or whitespace-
// delimited.
type TableFields struct {
	PONumber string
	PODate   string
	GRID     string
	GRDate   string
}

// Layout variants seen in scanned invoices, strictest first.
var tablePatterns = []*regexp.Regexp{
	// standard header row followed by a value row
	regexp.MustCompile(`(?is)po\s*no[\s|]*po\s*date[\s|]*gr\s*no[\s|]*gr\s*date.*?\n\s*(\d+)\s+([\d-]+[-/]\w+[-/]\d+)[\s|]*(\d+)\s+([\d-]+[-/]\w+[-/]\d+)`),
	// extra pipes between GR NO and GR DATE
	regexp.MustCompile(`(?is)po\s*no[\s|]*po\s*date[\s|]*gr\s*no[\s|]*gr\s*date.*?\n\s*(\d+)[\s|]+([\d-]+[-/]\w+[-/]\d+)[\s|]+(\d+)[\s|]+([\d-]+[-/]\w+[-/]\d+)`),
	// compact layout keyed on the fixed widths of PO (10) and GR (7) numbers
	regexp.MustCompile(`(?is)po\s*no[\s|]+po\s*date[\s|]+gr\s*no[\s|]+gr\s*date[\s\S]*?(\d{10})[\s|]+([\d-]+[-/]\w+[-/]\d+)[\s|]+(\d{7})[\s|]+([\d-]+[-/]\w+[-/]\d+)`),
	// "PODATE" squashed without a space
	regexp.MustCompile(`(?is)po\s*no[\s|]*podate[\s|]*gr\s*no[\s\S]*?(\d{10})\s+([\d-]+[-/]\w+[-/]\d+)[\s|]+(\d{7})\s+([\d-]+[-/]\w+[-/]\d+)`),
}

// POTable tries the tabular layout variants in order and returns the first
// match. Like Field, the first successful pattern wins.
func POTable(text string) (TableFields, bool) {
	for _, re := range tablePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return TableFields{
				PONumber: strings.TrimSpace(m[1]),
				PODate:   strings.TrimSpace(m[2]),
				GRID:     strings.TrimSpace(m[3]),
				GRDate:   strings.TrimSpace(m[4]),
			}, true
		}
	}
	return TableFields{}, false
}
