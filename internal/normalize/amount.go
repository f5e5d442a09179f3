package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-ledger/internal/common"
)

// reAmountNoise strips currency symbols, spaces and OCR junk, keeping digits,
// separators and a sign.
var reAmountNoise = regexp.MustCompile(`[^0-9.,\-]`)

// ParseAmount parses a currency amount out of noisy text. Thousands
// separators are removed; both '.' and ',' are accepted as the decimal
// marker. A ',' counts as the decimal marker only when it is the sole comma
// and exactly two digits follow it; otherwise commas are grouping separators.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := reAmountNoise.ReplaceAllString(raw, "")
	if !strings.ContainsAny(s, "0123456789") {
		return decimal.Decimal{}, fmt.Errorf("%q: %w", raw, common.ErrAmountParse)
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.ReplaceAll(s, "-", "")
	// "Rs." and friends leave a stray leading separator behind.
	s = strings.Trim(s, ".,")

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		// The later separator is the decimal marker.
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = commaToDecimalPoint(s)
		}
	case hasComma:
		if strings.Count(s, ",") == 1 && decimalsAfter(s, ",") == 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasDot && strings.Count(s, ".") > 1:
		// OCR sometimes doubles separators ("1.234.56"); keep the last.
		last := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q: %w", raw, common.ErrAmountParse)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// commaToDecimalPoint turns the last comma into the decimal point and drops
// any earlier ones.
func commaToDecimalPoint(s string) string {
	last := strings.LastIndex(s, ",")
	if last < 0 {
		return s
	}
	return strings.ReplaceAll(s[:last], ",", "") + "." + s[last+1:]
}

func decimalsAfter(s, sep string) int {
	return len(s) - strings.LastIndex(s, sep) - 1
}
