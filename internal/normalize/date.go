package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/invoice-ledger/internal/common"
)

// DefaultCenturyPivot resolves two-digit years: yy < pivot -> 20yy, else 19yy.
// So with the default, "25" means 2025 and "87" means 1987.
const DefaultCenturyPivot = 70

var reDate = regexp.MustCompile(`^\s*(\d{1,2})[-/.]([A-Za-z]{3,9}|\d{1,2})[-/.](\d{2}|\d{4})\s*$`)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseDate parses the day/month/year textual forms seen on scanned invoices:
// 28-Mar-2025, 28-Mar-25, 28/03/25, 7-JUL-2025 and so on. Month tokens are
// matched case-insensitively on their first three letters. The result is a
// date at midnight UTC.
func ParseDate(raw string, centuryPivot int) (time.Time, error) {
	if centuryPivot <= 0 || centuryPivot > 99 {
		centuryPivot = DefaultCenturyPivot
	}
	m := reDate.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, fmt.Errorf("%q: %w", raw, common.ErrDateParse)
	}

	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		if year < centuryPivot {
			year += 2000
		} else {
			year += 1900
		}
	}

	var month time.Month
	if n, err := strconv.Atoi(m[2]); err == nil {
		if n < 1 || n > 12 {
			return time.Time{}, fmt.Errorf("%q: month %d: %w", raw, n, common.ErrDateParse)
		}
		month = time.Month(n)
	} else {
		prefix := strings.ToLower(m[2])
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		mo, ok := monthsByPrefix[prefix]
		if !ok {
			return time.Time{}, fmt.Errorf("%q: month %q: %w", raw, m[2], common.ErrDateParse)
		}
		month = mo
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. 31-Feb -> 3-Mar); reject that.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, fmt.Errorf("%q: no such calendar day: %w", raw, common.ErrDateParse)
	}
	return t, nil
}
