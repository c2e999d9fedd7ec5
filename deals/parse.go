package deals

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timeLayouts are tried in order. Layouts without a zone parse as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006.01.02",
	"2006-01-02",
}

var clockLayouts = []string{"15:04:05", "15:04"}

func isClock(s string) bool {
	for _, layout := range clockLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// ParseTime parses the timestamp formats MT5 and its spreadsheet
// re-exports use.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time %q", s)
}

// ParseAmount parses a numeric cell. Inner spaces (thousands separators)
// are dropped and a lone ',' is read as the decimal point. "1,234" could be
// either and is rejected; "0,750" cannot be a thousands group and is not.
// An empty cell is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\t' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		if ambiguousComma(s) {
			return decimal.Zero, fmt.Errorf("ambiguous number %q: decimal or thousands separator", s)
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad number %q: %w", s, err)
	}
	return d, nil
}

// symbolOf keeps the first whitespace separated token ("EURUSD buy 1.00"
// becomes "EURUSD").
func symbolOf(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// ambiguousComma reports a single comma followed by exactly three digits
// after a non-zero integer part.
func ambiguousComma(s string) bool {
	i := strings.IndexByte(s, ',')
	frac := s[i+1:]
	if len(frac) != 3 || strings.Trim(frac, "0123456789") != "" {
		return false
	}
	whole := strings.TrimLeft(s[:i], "+-")
	return strings.Trim(whole, "0") != ""
}
