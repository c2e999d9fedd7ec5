// journal/csv.go
package journal

import (
	"bufio"
	"io"
	"strings"
	"time"
)

// ExportHeader is the first line of a CSV export.
var ExportHeader = []string{"Date", "Symbol", "Type", "Open Time", "Close Time", "Open Price", "Close Price", "Volume", "Profit", "Observations"}

// ExportTimeLayout renders instants in UTC with millisecond precision.
const ExportTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// WriteCSV writes one line per trade, days ascending. The observations
// column is always quoted. The export is one way: it is not re-imported.
func WriteCSV(w io.Writer, j *JournalData) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(ExportHeader, ",") + "\n"); err != nil {
		return err
	}

	for _, date := range j.Dates() {
		day := j.Days[date]
		notes := quote(day.Observations)
		for _, t := range day.Trades {
			fields := []string{
				field(day.Date),
				field(t.Symbol),
				field(t.Type),
				ts(t.OpenTime),
				ts(t.CloseTime),
				t.OpenPrice.String(),
				t.ClosePrice.String(),
				t.Volume.String(),
				t.Profit.String(),
				notes,
			}
			if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// SerializeCSV is WriteCSV into a string.
func SerializeCSV(j *JournalData) string {
	var b strings.Builder
	_ = WriteCSV(&b, j)
	return b.String()
}

func ts(t time.Time) string {
	return t.UTC().Format(ExportTimeLayout)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// field quotes s only when it would break the row.
func field(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}
