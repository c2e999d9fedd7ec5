package journal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeCSVHeader(t *testing.T) {
	t.Parallel()

	out := SerializeCSV(&JournalData{Days: map[string]*DayJournal{}})
	assert.Equal(t, "Date,Symbol,Type,Open Time,Close Time,Open Price,Close Price,Volume,Profit,Observations\n", out)
}

func TestSerializeCSVRows(t *testing.T) {
	t.Parallel()

	open := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	closeT := time.Date(2024, 1, 2, 4, 5, 6, 700_000_000, time.UTC)

	j := Aggregate([]Trade{
		{
			ID: "T1", Leg: 1, Symbol: "EURUSD", Type: "sell",
			OpenTime: open, CloseTime: closeT,
			OpenPrice: dec("1.2345"), ClosePrice: dec("1.2300"),
			Volume: dec("0.5"), Profit: dec("-12.5"),
		},
		mkTrade("T0", "2024-01-01T10:00:00Z", "3"),
	})
	j.Days["2024-01-02"].Observations = `chased the "breakout"`

	lines := strings.Split(strings.TrimSuffix(SerializeCSV(j), "\n"), "\n")
	require.Len(t, lines, 3)

	// days ascending
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-01,EURUSD,buy,2024-01-01T09:00:00.000Z,2024-01-01T10:00:00.000Z,"))
	assert.True(t, strings.HasSuffix(lines[1], `,""`))

	want := `2024-01-02,EURUSD,sell,2024-01-02T03:04:05.000Z,2024-01-02T04:05:06.700Z,1.2345,1.23,0.5,-12.5,"chased the ""breakout"""`
	assert.Equal(t, want, lines[2])
}

func TestWriteCSVQuotesUnsafeFields(t *testing.T) {
	t.Parallel()

	tr := mkTrade("1", "2024-01-01T10:00:00Z", "1")
	tr.Symbol = "US30,cash"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Aggregate([]Trade{tr})))
	assert.Contains(t, buf.String(), `,"US30,cash",`)
}

func TestExportTimeIsUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("EET", 2*3600)
	tr := mkTrade("1", "2024-01-01T10:00:00Z", "1")
	tr.CloseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, loc)
	assert.Equal(t, "2024-01-01T10:00:00.000Z", ts(tr.CloseTime))
}
