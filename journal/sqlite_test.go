package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func testRun(id string, trades int) ImportRun {
	return ImportRun{
		RunID:   id,
		Created: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		Source:  "deals.csv",
		Rows:    trades * 2,
		Trades:  trades,
	}
}

func sampleJournal() *JournalData {
	partial := mkTrade("7", "2024-05-01T10:00:00Z", "50")
	partial.Volume = dec("1")
	partial.Commission = dec("-1.25")
	partial.Swap = dec("0.1")
	second := partial
	second.Leg = 2
	second.CloseTime = second.CloseTime.Add(time.Hour)
	second.Profit = dec("-20")

	j := Aggregate([]Trade{
		partial,
		mkTrade("8", "2024-05-02T09:00:00Z", "12.75"),
		second,
	})
	j.Days["2024-05-01"].Observations = "scaled out"
	return j
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','days','imports')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["days"])
	assert.True(t, found["imports"])
}

func TestSQLiteReplaceAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestSQLite(t)
	defer s.Close()

	want := sampleJournal()
	require.NoError(t, s.Replace(ctx, testRun("01A", 3), want))

	got, err := s.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Dates(), got.Dates())
	for _, date := range want.Dates() {
		w, g := want.Days[date], got.Days[date]
		require.Len(t, g.Trades, len(w.Trades), date)
		assert.Equal(t, w.Observations, g.Observations)
		assert.True(t, w.TotalProfit.Equal(g.TotalProfit))
		assert.Equal(t, w.TradeCount, g.TradeCount)
		for i := range w.Trades {
			wt, gt := w.Trades[i], g.Trades[i]
			assert.Equal(t, wt.ID, gt.ID)
			assert.Equal(t, wt.Leg, gt.Leg)
			assert.Equal(t, wt.Symbol, gt.Symbol)
			assert.Equal(t, wt.Type, gt.Type)
			assert.True(t, wt.OpenTime.Equal(gt.OpenTime))
			assert.True(t, wt.CloseTime.Equal(gt.CloseTime))
			assert.True(t, wt.Volume.Equal(gt.Volume))
			assert.True(t, wt.Profit.Equal(gt.Profit))
			assert.True(t, wt.Commission.Equal(gt.Commission))
			assert.True(t, wt.Swap.Equal(gt.Swap))
			assert.True(t, wt.OpenPrice.Equal(gt.OpenPrice))
			assert.True(t, wt.ClosePrice.Equal(gt.ClosePrice))
		}
	}

	assert.Equal(t, want.Statistics.TotalTrades, got.Statistics.TotalTrades)
	assert.Equal(t, want.Statistics.WinningTrades, got.Statistics.WinningTrades)
	assert.True(t, want.Statistics.TotalProfit.Equal(got.Statistics.TotalProfit))
}

func TestSQLiteReplaceIsWholesale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestSQLite(t)
	defer s.Close()

	require.NoError(t, s.Replace(ctx, testRun("01A", 3), sampleJournal()))

	next := Aggregate([]Trade{mkTrade("99", "2024-07-01T10:00:00Z", "1")})
	require.NoError(t, s.Replace(ctx, testRun("01B", 1), next))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-07-01"}, got.Dates())
	assert.Equal(t, 1, got.Statistics.TotalTrades)

	notes, err := s.Observations(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2024-07-01": ""}, notes)

	runs, err := s.ListImports(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "01A", runs[0].RunID)
	assert.Equal(t, "01B", runs[1].RunID)
	assert.Equal(t, 1, runs[1].Trades)
	assert.Equal(t, "deals.csv", runs[1].Source)
	assert.True(t, runs[0].Created.Equal(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)))
}

func TestSQLiteSetObservations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestSQLite(t)
	defer s.Close()

	require.NoError(t, s.Replace(ctx, testRun("01A", 3), sampleJournal()))
	require.NoError(t, s.SetObservations(ctx, "2024-05-02", "news spike"))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "news spike", got.Days["2024-05-02"].Observations)
	assert.Equal(t, "scaled out", got.Days["2024-05-01"].Observations)

	err = s.SetObservations(ctx, "2030-01-01", "nothing here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trades")
}

func TestSQLiteGetTrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestSQLite(t)
	defer s.Close()

	require.NoError(t, s.Replace(ctx, testRun("01A", 3), sampleJournal()))

	tr, err := s.GetTrade(ctx, "7", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Leg)
	assert.True(t, tr.Profit.Equal(dec("-20")))

	_, err = s.GetTrade(ctx, "7", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteListTradesClosedBetween(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestSQLite(t)
	defer s.Close()

	require.NoError(t, s.Replace(ctx, testRun("01A", 3), sampleJournal()))

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	got, err := s.ListTradesClosedBetween(ctx, start, start.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Leg)
	assert.Equal(t, 2, got[1].Leg)

	got, err = s.ListTradesClosedBetween(ctx, start.Add(24*time.Hour), start.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "8", got[0].ID)

	got, err = s.ListTradesClosedBetween(ctx, start.Add(-48*time.Hour), start)
	require.NoError(t, err)
	assert.Empty(t, got)
}
