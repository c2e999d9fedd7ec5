// journal/journal.go
package journal

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DayLayout is the key format of a DayJournal.
const DayLayout = "2006-01-02"

// Trade is one completed round trip. For a partially closed position
// Volume is the slice closed by this event and Leg counts the closes
// emitted for the same order.
type Trade struct {
	ID         string          `json:"id"`
	Leg        int             `json:"leg"`
	Symbol     string          `json:"symbol"`
	Type       string          `json:"type"` // "buy" or "sell"
	OpenTime   time.Time       `json:"openTime"`
	CloseTime  time.Time       `json:"closeTime"`
	OpenPrice  decimal.Decimal `json:"openPrice"`
	ClosePrice decimal.Decimal `json:"closePrice"`
	Volume     decimal.Decimal `json:"volume"`
	Profit     decimal.Decimal `json:"profit"`
	Commission decimal.Decimal `json:"commission"`
	Swap       decimal.Decimal `json:"swap"`
}

// Day is the journal key for the trade: the UTC calendar date of its close.
func (t Trade) Day() string {
	return t.CloseTime.UTC().Format(DayLayout)
}

// Win reports whether the trade counts as a winner. Zero profit is a loss.
func (t Trade) Win() bool {
	return t.Profit.IsPositive()
}

// DayJournal holds the trades closed on one date. TotalProfit and
// TradeCount always agree with Trades; use Add to append.
type DayJournal struct {
	Date         string          `json:"date"`
	Trades       []Trade         `json:"trades"`
	Observations string          `json:"observations"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	TradeCount   int             `json:"tradeCount"`
}

func NewDay(date string) *DayJournal {
	return &DayJournal{Date: date, Trades: []Trade{}}
}

func (d *DayJournal) Add(t Trade) {
	d.Trades = append(d.Trades, t)
	d.TotalProfit = d.TotalProfit.Add(t.Profit)
	d.TradeCount++
}

// Statistics summarize a whole trade collection.
type Statistics struct {
	TotalTrades   int             `json:"totalTrades"`
	WinningTrades int             `json:"winningTrades"`
	LosingTrades  int             `json:"losingTrades"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	WinRate       float64         `json:"winRate"` // percent
	AverageWin    decimal.Decimal `json:"averageWin"`
	AverageLoss   decimal.Decimal `json:"averageLoss"`
	LargestWin    decimal.Decimal `json:"largestWin"`
	LargestLoss   decimal.Decimal `json:"largestLoss"`
}

// JournalData is the result of one import: day journals keyed by date and
// statistics over every trade they hold.
type JournalData struct {
	Days       map[string]*DayJournal `json:"days"`
	Statistics Statistics             `json:"statistics"`
}

// Dates returns the day keys in ascending order.
func (j *JournalData) Dates() []string {
	dates := make([]string, 0, len(j.Days))
	for d := range j.Days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Trades returns every trade, days ascending and trades in stored order.
func (j *JournalData) Trades() []Trade {
	var out []Trade
	for _, d := range j.Dates() {
		out = append(out, j.Days[d].Trades...)
	}
	return out
}

func (j *JournalData) Day(date string) (*DayJournal, bool) {
	d, ok := j.Days[date]
	return d, ok
}

// Latest returns the most recent trading day, which the UI selects after
// an import.
func (j *JournalData) Latest() (*DayJournal, bool) {
	dates := j.Dates()
	if len(dates) == 0 {
		return nil, false
	}
	return j.Days[dates[len(dates)-1]], true
}
