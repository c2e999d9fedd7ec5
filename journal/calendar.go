package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalendarCells is six weeks of seven days.
const CalendarCells = 42

type CalendarDay struct {
	Date           string          `json:"date"`
	DayOfMonth     int             `json:"dayOfMonth"`
	IsCurrentMonth bool            `json:"isCurrentMonth"`
	HasTrading     bool            `json:"hasTrading"`
	Profit         decimal.Decimal `json:"profit"`
	TradeCount     int             `json:"tradeCount"`
}

// MonthGrid lays out month as a Sunday-first grid padded with the tail of
// the previous month and the head of the next.
func MonthGrid(year int, month time.Month, j *JournalData) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]CalendarDay, 0, CalendarCells)
	for i := 0; i < CalendarCells; i++ {
		d := start.AddDate(0, 0, i)
		c := CalendarDay{
			Date:           d.Format(DayLayout),
			DayOfMonth:     d.Day(),
			IsCurrentMonth: d.Month() == first.Month(),
		}
		if j != nil {
			if day, ok := j.Days[c.Date]; ok {
				c.HasTrading = true
				c.Profit = day.TotalProfit
				c.TradeCount = day.TradeCount
			}
		}
		cells = append(cells, c)
	}
	return cells
}

// MonthTotal sums the profit and trade count of the in-month cells.
func MonthTotal(cells []CalendarDay) (decimal.Decimal, int) {
	var (
		profit decimal.Decimal
		count  int
	)
	for _, c := range cells {
		if !c.IsCurrentMonth {
			continue
		}
		profit = profit.Add(c.Profit)
		count += c.TradeCount
	}
	return profit, count
}
