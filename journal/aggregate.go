package journal

import "github.com/shopspring/decimal"

// Aggregate groups trades by close date, keeping their order within each
// day, and computes statistics over all of them.
func Aggregate(trades []Trade) *JournalData {
	j := &JournalData{Days: make(map[string]*DayJournal)}
	for _, t := range trades {
		key := t.Day()
		day, ok := j.Days[key]
		if !ok {
			day = NewDay(key)
			j.Days[key] = day
		}
		day.Add(t)
	}
	j.Statistics = ComputeStatistics(trades)
	return j
}

// ComputeStatistics is a pure reducer over trades. Every mean and extreme
// is zero for an empty subset.
func ComputeStatistics(trades []Trade) Statistics {
	var (
		s                 Statistics
		winSum, lossSum   decimal.Decimal
		haveWin, haveLoss bool
	)

	for _, t := range trades {
		s.TotalTrades++
		s.TotalProfit = s.TotalProfit.Add(t.Profit)

		if t.Win() {
			s.WinningTrades++
			winSum = winSum.Add(t.Profit)
			if !haveWin || t.Profit.GreaterThan(s.LargestWin) {
				s.LargestWin = t.Profit
				haveWin = true
			}
			continue
		}

		s.LosingTrades++
		lossSum = lossSum.Add(t.Profit)
		if !haveLoss || t.Profit.LessThan(s.LargestLoss) {
			s.LargestLoss = t.Profit
			haveLoss = true
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades) * 100
	}
	if s.WinningTrades > 0 {
		s.AverageWin = winSum.Div(decimal.NewFromInt(int64(s.WinningTrades)))
	}
	if s.LosingTrades > 0 {
		s.AverageLoss = lossSum.Div(decimal.NewFromInt(int64(s.LosingTrades)))
	}
	return s
}

// Recompute refreshes Statistics from the trades currently held in Days.
func (j *JournalData) Recompute() {
	j.Statistics = ComputeStatistics(j.Trades())
}
