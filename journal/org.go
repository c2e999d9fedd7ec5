package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a Trade as an Org-mode sub-heading with the
// structured facts in a PROPERTIES drawer for easy search.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("*** Trade: %s %s (%s)", t.Symbol, t.Type, shortID(legID(t)))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":LEG: %d\n", t.Leg))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":TYPE: %s\n", t.Type))
	b.WriteString(fmt.Sprintf(":VOLUME: %s\n", t.Volume))
	b.WriteString(fmt.Sprintf(":OPEN_PRICE: %s\n", t.OpenPrice))
	b.WriteString(fmt.Sprintf(":CLOSE_PRICE: %s\n", t.ClosePrice))
	b.WriteString(fmt.Sprintf(":OPEN_TIME: %s\n", t.OpenTime.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":CLOSE_TIME: %s\n", t.CloseTime.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":PROFIT: %s\n", t.Profit.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":COMMISSION: %s\n", t.Commission.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":SWAP: %s\n", t.Swap.StringFixed(2)))
	b.WriteString(":END:\n")

	return b.String()
}

// FormatDayOrg renders one day: a heading with the day totals, the
// observations as body text and one sub-heading per trade.
func FormatDayOrg(d *DayJournal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("** %s  P/L %s  (%d trades)\n", d.Date, d.TotalProfit.StringFixed(2), d.TradeCount))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":DATE: %s\n", d.Date))
	b.WriteString(fmt.Sprintf(":TOTAL_PROFIT: %s\n", d.TotalProfit.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":TRADES: %d\n", d.TradeCount))
	b.WriteString(":END:\n")
	if obs := strings.TrimSpace(d.Observations); obs != "" {
		b.WriteString(obs)
		b.WriteString("\n")
	}
	for _, t := range d.Trades {
		b.WriteString("\n")
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// FormatJournalOrg renders the statistics followed by every day ascending,
// days separated by blank lines.
func FormatJournalOrg(j *JournalData) string {
	s := j.Statistics

	var b strings.Builder
	b.WriteString("* Trading Journal\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TOTAL_TRADES: %d\n", s.TotalTrades))
	b.WriteString(fmt.Sprintf(":WINS: %d\n", s.WinningTrades))
	b.WriteString(fmt.Sprintf(":LOSSES: %d\n", s.LosingTrades))
	b.WriteString(fmt.Sprintf(":WIN_RATE: %.2f\n", s.WinRate))
	b.WriteString(fmt.Sprintf(":TOTAL_PROFIT: %s\n", s.TotalProfit.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":AVERAGE_WIN: %s\n", s.AverageWin.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":AVERAGE_LOSS: %s\n", s.AverageLoss.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":LARGEST_WIN: %s\n", s.LargestWin.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":LARGEST_LOSS: %s\n", s.LargestLoss.StringFixed(2)))
	b.WriteString(":END:\n")

	for _, date := range j.Dates() {
		b.WriteString("\n\n")
		b.WriteString(FormatDayOrg(j.Days[date]))
	}
	return b.String()
}

func legID(t Trade) string {
	if t.Leg <= 1 {
		return t.ID
	}
	return fmt.Sprintf("%s/%d", t.ID, t.Leg)
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
