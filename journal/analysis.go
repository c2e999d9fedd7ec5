package journal

import (
	"sort"
	"time"
)

// DefaultMinTrades is the bucket size below which an hour or weekday is
// not ranked.
const DefaultMinTrades = 5

// Bucket counts wins and losses for one hour of day or weekday.
type Bucket struct {
	Key     int     `json:"key"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Total   int     `json:"total"`
	WinRate float64 `json:"winRate"`
}

// Patterns is the time-of-trade breakdown of a trade set, keyed on close
// time.
type Patterns struct {
	Hourly   [24]Bucket `json:"hourly"`
	Weekday  [7]Bucket  `json:"weekday"` // Sunday first
	BestHour []Bucket   `json:"bestHours"`
	BestDays []Bucket   `json:"bestDays"`
}

// AnalyzePatterns buckets trades by close hour and weekday, in the close
// time's own location, and ranks the top three buckets holding at least
// minTrades trades.
func AnalyzePatterns(trades []Trade, minTrades int) Patterns {
	var p Patterns
	for i := range p.Hourly {
		p.Hourly[i].Key = i
	}
	for i := range p.Weekday {
		p.Weekday[i].Key = i
	}

	for _, t := range trades {
		h := &p.Hourly[t.CloseTime.Hour()]
		w := &p.Weekday[int(t.CloseTime.Weekday())]
		if t.Win() {
			h.Wins++
			w.Wins++
		} else {
			h.Losses++
			w.Losses++
		}
	}

	for i := range p.Hourly {
		p.Hourly[i].finish()
	}
	for i := range p.Weekday {
		p.Weekday[i].finish()
	}

	p.BestHour = best(p.Hourly[:], minTrades)
	p.BestDays = best(p.Weekday[:], minTrades)
	return p
}

func (b *Bucket) finish() {
	b.Total = b.Wins + b.Losses
	if b.Total > 0 {
		b.WinRate = float64(b.Wins) / float64(b.Total) * 100
	}
}

func best(buckets []Bucket, minTrades int) []Bucket {
	var out []Bucket
	for _, b := range buckets {
		if b.Total >= minTrades {
			out = append(out, b)
		}
	}
	// stable keeps the earlier hour/day first on equal win rates
	sort.SliceStable(out, func(i, j int) bool { return out[i].WinRate > out[j].WinRate })
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// WeekdayName is a display helper for Patterns.Weekday keys.
func WeekdayName(key int) string {
	return time.Weekday(key).String()
}
