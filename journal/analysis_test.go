package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour int, profit string) Trade {
	// January 2024: the 7th is a Sunday
	return mkTrade("x", time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC).Format(time.RFC3339), profit)
}

func TestAnalyzePatternsBuckets(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		at(7, 9, "10"),
		at(7, 9, "-5"),
		at(8, 9, "0"),
		at(8, 15, "3"),
	}

	p := AnalyzePatterns(trades, DefaultMinTrades)

	h9 := p.Hourly[9]
	assert.Equal(t, 9, h9.Key)
	assert.Equal(t, 1, h9.Wins)
	assert.Equal(t, 2, h9.Losses)
	assert.Equal(t, 3, h9.Total)
	assert.InDelta(t, 33.333, h9.WinRate, 0.001)

	assert.Equal(t, 1, p.Hourly[15].Total)
	assert.Equal(t, 100.0, p.Hourly[15].WinRate)
	assert.Equal(t, 0, p.Hourly[0].Total)
	assert.Equal(t, 0.0, p.Hourly[0].WinRate)

	sunday := p.Weekday[int(time.Sunday)]
	assert.Equal(t, 2, sunday.Total)
	assert.Equal(t, 1, sunday.Wins)
	assert.Equal(t, 2, p.Weekday[int(time.Monday)].Total)

	assert.Empty(t, p.BestHour, "no bucket reaches the minimum")
	assert.Empty(t, p.BestDays)
}

func TestAnalyzePatternsBest(t *testing.T) {
	t.Parallel()

	var trades []Trade
	add := func(hour, wins, losses int) {
		for i := 0; i < wins; i++ {
			trades = append(trades, at(8, hour, "1"))
		}
		for i := 0; i < losses; i++ {
			trades = append(trades, at(8, hour, "-1"))
		}
	}
	add(8, 3, 2)  // 60%
	add(10, 4, 1) // 80%
	add(12, 1, 4) // 20%
	add(14, 4, 1) // 80%, ties with 10
	add(16, 4, 0) // 100% but below the minimum

	p := AnalyzePatterns(trades, 5)
	require.Len(t, p.BestHour, 3)
	assert.Equal(t, 10, p.BestHour[0].Key)
	assert.Equal(t, 14, p.BestHour[1].Key)
	assert.Equal(t, 8, p.BestHour[2].Key)

	// all 24 trades closed on a Monday
	require.Len(t, p.BestDays, 1)
	assert.Equal(t, int(time.Monday), p.BestDays[0].Key)
	assert.Equal(t, "Monday", WeekdayName(p.BestDays[0].Key))
}
