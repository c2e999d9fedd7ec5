// Package reconcile matches classified broker deals into completed trades
// and runs the full import pipeline from report text to journal data.
package reconcile

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/mt5journal/deals"
	"github.com/rustyeddy/mt5journal/journal"
)

// OpenPosition is an opened but not fully closed position. Remaining,
// Commission and Swap shrink as partial closes consume it.
type OpenPosition struct {
	Order      string
	Symbol     string
	Side       deals.Side
	OpenTime   time.Time
	OpenPrice  decimal.Decimal
	Remaining  decimal.Decimal
	Commission decimal.Decimal
	Swap       decimal.Decimal
	Line       int
}

// Matcher holds the working set of one pass. It is not safe for
// concurrent use; start a new Matcher per input.
type Matcher struct {
	open   map[string]*OpenPosition
	legs   map[string]int
	report Report
	log    *slog.Logger
}

func NewMatcher(log *slog.Logger) *Matcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Matcher{
		open:   make(map[string]*OpenPosition),
		legs:   make(map[string]int),
		report: newReport(),
		log:    log,
	}
}

// Match feeds ds in order and returns the trades they complete.
func (m *Matcher) Match(ds []deals.Deal) []journal.Trade {
	var out []journal.Trade
	for _, d := range ds {
		if t, ok := m.Apply(d); ok {
			out = append(out, t)
		}
	}
	return out
}

// Apply processes one deal. It returns a trade when d closes all or part
// of a tracked position.
func (m *Matcher) Apply(d deals.Deal) (journal.Trade, bool) {
	m.report.Rows++
	switch d.Kind {
	case deals.Open:
		m.report.Opens++
		m.openPosition(d)
		return journal.Trade{}, false
	case deals.Close:
		m.report.Closes++
		return m.closePosition(d)
	default:
		m.report.Skipped[d.Skip]++
		m.log.Debug("row skipped", "line", d.Line, "order", d.Order, "reason", string(d.Skip))
		return journal.Trade{}, false
	}
}

func (m *Matcher) openPosition(d deals.Deal) {
	if prev, ok := m.open[d.Order]; ok {
		m.log.Debug("open replaces tracked position", "order", d.Order, "line", d.Line, "previous_line", prev.Line)
	}
	m.open[d.Order] = &OpenPosition{
		Order:      d.Order,
		Symbol:     d.Symbol,
		Side:       d.Side,
		OpenTime:   d.Time,
		OpenPrice:  d.Price,
		Remaining:  d.Volume,
		Commission: d.Commission,
		Swap:       d.Swap,
		Line:       d.Line,
	}
}

func (m *Matcher) closePosition(d deals.Deal) (journal.Trade, bool) {
	pos, ok := m.open[d.Order]
	if !ok {
		m.report.UnmatchedCloses++
		m.log.Debug("close without open dropped", "line", d.Line, "order", d.Order)
		return journal.Trade{}, false
	}

	closed := d.Volume
	if !closed.IsPositive() {
		closed = pos.Remaining
	}
	if closed.GreaterThan(pos.Remaining) {
		oc := OverClose{Order: d.Order, Line: d.Line, CloseVolume: closed, Remaining: pos.Remaining}
		m.report.OverCloses = append(m.report.OverCloses, oc)
		m.log.Warn("close volume exceeds open position, clamped",
			"line", d.Line, "order", d.Order,
			"close_volume", closed.String(), "remaining", pos.Remaining.String())
		closed = pos.Remaining
	}

	var commission, swap decimal.Decimal
	if closed.Equal(pos.Remaining) {
		commission = pos.Commission
		swap = pos.Swap
		delete(m.open, d.Order)
	} else {
		ratio := closed.Div(pos.Remaining)
		keep := decimal.NewFromInt(1).Sub(ratio)
		commission = pos.Commission.Mul(ratio)
		swap = pos.Swap.Mul(ratio)

		pos.Remaining = pos.Remaining.Sub(closed)
		pos.Commission = pos.Commission.Mul(keep)
		pos.Swap = pos.Swap.Mul(keep)
	}

	m.legs[d.Order]++
	m.report.Trades++

	return journal.Trade{
		ID:         d.Order,
		Leg:        m.legs[d.Order],
		Symbol:     pos.Symbol,
		Type:       string(pos.Side),
		OpenTime:   pos.OpenTime,
		CloseTime:  d.Time,
		OpenPrice:  pos.OpenPrice,
		ClosePrice: d.Price,
		Volume:     closed,
		Profit:     d.Profit,
		Commission: commission.Add(d.Commission),
		Swap:       swap.Add(d.Swap),
	}, true
}

// OpenPositions returns the positions still tracked, sorted by order.
func (m *Matcher) OpenPositions() []OpenPosition {
	out := make([]OpenPosition, 0, len(m.open))
	for _, p := range m.open {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Report returns the diagnostics gathered so far.
func (m *Matcher) Report() Report {
	r := m.report
	r.Skipped = make(map[deals.SkipReason]int, len(m.report.Skipped))
	for k, v := range m.report.Skipped {
		r.Skipped[k] = v
	}
	r.OverCloses = append([]OverClose(nil), m.report.OverCloses...)
	r.OpenPositions = m.OpenPositions()
	return r
}
