package reconcile

import (
	"errors"
	"io"
	"log/slog"

	"github.com/rustyeddy/mt5journal/deals"
	"github.com/rustyeddy/mt5journal/journal"
)

// ErrNoTrades is wrapped in the *deals.FormatError returned when a report
// decodes but completes no trade.
var ErrNoTrades = errors.New("no complete trades found")

// Engine runs decode, classify, match and aggregate in one synchronous
// pass. It holds no state between calls and may be shared.
type Engine struct {
	log *slog.Logger
}

// New returns an Engine that logs skipped rows at debug and over-closes at
// warn level. A nil logger discards.
func New(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{log: log}
}

// Import reads all of r and runs ImportString on it.
func (e *Engine) Import(r io.Reader) (*journal.JournalData, Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Report{}, err
	}
	return e.ImportString(string(data))
}

// ImportString builds a fresh JournalData from a deals report. Any error
// is a *deals.FormatError and no partial result is returned with it.
func (e *Engine) ImportString(text string) (*journal.JournalData, Report, error) {
	tbl, err := deals.DecodeString(text)
	if err != nil {
		return nil, Report{}, err
	}

	m := NewMatcher(e.log)
	var trades []journal.Trade
	for _, rec := range tbl.Records {
		if t, ok := m.Apply(deals.Classify(rec)); ok {
			trades = append(trades, t)
		}
	}

	report := m.Report()
	if len(trades) == 0 {
		return nil, report, deals.NewFormatError("nothing to journal", ErrNoTrades)
	}

	e.log.Debug("deals reconciled", "summary", report.Summary())
	return journal.Aggregate(trades), report, nil
}

// Import runs ImportString on a discarding engine.
func Import(text string) (*journal.JournalData, Report, error) {
	return New(nil).ImportString(text)
}
