package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const tradeColumns = `trade_id, leg, day, symbol, side, open_time, close_time,
	open_price, close_price, volume, profit, commission, swap`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (Trade, string, error) {
	var (
		t   Trade
		day string
	)
	err := row.Scan(
		&t.ID,
		&t.Leg,
		&day,
		&t.Symbol,
		&t.Type,
		&t.OpenTime,
		&t.CloseTime,
		&t.OpenPrice,
		&t.ClosePrice,
		&t.Volume,
		&t.Profit,
		&t.Commission,
		&t.Swap,
	)
	return t, day, err
}

// Load rebuilds the stored journal. Statistics are recomputed from the
// stored trades rather than stored themselves.
func (s *SQLite) Load(ctx context.Context) (*JournalData, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	j := &JournalData{Days: make(map[string]*DayJournal)}
	for rows.Next() {
		t, key, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		day, ok := j.Days[key]
		if !ok {
			day = NewDay(key)
			j.Days[key] = day
		}
		day.Add(t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	notes, err := s.Observations(ctx)
	if err != nil {
		return nil, err
	}
	for date, text := range notes {
		if day, ok := j.Days[date]; ok {
			day.Observations = text
		}
	}

	j.Recompute()
	return j, nil
}

// Observations returns the stored notes keyed by date.
func (s *SQLite) Observations(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, observations FROM days`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var date, text string
		if err := rows.Scan(&date, &text); err != nil {
			return nil, err
		}
		out[date] = text
	}
	return out, rows.Err()
}

// GetTrade returns one close leg of an order.
func (s *SQLite) GetTrade(ctx context.Context, tradeID string, leg int) (Trade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ? AND leg = ?`, tradeID, leg)

	t, _, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, fmt.Errorf("trade %q leg %d not found", tradeID, leg)
		}
		return Trade{}, err
	}
	return t, nil
}

// ListTradesClosedBetween returns trades whose close_time is within [start, end).
func (s *SQLite) ListTradesClosedBetween(ctx context.Context, start, end time.Time) ([]Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE close_time >= ? AND close_time < ?
		ORDER BY close_time ASC, seq ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, _, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListImports returns the recorded runs, oldest first.
func (s *SQLite) ListImports(ctx context.Context) ([]ImportRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, created, source, row_count, trades, skipped, unmatched, over_closes
		FROM imports
		ORDER BY run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(
			&r.RunID,
			&r.Created,
			&r.Source,
			&r.Rows,
			&r.Trades,
			&r.Skipped,
			&r.Unmatched,
			&r.OverCloses,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
