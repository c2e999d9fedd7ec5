package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ImportRun records one import into the store.
type ImportRun struct {
	RunID      string
	Created    time.Time
	Source     string
	Rows       int
	Trades     int
	Skipped    int
	Unmatched  int
	OverCloses int
}

// SQLite persists a JournalData. A single store must not be written by
// two importers at once; the caller serializes writes.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Replace swaps the stored journal for j in one transaction and records
// the run. Observations carried by j's days are stored with them.
func (s *SQLite) Replace(ctx context.Context, run ImportRun, j *JournalData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trades`); err != nil {
		return fmt.Errorf("clear trades: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM days`); err != nil {
		return fmt.Errorf("clear days: %w", err)
	}

	seq := 0
	for _, date := range j.Dates() {
		day := j.Days[date]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO days (date, observations) VALUES (?, ?)`,
			day.Date, day.Observations,
		); err != nil {
			return fmt.Errorf("insert day %s: %w", day.Date, err)
		}

		for _, t := range day.Trades {
			seq++
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO trades
				(trade_id, leg, seq, day, symbol, side, open_time, close_time,
				 open_price, close_price, volume, profit, commission, swap)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.Leg, seq, day.Date, t.Symbol, t.Type,
				t.OpenTime.UTC(), t.CloseTime.UTC(),
				t.OpenPrice, t.ClosePrice, t.Volume, t.Profit, t.Commission, t.Swap,
			); err != nil {
				return fmt.Errorf("insert trade %s/%d: %w", t.ID, t.Leg, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO imports
		(run_id, created, source, row_count, trades, skipped, unmatched, over_closes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Created.UTC(), run.Source, run.Rows, run.Trades,
		run.Skipped, run.Unmatched, run.OverCloses,
	); err != nil {
		return fmt.Errorf("insert import: %w", err)
	}

	return tx.Commit()
}

// SetObservations stores the free-text notes of a trading day.
func (s *SQLite) SetObservations(ctx context.Context, date, text string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades WHERE day = ?`, date).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no trades on %s", date)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO days (date, observations) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET observations = excluded.observations`,
		date, text,
	)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
