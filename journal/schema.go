// journal/schema.go
package journal

// Amounts are stored as TEXT so decimals round-trip exactly. seq keeps the
// import order of trades across days.
const Schema = `
CREATE TABLE IF NOT EXISTS imports (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	source TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	trades INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	unmatched INTEGER NOT NULL,
	over_closes INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT NOT NULL,
	leg INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	day TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL,
	open_price TEXT NOT NULL,
	close_price TEXT NOT NULL,
	volume TEXT NOT NULL,
	profit TEXT NOT NULL,
	commission TEXT NOT NULL,
	swap TEXT NOT NULL,
	PRIMARY KEY (trade_id, leg)
);

CREATE INDEX IF NOT EXISTS idx_trades_close_time ON trades(close_time);
CREATE INDEX IF NOT EXISTS idx_trades_day ON trades(day);

CREATE TABLE IF NOT EXISTS days (
	date TEXT PRIMARY KEY,
	observations TEXT NOT NULL DEFAULT ''
);
`
