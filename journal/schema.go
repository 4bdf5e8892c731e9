// journal/schema.go
package journal

// Prices and profit figures are stored as TEXT so the decimal values
// round-trip without float conversion.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	txn_id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price TEXT NOT NULL,
	total_amount TEXT NOT NULL,
	date DATETIME NOT NULL,
	lot_id TEXT,
	buy_price TEXT,
	profit_per_unit TEXT,
	total_profit TEXT,
	profit_percent TEXT
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol);
`
