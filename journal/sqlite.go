package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) Record(r Record) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(txn_id, type, symbol, quantity, price, total_amount, date, lot_id, buy_price, profit_per_unit, total_profit, profit_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.TxnID, r.Type, r.Symbol, r.Quantity,
		r.Price.String(), r.TotalAmount.String(), r.Date,
		nullStr(r.LotID),
		nullDec(r.BuyPrice), nullDec(r.ProfitPerUnit),
		nullDec(r.TotalProfit), nullDec(r.ProfitPercent),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDec(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}
