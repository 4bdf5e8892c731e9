package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const selectCols = `txn_id, type, symbol, quantity, price, total_amount, date, lot_id, buy_price, profit_per_unit, total_profit, profit_percent`

// GetRecord returns a single transaction record by ID.
func (j *SQLite) GetRecord(txnID string) (Record, error) {
	row := j.db.QueryRow(`
		SELECT `+selectCols+`
		FROM transactions
		WHERE txn_id = ?`, txnID)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Record{}, fmt.Errorf("transaction %q not found", txnID)
		}
		return Record{}, err
	}
	return rec, nil
}

// ListBetween returns transactions whose date is within [start, end).
func (j *SQLite) ListBetween(start, end time.Time) ([]Record, error) {
	rows, err := j.db.Query(`
		SELECT `+selectCols+`
		FROM transactions
		WHERE date >= ? AND date < ?
		ORDER BY date ASC, txn_id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

// ListBySymbol returns every transaction for one instrument, oldest first.
func (j *SQLite) ListBySymbol(symbol string) ([]Record, error) {
	rows, err := j.db.Query(`
		SELECT `+selectCols+`
		FROM transactions
		WHERE symbol = ?
		ORDER BY date ASC, txn_id ASC`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows *sql.Rows) ([]Record, error) {
	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		rec    Record
		price  string
		total  string
		lotID  sql.NullString
		buy    sql.NullString
		perU   sql.NullString
		profit sql.NullString
		pct    sql.NullString
	)

	err := s.Scan(
		&rec.TxnID, &rec.Type, &rec.Symbol, &rec.Quantity,
		&price, &total, &rec.Date,
		&lotID, &buy, &perU, &profit, &pct,
	)
	if err != nil {
		return Record{}, err
	}

	if rec.Price, err = decimal.NewFromString(price); err != nil {
		return Record{}, fmt.Errorf("bad price %q: %w", price, err)
	}
	if rec.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return Record{}, fmt.Errorf("bad total_amount %q: %w", total, err)
	}
	rec.LotID = lotID.String

	for _, f := range []struct {
		src sql.NullString
		dst *decimal.NullDecimal
	}{
		{buy, &rec.BuyPrice},
		{perU, &rec.ProfitPerUnit},
		{profit, &rec.TotalProfit},
		{pct, &rec.ProfitPercent},
	} {
		if !f.src.Valid {
			continue
		}
		d, err := decimal.NewFromString(f.src.String)
		if err != nil {
			return Record{}, fmt.Errorf("bad decimal %q: %w", f.src.String, err)
		}
		*f.dst = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	return rec, nil
}
