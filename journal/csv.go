// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

// NewCSV opens the journal in append mode. The header row is written
// only when the file is new, so reopening keeps prior records.
func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)

	if st.Size() == 0 {
		if err := w.Write([]string{"txn_id", "type", "symbol", "quantity", "price", "total_amount", "date", "lot_id", "buy_price", "profit_per_unit", "total_profit", "profit_percent"}); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) Record(r Record) error {
	err := j.w.Write([]string{
		r.TxnID,
		r.Type,
		r.Symbol,
		strconv.FormatInt(r.Quantity, 10),
		r.Price.String(),
		r.TotalAmount.String(),
		r.Date.Format(time.RFC3339),
		r.LotID,
		nd(r.BuyPrice),
		nd(r.ProfitPerUnit),
		nd(r.TotalProfit),
		nd(r.ProfitPercent),
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func nd(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
