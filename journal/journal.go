// journal/journal.go
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one buy or sell event exactly as the ledger executed it.
// The journal is append-only: records are never updated or deleted.
type Record struct {
	TxnID       string
	Type        string // "buy" or "sell"
	Symbol      string
	Quantity    int64
	Price       decimal.Decimal
	TotalAmount decimal.Decimal
	Date        time.Time

	// Sell-only fields. LotID links the sell to the lot it unwound.
	LotID         string
	BuyPrice      decimal.NullDecimal
	ProfitPerUnit decimal.NullDecimal
	TotalProfit   decimal.NullDecimal
	ProfitPercent decimal.NullDecimal
}

type Journal interface {
	Record(Record) error
	Close() error
}
