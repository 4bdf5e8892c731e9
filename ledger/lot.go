package ledger

import (
	"time"

	"github.com/rustyeddy/etfdesk/journal"
	"github.com/shopspring/decimal"
)

type LotStatus string

const (
	LotActive LotStatus = "active"
	LotSold   LotStatus = "sold"
)

// Lot is a single acquisition, tracked independently for cost basis.
// Once created only Quantity (partial sells) and Status may change.
type Lot struct {
	ID       string          `json:"id"`
	Seq      int64           `json:"seq"`
	Symbol   string          `json:"symbol"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Date     time.Time       `json:"date"`
	Status   LotStatus       `json:"status"`
}

// Cost is remaining quantity times unit acquisition price.
func (l Lot) Cost() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

type TxnType string

const (
	TxnBuy  TxnType = "buy"
	TxnSell TxnType = "sell"
)

// Transaction is the append-only audit record of one executed buy or sell.
// Sells carry the linked lot and the realized profit figures.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TxnType         `json:"type"`
	Symbol      string          `json:"symbol"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Date        time.Time       `json:"date"`

	LotID         string              `json:"lot_id,omitempty"`
	BuyPrice      decimal.NullDecimal `json:"buy_price,omitempty"`
	ProfitPerUnit decimal.NullDecimal `json:"profit_per_unit,omitempty"`
	TotalProfit   decimal.NullDecimal `json:"total_profit,omitempty"`
	ProfitPercent decimal.NullDecimal `json:"profit_percent,omitempty"`
}

func (t Transaction) journalRecord() journal.Record {
	return journal.Record{
		TxnID:         t.ID,
		Type:          string(t.Type),
		Symbol:        t.Symbol,
		Quantity:      t.Quantity,
		Price:         t.Price,
		TotalAmount:   t.TotalAmount,
		Date:          t.Date,
		LotID:         t.LotID,
		BuyPrice:      t.BuyPrice,
		ProfitPerUnit: t.ProfitPerUnit,
		TotalProfit:   t.TotalProfit,
		ProfitPercent: t.ProfitPercent,
	}
}
