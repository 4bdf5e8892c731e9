package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Holding is the per-instrument rollup of all active lots.
type Holding struct {
	Symbol            string
	Quantity          int64
	AvgBuyPrice       decimal.Decimal
	CurrentPrice      decimal.Decimal
	Cost              decimal.Decimal
	Value             decimal.Decimal
	ProfitLoss        decimal.Decimal
	ProfitLossPercent decimal.Decimal
}

// Summary is the portfolio valuation across all held instruments.
type Summary struct {
	Instruments  int
	Invested     decimal.Decimal
	CurrentValue decimal.Decimal
	ProfitLoss   decimal.Decimal
	Holdings     []Holding
}

// heldOrder returns the symbols with active lots: tracked instruments
// in registration order first, then lots whose instrument was removed
// from the universe, alphabetically. Removal never hides a position
// from valuation.
func (l *Ledger) heldOrder(holdings map[string][]Lot) []string {
	out := make([]string, 0, len(holdings))
	seen := make(map[string]bool, len(holdings))
	for _, sym := range l.order {
		if _, held := holdings[sym]; held {
			out = append(out, sym)
			seen[sym] = true
		}
	}

	var untracked []string
	for sym := range holdings {
		if !seen[sym] {
			untracked = append(untracked, sym)
		}
	}
	sort.Strings(untracked)
	return append(out, untracked...)
}

// Summary values every held instrument at its latest price. An
// instrument without a price values at zero; a zero cost basis reports
// 0% P&L instead of dividing by zero.
func (l *Ledger) Summary() Summary {
	holdings := l.Holdings()
	s := Summary{
		Invested:     decimal.Zero,
		CurrentValue: decimal.Zero,
		ProfitLoss:   decimal.Zero,
	}

	for _, sym := range l.heldOrder(holdings) {
		lots := holdings[sym]

		cost := decimal.Zero
		var qty int64
		for _, lot := range lots {
			cost = cost.Add(lot.Cost())
			qty += lot.Quantity
		}
		avgBuy := cost.Div(decimal.NewFromInt(qty))

		price := decimal.Zero
		if in, ok := l.instruments[sym]; ok && in.Price.Valid {
			price = in.Price.Decimal
		}
		value := price.Mul(decimal.NewFromInt(qty))
		pl := value.Sub(cost)

		plPercent := decimal.Zero
		if cost.IsPositive() {
			plPercent = pl.Div(cost).Mul(hundred)
		}

		s.Invested = s.Invested.Add(cost)
		s.CurrentValue = s.CurrentValue.Add(value)
		s.ProfitLoss = s.ProfitLoss.Add(pl)
		s.Holdings = append(s.Holdings, Holding{
			Symbol:            sym,
			Quantity:          qty,
			AvgBuyPrice:       avgBuy,
			CurrentPrice:      price,
			Cost:              cost,
			Value:             value,
			ProfitLoss:        pl,
			ProfitLossPercent: plPercent,
		})
	}
	s.Instruments = len(s.Holdings)
	return s
}
