package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultAveragingThreshold is the loss percentage at or below which a
// held instrument becomes an averaging-down candidate.
var DefaultAveragingThreshold = decimal.NewFromFloat(-2.5)

// DefaultProfitThreshold is the profit percentage at or above which the
// newest lot of a held instrument becomes a sell candidate.
var DefaultProfitThreshold = decimal.NewFromFloat(6.0)

type AveragingCandidate struct {
	Symbol      string
	LossPercent decimal.Decimal
	Price       decimal.Decimal
}

// ForAveraging returns held instruments whose loss against the
// cost-weighted average buy price of all active lots is at or below the
// (negative) threshold, worst loss first.
func (l *Ledger) ForAveraging(threshold decimal.Decimal) []AveragingCandidate {
	holdings := l.Holdings()

	var out []AveragingCandidate
	for _, sym := range l.heldOrder(holdings) {
		lots := holdings[sym]
		in, tracked := l.instruments[sym]
		if !tracked || !in.Price.Valid {
			continue
		}

		totalCost := decimal.Zero
		var totalQty int64
		for _, lot := range lots {
			totalCost = totalCost.Add(lot.Cost())
			totalQty += lot.Quantity
		}
		avgBuy := totalCost.Div(decimal.NewFromInt(totalQty))

		lossPercent := in.Price.Decimal.Sub(avgBuy).Div(avgBuy).Mul(hundred)
		if lossPercent.Cmp(threshold) <= 0 {
			out = append(out, AveragingCandidate{
				Symbol:      sym,
				LossPercent: lossPercent,
				Price:       in.Price.Decimal,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LossPercent.Cmp(out[j].LossPercent) < 0
	})
	return out
}

type SellCandidate struct {
	Symbol        string
	ProfitPercent decimal.Decimal
	Price         decimal.Decimal
	Lot           Lot
}

// ForSelling returns held instruments whose most recently acquired
// active lot shows a profit at or above the threshold, best profit
// first. Only the newest lot is evaluated: sells unwind LIFO.
func (l *Ledger) ForSelling(threshold decimal.Decimal) []SellCandidate {
	var out []SellCandidate
	for _, sym := range l.order {
		in := l.instruments[sym]
		if !in.Price.Valid {
			continue
		}
		active := l.activeLots(sym)
		if len(active) == 0 {
			continue
		}

		lot := active[0]
		profitPercent := in.Price.Decimal.Sub(lot.Price).Div(lot.Price).Mul(hundred)
		if profitPercent.Cmp(threshold) >= 0 {
			out = append(out, SellCandidate{
				Symbol:        sym,
				ProfitPercent: profitPercent,
				Price:         in.Price.Decimal,
				Lot:           *lot,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProfitPercent.Cmp(out[j].ProfitPercent) > 0
	})
	return out
}
