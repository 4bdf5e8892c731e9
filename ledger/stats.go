package ledger

import "github.com/shopspring/decimal"

// Stats summarizes realized performance from the transaction log.
type Stats struct {
	Buys                int
	Sells               int
	ProfitableSells     int
	LosingSells         int
	WinRatePercent      decimal.Decimal
	TotalRealizedProfit decimal.Decimal
	AvgProfitPerSell    decimal.Decimal
}

func (l *Ledger) Stats() Stats {
	s := Stats{
		WinRatePercent:      decimal.Zero,
		TotalRealizedProfit: decimal.Zero,
		AvgProfitPerSell:    decimal.Zero,
	}

	for _, t := range l.txns {
		switch t.Type {
		case TxnBuy:
			s.Buys++
		case TxnSell:
			s.Sells++
			if t.TotalProfit.Valid {
				s.TotalRealizedProfit = s.TotalRealizedProfit.Add(t.TotalProfit.Decimal)
				if t.TotalProfit.Decimal.IsPositive() {
					s.ProfitableSells++
				} else {
					s.LosingSells++
				}
			}
		}
	}

	if s.Sells > 0 {
		sells := decimal.NewFromInt(int64(s.Sells))
		s.WinRatePercent = decimal.NewFromInt(int64(s.ProfitableSells)).Div(sells).Mul(hundred)
		s.AvgProfitPerSell = s.TotalRealizedProfit.Div(sells)
	}
	return s
}
