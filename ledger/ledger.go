package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/etfdesk/journal"
	"github.com/rustyeddy/etfdesk/pkg/id"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Ledger owns the instrument set, the lot collection and the append-only
// transaction log. It is not safe for concurrent use; a host embedding it
// must serialize access per portfolio.
type Ledger struct {
	instruments map[string]*Instrument
	order       []string // registration order, also the ranking tie-break
	lots        []*Lot
	txns        []Transaction
	seq         int64
	journal     journal.Journal // optional, may be nil
}

func New(j journal.Journal) *Ledger {
	return &Ledger{
		instruments: make(map[string]*Instrument),
		journal:     j,
	}
}

// Add registers an instrument. Returns false if it was already known.
func (l *Ledger) Add(symbol string) bool {
	sym := Normalize(symbol)
	if sym == "" {
		return false
	}
	if _, ok := l.instruments[sym]; ok {
		return false
	}
	l.instruments[sym] = &Instrument{Symbol: sym}
	l.order = append(l.order, sym)
	return true
}

// Remove drops an instrument from the tracked universe. Lots and the
// transaction log are left untouched: removal is list management, not
// history rewriting.
func (l *Ledger) Remove(symbol string) bool {
	sym := Normalize(symbol)
	if _, ok := l.instruments[sym]; !ok {
		return false
	}
	delete(l.instruments, sym)
	for i, s := range l.order {
		if s == sym {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Instruments returns all registered instruments in registration order.
func (l *Ledger) Instruments() []Instrument {
	out := make([]Instrument, 0, len(l.order))
	for _, sym := range l.order {
		out = append(out, *l.instruments[sym])
	}
	return out
}

// Lookup returns the instrument snapshot for a symbol.
func (l *Ledger) Lookup(symbol string) (Instrument, bool) {
	in, ok := l.instruments[Normalize(symbol)]
	if !ok {
		return Instrument{}, false
	}
	return *in, true
}

// UpdatePrice upserts the instrument with the latest price and 20-day
// moving average and recomputes the deviation percentage.
func (l *Ledger) UpdatePrice(symbol string, price, dma20 decimal.Decimal) error {
	if !dma20.IsPositive() {
		return fmt.Errorf("moving average must be positive, got %s: %w", dma20, ErrInvalidInput)
	}

	sym := Normalize(symbol)
	l.Add(sym)
	in := l.instruments[sym]

	deviation := price.Sub(dma20).Div(dma20).Mul(hundred)

	in.Price = decimal.NewNullDecimal(price)
	in.DMA20 = decimal.NewNullDecimal(dma20)
	in.Deviation = decimal.NewNullDecimal(deviation)
	in.UpdatedAt = time.Now()
	return nil
}

// Ranking is one row of the deviation ranking.
type Ranking struct {
	Symbol    string
	Price     decimal.Decimal
	DMA20     decimal.Decimal
	Deviation decimal.Decimal
}

// Rankings returns every instrument that has both a price and a moving
// average, ordered ascending by deviation: the most fallen ranks first.
// Ties keep registration order.
func (l *Ledger) Rankings() []Ranking {
	var out []Ranking
	for _, sym := range l.order {
		in := l.instruments[sym]
		if !in.Price.Valid || !in.DMA20.Valid {
			continue
		}
		out = append(out, Ranking{
			Symbol:    sym,
			Price:     in.Price.Decimal,
			DMA20:     in.DMA20.Decimal,
			Deviation: in.Deviation.Decimal,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deviation.Cmp(out[j].Deviation) < 0
	})
	return out
}

// Holdings returns copies of the active lots grouped by symbol. An
// instrument is held iff it has at least one active lot.
func (l *Ledger) Holdings() map[string][]Lot {
	out := make(map[string][]Lot)
	for _, lot := range l.lots {
		if lot.Status != LotActive {
			continue
		}
		out[lot.Symbol] = append(out[lot.Symbol], *lot)
	}
	return out
}

// RecordBuy appends a new active lot and a buy transaction. Each buy is
// its own lot; same-day buys are never merged, so the LIFO unwind stays
// correct.
func (l *Ledger) RecordBuy(symbol string, quantity int64, price decimal.Decimal, date time.Time) (Transaction, error) {
	if quantity <= 0 {
		return Transaction{}, fmt.Errorf("quantity must be positive, got %d: %w", quantity, ErrInvalidInput)
	}
	if !price.IsPositive() {
		return Transaction{}, fmt.Errorf("price must be positive, got %s: %w", price, ErrInvalidInput)
	}
	if date.IsZero() {
		date = time.Now()
	}

	sym := Normalize(symbol)
	l.Add(sym)

	l.seq++
	lot := &Lot{
		ID:       id.New(),
		Seq:      l.seq,
		Symbol:   sym,
		Quantity: quantity,
		Price:    price,
		Date:     date,
		Status:   LotActive,
	}
	l.lots = append(l.lots, lot)

	txn := Transaction{
		ID:          id.New(),
		Type:        TxnBuy,
		Symbol:      sym,
		Quantity:    quantity,
		Price:       price,
		TotalAmount: price.Mul(decimal.NewFromInt(quantity)),
		Date:        date,
		LotID:       lot.ID,
	}
	l.txns = append(l.txns, txn)

	if l.journal != nil {
		if err := l.journal.Record(txn.journalRecord()); err != nil {
			return Transaction{}, fmt.Errorf("journal buy: %w", err)
		}
	}
	return txn, nil
}

// RecordSell unwinds the most recently acquired active lot (LIFO). A
// requested quantity above the lot's remaining quantity is clamped down
// to it; a sell never splits across lots and never errors for over-size.
// Returns ErrNotFound when the instrument has no active lots.
func (l *Ledger) RecordSell(symbol string, quantity int64, price decimal.Decimal, date time.Time) (*Transaction, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d: %w", quantity, ErrInvalidInput)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("price must be positive, got %s: %w", price, ErrInvalidInput)
	}
	if date.IsZero() {
		date = time.Now()
	}

	sym := Normalize(symbol)
	active := l.activeLots(sym)
	if len(active) == 0 {
		return nil, fmt.Errorf("no active lots for %s: %w", sym, ErrNotFound)
	}

	lot := active[0]
	if lot.Quantity < quantity {
		quantity = lot.Quantity
	}

	profitPerUnit := price.Sub(lot.Price)
	qty := decimal.NewFromInt(quantity)
	totalProfit := profitPerUnit.Mul(qty)
	profitPercent := profitPerUnit.Div(lot.Price).Mul(hundred)

	if lot.Quantity == quantity {
		lot.Status = LotSold
	} else {
		lot.Quantity -= quantity
	}

	txn := Transaction{
		ID:            id.New(),
		Type:          TxnSell,
		Symbol:        sym,
		Quantity:      quantity,
		Price:         price,
		TotalAmount:   price.Mul(qty),
		Date:          date,
		LotID:         lot.ID,
		BuyPrice:      decimal.NewNullDecimal(lot.Price),
		ProfitPerUnit: decimal.NewNullDecimal(profitPerUnit),
		TotalProfit:   decimal.NewNullDecimal(totalProfit),
		ProfitPercent: decimal.NewNullDecimal(profitPercent),
	}
	l.txns = append(l.txns, txn)

	if l.journal != nil {
		if err := l.journal.Record(txn.journalRecord()); err != nil {
			return nil, fmt.Errorf("journal sell: %w", err)
		}
	}
	return &txn, nil
}

// activeLots returns the instrument's active lots newest first: most
// recent acquisition date, then highest sequence on equal dates.
func (l *Ledger) activeLots(sym string) []*Lot {
	var active []*Lot
	for _, lot := range l.lots {
		if lot.Symbol == sym && lot.Status == LotActive {
			active = append(active, lot)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if !active[i].Date.Equal(active[j].Date) {
			return active[i].Date.After(active[j].Date)
		}
		return active[i].Seq > active[j].Seq
	})
	return active
}

// Transactions returns a copy of the full transaction log, oldest first.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}
