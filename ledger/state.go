package ledger

import (
	"fmt"

	"github.com/rustyeddy/etfdesk/journal"
)

// State is the serializable form of a Ledger, used by the snapshot
// persistence boundary. Instruments keep registration order.
type State struct {
	Instruments  []Instrument  `json:"instruments"`
	Lots         []Lot         `json:"lots"`
	Transactions []Transaction `json:"transactions"`
	Seq          int64         `json:"seq"`
}

// Export copies the full ledger state for persistence.
func (l *Ledger) Export() State {
	st := State{
		Instruments:  l.Instruments(),
		Lots:         make([]Lot, 0, len(l.lots)),
		Transactions: l.Transactions(),
		Seq:          l.seq,
	}
	for _, lot := range l.lots {
		st.Lots = append(st.Lots, *lot)
	}
	return st
}

// Restore rebuilds a ledger from a snapshot, validating it on the way
// in: bad statuses, types or non-positive lot figures are rejected
// instead of being silently defaulted.
func Restore(st State, j journal.Journal) (*Ledger, error) {
	l := New(j)

	for _, in := range st.Instruments {
		if in.Symbol == "" {
			return nil, fmt.Errorf("instrument with empty symbol: %w", ErrInvalidInput)
		}
		l.Add(in.Symbol)
		cp := in
		cp.Symbol = Normalize(in.Symbol)
		l.instruments[cp.Symbol] = &cp
	}

	for _, lot := range st.Lots {
		switch lot.Status {
		case LotActive, LotSold:
		default:
			return nil, fmt.Errorf("lot %s has unknown status %q: %w", lot.ID, lot.Status, ErrInvalidInput)
		}
		if lot.Quantity <= 0 || !lot.Price.IsPositive() {
			return nil, fmt.Errorf("lot %s has non-positive quantity or price: %w", lot.ID, ErrInvalidInput)
		}
		cp := lot
		l.lots = append(l.lots, &cp)
		if lot.Seq > l.seq {
			l.seq = lot.Seq
		}
	}
	if st.Seq > l.seq {
		l.seq = st.Seq
	}

	for _, txn := range st.Transactions {
		switch txn.Type {
		case TxnBuy, TxnSell:
		default:
			return nil, fmt.Errorf("transaction %s has unknown type %q: %w", txn.ID, txn.Type, ErrInvalidInput)
		}
		l.txns = append(l.txns, txn)
	}

	return l, nil
}
