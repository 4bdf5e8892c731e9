package volume

// State is the serializable form of the filter for snapshot persistence.
type State struct {
	Threshold int64    `json:"threshold"`
	Enabled   bool     `json:"enabled"`
	Records   []Record `json:"records"`
}

func (f *Filter) Export() State {
	st := State{
		Threshold: f.threshold,
		Enabled:   f.enabled,
		Records:   make([]Record, 0, len(f.order)),
	}
	for _, sym := range f.order {
		st.Records = append(st.Records, *f.records[sym])
	}
	return st
}

func Restore(st State) *Filter {
	f := New(st.Threshold)
	f.enabled = st.Enabled
	for _, rec := range st.Records {
		cp := rec
		cp.Symbol = normalize(rec.Symbol)
		f.records[cp.Symbol] = &cp
		f.order = append(f.order, cp.Symbol)
	}
	return f
}
