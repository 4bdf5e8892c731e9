// Package volume gates which instruments are liquid enough to trade.
// Qualification is based on the 5-day trailing average traded volume
// against a configurable threshold. The filter never fetches volume
// data itself; callers pass in already-resolved values.
package volume

import (
	"sort"
	"strings"
	"time"
)

// DefaultThreshold is the minimum trailing average volume for an
// instrument to qualify.
const DefaultThreshold int64 = 50_000

// AveragingDays is the trailing window the average volume is expected
// to cover.
const AveragingDays = 5

// Record is the stored qualification verdict for one instrument. It is
// overwritten on every check; an instrument with no record is in the
// "unknown" state.
type Record struct {
	Symbol        string    `json:"symbol"`
	CurrentVolume int64     `json:"current_volume"`
	AverageVolume int64     `json:"average_volume_5d"`
	Qualified     bool      `json:"qualified"`
	CheckedAt     time.Time `json:"checked_at"`
}

type Filter struct {
	threshold int64
	enabled   bool
	records   map[string]*Record
	order     []string // first-check order, for stable listings
}

func New(threshold int64) *Filter {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Filter{
		threshold: threshold,
		enabled:   true,
		records:   make(map[string]*Record),
	}
}

// normalize maps user input onto the canonical symbol form. Records
// are keyed the same way the ledger keys instruments, so a verdict
// stored for "goldbees" gates "GOLDBEES".
func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Evaluate stores a fresh verdict for the instrument. A zero trailing
// average falls back to the current volume (no history available yet).
func (f *Filter) Evaluate(symbol string, currentVolume, averageVolume int64) Record {
	if averageVolume <= 0 {
		averageVolume = currentVolume
	}

	sym := normalize(symbol)
	rec, ok := f.records[sym]
	if !ok {
		rec = &Record{Symbol: sym}
		f.records[sym] = rec
		f.order = append(f.order, sym)
	}
	rec.CurrentVolume = currentVolume
	rec.AverageVolume = averageVolume
	rec.Qualified = averageVolume >= f.threshold
	rec.CheckedAt = time.Now()
	return *rec
}

// SetThreshold changes the global threshold and re-evaluates every
// stored record against it using the volumes from its last check.
func (f *Filter) SetThreshold(threshold int64) {
	f.threshold = threshold
	for _, rec := range f.records {
		rec.Qualified = rec.AverageVolume >= threshold
	}
}

func (f *Filter) Threshold() int64 { return f.threshold }

// SetEnabled toggles filtering. While disabled every instrument is
// treated as qualified regardless of its stored verdict.
func (f *Filter) SetEnabled(enabled bool) { f.enabled = enabled }

func (f *Filter) Enabled() bool { return f.enabled }

// IsQualified reports whether the instrument may trade. An instrument
// that has never been checked defaults to qualified: only a stored
// failing verdict blocks a trade.
func (f *Filter) IsQualified(symbol string) bool {
	if !f.enabled {
		return true
	}
	rec, ok := f.records[normalize(symbol)]
	if !ok {
		return true
	}
	return rec.Qualified
}

// Qualified returns instruments with a stored qualifying verdict. With
// the filter disabled every checked instrument is reported qualified.
func (f *Filter) Qualified() []string {
	var out []string
	for _, sym := range f.order {
		if !f.enabled || f.records[sym].Qualified {
			out = append(out, sym)
		}
	}
	return out
}

// Disqualified returns instruments with a stored failing verdict, or
// nothing while the filter is disabled.
func (f *Filter) Disqualified() []string {
	if !f.enabled {
		return nil
	}
	var out []string
	for _, sym := range f.order {
		if !f.records[sym].Qualified {
			out = append(out, sym)
		}
	}
	return out
}

// Remove drops the stored record when the instrument itself is removed.
func (f *Filter) Remove(symbol string) {
	sym := normalize(symbol)
	if _, ok := f.records[sym]; !ok {
		return
	}
	delete(f.records, sym)
	for i, s := range f.order {
		if s == sym {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Report summarizes the filter state for display.
type Report struct {
	Threshold    int64
	Enabled      bool
	Checked      int
	Qualified    []string
	Disqualified []string
	Records      []Record // highest average volume first
}

func (f *Filter) Report() Report {
	recs := make([]Record, 0, len(f.order))
	for _, sym := range f.order {
		recs = append(recs, *f.records[sym])
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].AverageVolume > recs[j].AverageVolume
	})

	return Report{
		Threshold:    f.threshold,
		Enabled:      f.enabled,
		Checked:      len(f.order),
		Qualified:    f.Qualified(),
		Disqualified: f.Disqualified(),
		Records:      recs,
	}
}
