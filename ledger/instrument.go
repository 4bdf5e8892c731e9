package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput marks rejected quantities, prices or thresholds.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks operations against instruments with nothing to act on.
	ErrNotFound = errors.New("not found")
)

// Instrument is one tracked ETF with its latest price snapshot.
// Price, DMA20 and Deviation stay null until the first price update.
type Instrument struct {
	Symbol    string              `json:"symbol"`
	Price     decimal.NullDecimal `json:"price"`
	DMA20     decimal.NullDecimal `json:"dma_20"`
	Deviation decimal.NullDecimal `json:"deviation_percent"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Normalize maps user input onto the canonical symbol form.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
