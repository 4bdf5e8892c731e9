// Package sizing turns a target capital per trade into a whole-unit
// quantity suggestion. It is pure: configuration in, suggestion out,
// no side effects.
package sizing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks prices or capital amounts outside the
// configured bounds.
var ErrInvalidInput = errors.New("invalid input")

var hundred = decimal.NewFromInt(100)

// Config holds the capital and quantity bounds for one portfolio.
// Mutations go through explicit setters so every change is validated.
type Config struct {
	DefaultPerTrade decimal.Decimal `json:"default_per_trade"`
	MinPerTrade     decimal.Decimal `json:"min_per_trade"`
	MaxPerTrade     decimal.Decimal `json:"max_per_trade"`

	MinQuantity int64 `json:"min_quantity"`
	MaxQuantity int64 `json:"max_quantity"`

	// BufferPercent pads the price before dividing, so the suggestion
	// still fits the capital if the price moves between suggestion and
	// fill.
	BufferPercent decimal.Decimal `json:"buffer_percent"`

	// RoundDown floors the raw quantity; otherwise it rounds to the
	// nearest whole unit.
	RoundDown bool `json:"round_down"`

	// Presets are named capital amounts (conservative, balanced, ...).
	Presets map[string]decimal.Decimal `json:"presets"`
}

// DefaultConfig mirrors the stock configuration: ₹10,000 per trade
// within [1,000, 100,000], quantities in [1, 1000], 2% price buffer,
// floor rounding.
func DefaultConfig() Config {
	return Config{
		DefaultPerTrade: decimal.NewFromInt(10_000),
		MinPerTrade:     decimal.NewFromInt(1_000),
		MaxPerTrade:     decimal.NewFromInt(100_000),
		MinQuantity:     1,
		MaxQuantity:     1_000,
		BufferPercent:   decimal.NewFromInt(2),
		RoundDown:       true,
		Presets: map[string]decimal.Decimal{
			"conservative": decimal.NewFromInt(5_000),
			"balanced":     decimal.NewFromInt(10_000),
			"aggressive":   decimal.NewFromInt(25_000),
		},
	}
}

// SetDefaultPerTrade validates the amount against the configured bounds
// before adopting it.
func (c *Config) SetDefaultPerTrade(amount decimal.Decimal) error {
	if amount.Cmp(c.MinPerTrade) < 0 {
		return fmt.Errorf("amount %s below minimum %s: %w", amount, c.MinPerTrade, ErrInvalidInput)
	}
	if amount.Cmp(c.MaxPerTrade) > 0 {
		return fmt.Errorf("amount %s above maximum %s: %w", amount, c.MaxPerTrade, ErrInvalidInput)
	}
	c.DefaultPerTrade = amount
	return nil
}

// UsePreset adopts a named preset as the default capital per trade.
func (c *Config) UsePreset(name string) error {
	amount, ok := c.Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q: %w", name, ErrInvalidInput)
	}
	return c.SetDefaultPerTrade(amount)
}

// Suggestion is the sized order plus the derived figures callers
// display alongside it.
type Suggestion struct {
	Capital        decimal.Decimal
	Price          decimal.Decimal
	EffectivePrice decimal.Decimal
	RawQuantity    decimal.Decimal

	Quantity           int64
	ExactCost          decimal.Decimal
	MaxCostWithBuffer  decimal.Decimal
	UtilizationPercent decimal.Decimal
}

// Suggest computes the whole-unit quantity for a price and target
// capital. A zero capital means "use the configured default". The
// capital must lie within [MinPerTrade, MaxPerTrade].
func Suggest(price, capital decimal.Decimal, cfg Config) (Suggestion, error) {
	if !price.IsPositive() {
		return Suggestion{}, fmt.Errorf("price must be positive, got %s: %w", price, ErrInvalidInput)
	}
	if capital.IsZero() {
		capital = cfg.DefaultPerTrade
	}
	if capital.Cmp(cfg.MinPerTrade) < 0 {
		return Suggestion{}, fmt.Errorf("capital %s below minimum %s: %w", capital, cfg.MinPerTrade, ErrInvalidInput)
	}
	if capital.Cmp(cfg.MaxPerTrade) > 0 {
		return Suggestion{}, fmt.Errorf("capital %s above maximum %s: %w", capital, cfg.MaxPerTrade, ErrInvalidInput)
	}

	effective := price.Mul(decimal.NewFromInt(1).Add(cfg.BufferPercent.Div(hundred)))
	raw := capital.Div(effective)

	var qty int64
	if cfg.RoundDown {
		qty = raw.Floor().IntPart()
	} else {
		qty = raw.Round(0).IntPart()
	}

	if qty < cfg.MinQuantity {
		qty = cfg.MinQuantity
	}
	if qty > cfg.MaxQuantity {
		qty = cfg.MaxQuantity
	}

	qd := decimal.NewFromInt(qty)
	exact := qd.Mul(price)

	return Suggestion{
		Capital:            capital,
		Price:              price,
		EffectivePrice:     effective,
		RawQuantity:        raw,
		Quantity:           qty,
		ExactCost:          exact,
		MaxCostWithBuffer:  qd.Mul(effective),
		UtilizationPercent: exact.Div(capital).Mul(hundred),
	}, nil
}
