package sizing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSuggestGoldbeesExample(t *testing.T) {
	t.Parallel()

	// ₹81.73 at ₹10,000 with a 2% buffer: effective 83.3646,
	// raw 119.96, floored to 119.
	s, err := Suggest(dec("81.73"), dec("10000"), DefaultConfig())
	require.NoError(t, err)

	assert.True(t, s.EffectivePrice.Equal(dec("83.3646")), "got %s", s.EffectivePrice)
	assert.Equal(t, int64(119), s.Quantity)
	assert.True(t, s.ExactCost.Equal(dec("9725.87")), "got %s", s.ExactCost)
	assert.True(t, s.UtilizationPercent.GreaterThan(dec("97")))
	assert.True(t, s.UtilizationPercent.LessThan(dec("98")))
}

func TestSuggestRoundNearest(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RoundDown = false

	s, err := Suggest(dec("81.73"), dec("10000"), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(120), s.Quantity, "119.96 rounds up")
}

func TestSuggestZeroCapitalUsesDefault(t *testing.T) {
	t.Parallel()

	s, err := Suggest(dec("100"), decimal.Zero, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, s.Capital.Equal(dec("10000")))
	// 10000 / 102 = 98.03..., floored.
	assert.Equal(t, int64(98), s.Quantity)
}

func TestSuggestCapitalBounds(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	_, err := Suggest(dec("100"), dec("500"), cfg)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Suggest(dec("100"), dec("200000"), cfg)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Suggest(decimal.Zero, dec("10000"), cfg)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSuggestQuantityClamps(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	// Price far above capital: raw quantity under 1, clamped up to min.
	s, err := Suggest(dec("99000"), dec("10000"), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.MinQuantity, s.Quantity)

	// Penny price: raw quantity huge, clamped down to max.
	s, err = Suggest(dec("1"), dec("100000"), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxQuantity, s.Quantity)
}

func TestSetDefaultPerTrade(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.SetDefaultPerTrade(dec("25000")))
	assert.True(t, cfg.DefaultPerTrade.Equal(dec("25000")))

	assert.ErrorIs(t, cfg.SetDefaultPerTrade(dec("100")), ErrInvalidInput)
	assert.ErrorIs(t, cfg.SetDefaultPerTrade(dec("500000")), ErrInvalidInput)
}

func TestUsePreset(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.UsePreset("aggressive"))
	assert.True(t, cfg.DefaultPerTrade.Equal(dec("25000")))

	assert.ErrorIs(t, cfg.UsePreset("yolo"), ErrInvalidInput)
}
