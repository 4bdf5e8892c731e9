package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func nullable(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func buyRecord(id string, day int) Record {
	return Record{
		TxnID:       id,
		Type:        "buy",
		Symbol:      "GOLDBEES",
		Quantity:    119,
		Price:       dec("81.73"),
		TotalAmount: dec("9725.87"),
		Date:        time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteBuyRoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	require.NoError(t, j.Record(buyRecord("01TX", 2)))

	got, err := j.GetRecord("01TX")
	require.NoError(t, err)

	assert.Equal(t, "buy", got.Type)
	assert.Equal(t, "GOLDBEES", got.Symbol)
	assert.Equal(t, int64(119), got.Quantity)
	assert.Equal(t, "81.73", got.Price.String())
	assert.Equal(t, "9725.87", got.TotalAmount.String())
	assert.True(t, got.Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	// Buys carry no lot reference or profit figures.
	assert.Empty(t, got.LotID)
	assert.False(t, got.BuyPrice.Valid)
	assert.False(t, got.ProfitPercent.Valid)
}

func TestSQLiteSellRoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	require.NoError(t, j.Record(Record{
		TxnID:         "01SELL",
		Type:          "sell",
		Symbol:        "GOLDBEES",
		Quantity:      19,
		Price:         dec("87.01"),
		TotalAmount:   dec("1653.19"),
		Date:          time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		LotID:         "01LOT",
		BuyPrice:      nullable("81.73"),
		ProfitPerUnit: nullable("5.28"),
		TotalProfit:   nullable("100.32"),
		ProfitPercent: nullable("6.46"),
	}))

	got, err := j.GetRecord("01SELL")
	require.NoError(t, err)

	assert.Equal(t, "01LOT", got.LotID)
	require.True(t, got.BuyPrice.Valid)
	assert.Equal(t, "81.73", got.BuyPrice.Decimal.String())
	require.True(t, got.TotalProfit.Valid)
	assert.Equal(t, "100.32", got.TotalProfit.Decimal.String())
	assert.Equal(t, "6.46", got.ProfitPercent.Decimal.String())
}

func TestSQLiteGetRecordMissing(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	_, err := j.GetRecord("NOPE")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteListBetween(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	require.NoError(t, j.Record(buyRecord("01A", 1)))
	require.NoError(t, j.Record(buyRecord("01B", 15)))
	require.NoError(t, j.Record(buyRecord("01C", 31)))

	// End is exclusive: the Jan 31 record falls outside [Jan 1, Jan 31).
	recs, err := j.ListBetween(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "01A", recs[0].TxnID)
	assert.Equal(t, "01B", recs[1].TxnID)
}

func TestSQLiteListBySymbol(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	require.NoError(t, j.Record(buyRecord("01A", 5)))

	other := buyRecord("01B", 3)
	other.Symbol = "NIFTYBEES"
	require.NoError(t, j.Record(other))

	recs, err := j.ListBySymbol("GOLDBEES")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "01A", recs[0].TxnID)

	recs, err = j.ListBySymbol("UNKNOWN")
	require.NoError(t, err)
	assert.Empty(t, recs)
}
