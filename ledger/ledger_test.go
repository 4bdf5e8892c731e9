package ledger

import (
	"testing"
	"time"

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

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestUpdatePriceComputesDeviation(t *testing.T) {
	t.Parallel()

	l := New(nil)
	require.NoError(t, l.UpdatePrice("goldbees", dec("97"), dec("100")))

	in, ok := l.Lookup("GOLDBEES")
	require.True(t, ok)
	assert.True(t, in.Price.Valid)
	assert.True(t, in.Deviation.Valid)
	assert.True(t, in.Deviation.Decimal.Equal(dec("-3")))
	assert.False(t, in.UpdatedAt.IsZero())
}

func TestUpdatePriceRejectsNonPositiveMA(t *testing.T) {
	t.Parallel()

	l := New(nil)
	err := l.UpdatePrice("NIFTYBEES", dec("100"), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRankingsAscendingByDeviation(t *testing.T) {
	t.Parallel()

	l := New(nil)
	require.NoError(t, l.UpdatePrice("A", dec("99"), dec("100")))  // -1%
	require.NoError(t, l.UpdatePrice("B", dec("97"), dec("100")))  // -3%
	require.NoError(t, l.UpdatePrice("C", dec("102"), dec("100"))) // +2%
	l.Add("NODATA")                                                // no price, excluded

	r := l.Rankings()
	require.Len(t, r, 3)
	assert.Equal(t, "B", r[0].Symbol)
	assert.Equal(t, "A", r[1].Symbol)
	assert.Equal(t, "C", r[2].Symbol)
}

func TestRankingTiesKeepRegistrationOrder(t *testing.T) {
	t.Parallel()

	l := New(nil)
	require.NoError(t, l.UpdatePrice("X", dec("98"), dec("100")))
	require.NoError(t, l.UpdatePrice("Y", dec("49"), dec("50"))) // same -2%

	r := l.Rankings()
	require.Len(t, r, 2)
	assert.Equal(t, "X", r[0].Symbol)
	assert.Equal(t, "Y", r[1].Symbol)
}

func TestRecordBuyCreatesLotAndTransaction(t *testing.T) {
	t.Parallel()

	l := New(nil)
	txn, err := l.RecordBuy("goldbees", 10, dec("100"), day(1))
	require.NoError(t, err)
	assert.Equal(t, TxnBuy, txn.Type)
	assert.Equal(t, "GOLDBEES", txn.Symbol)
	assert.True(t, txn.TotalAmount.Equal(dec("1000")))
	assert.NotEmpty(t, txn.ID)
	assert.NotEmpty(t, txn.LotID)

	holdings := l.Holdings()
	require.Len(t, holdings["GOLDBEES"], 1)
	assert.Equal(t, int64(10), holdings["GOLDBEES"][0].Quantity)
}

func TestRecordBuyRejectsBadInput(t *testing.T) {
	t.Parallel()

	l := New(nil)
	_, err := l.RecordBuy("A", 0, dec("100"), day(1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = l.RecordBuy("A", 5, dec("-1"), day(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordBuyKeepsSameDayLotsSeparate(t *testing.T) {
	t.Parallel()

	l := New(nil)
	_, err := l.RecordBuy("A", 10, dec("100"), day(1))
	require.NoError(t, err)
	_, err = l.RecordBuy("A", 5, dec("101"), day(1))
	require.NoError(t, err)

	assert.Len(t, l.Holdings()["A"], 2)
}

func TestRecordSellConsumesNewestLotFirst(t *testing.T) {
	t.Parallel()

	l := New(nil)
	_, err := l.RecordBuy("A", 10, dec("100"), day(1))
	require.NoError(t, err)
	_, err = l.RecordBuy("A", 5, dec("110"), day(2))
	require.NoError(t, err)

	txn, err := l.RecordSell("A", 3, dec("120"), day(3))
	require.NoError(t, err)
	require.NotNil(t, txn)

	assert.Equal(t, int64(3), txn.Quantity)
	assert.True(t, txn.BuyPrice.Decimal.Equal(dec("110")))
	assert.True(t, txn.ProfitPerUnit.Decimal.Equal(dec("10")))
	assert.True(t, txn.TotalProfit.Decimal.Equal(dec("30")))

	lots := l.Holdings()["A"]
	require.Len(t, lots, 2)
	byPrice := map[string]int64{}
	for _, lot := range lots {
		byPrice[lot.Price.String()] = lot.Quantity
	}
	assert.Equal(t, int64(10), byPrice["100"], "day-1 lot untouched")
	assert.Equal(t, int64(2), byPrice["110"], "day-2 lot decremented")
}

func TestRecordSellClampsToLotQuantity(t *testing.T) {
	t.Parallel()

	l := New(nil)
	_, err := l.RecordBuy("A", 5, dec("100"), day(1))
	require.NoError(t, err)

	txn, err := l.RecordSell("A", 20, dec("110"), day(2))
	require.NoError(t, err)
	require.NotNil(t, txn)

	assert.Equal(t, int64(5), txn.Quantity, "clamped to remaining quantity")
	assert.Empty(t, l.Holdings()["A"], "lot fully sold")
	assert.True(t, txn.TotalProfit.Decimal.Equal(dec("50")))
}

func TestRecordSellSameDayTieTakesNewestInsertion(t *testing.T) {
	t.Parallel()

	l := New(nil)
	_, err := l.RecordBuy("A", 10, dec("100"), day(1))
	require.NoError(t, err)
	_, err = l.RecordBuy("A", 5, dec("105"), day(1))
	require.NoError(t, err)

	txn, err := l.RecordSell("A", 5, dec("110"), day(2))
	require.NoError(t, err)
	assert.True(t, txn.BuyPrice.Decimal.Equal(dec("105")), "second same-day lot sells first")
}

func TestRecordSellNoHoldingIsNotFound(t *testing.T) {
	t.Parallel()

	l := New(nil)
	txn, err := l.RecordSell("A", 5, dec("100"), day(1))
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, ErrNotFound)

	// Fully unwound instrument behaves the same.
	_, err = l.RecordBuy("B", 5, dec("100"), day(1))
	require.NoError(t, err)
	_, err = l.RecordSell("B", 5, dec("100"), day(2))
	require.NoError(t, err)
	txn, err = l.RecordSell("B", 5, dec("100"), day(3))
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordSellReplayIsNotDeduplicated(t *testing.T) {
	t.Parallel()

	l := New(nil)
	_, err := l.RecordBuy("A", 10, dec("100"), day(1))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := l.RecordSell("A", 3, dec("110"), day(2))
		require.NoError(t, err)
	}

	lots := l.Holdings()["A"]
	require.Len(t, lots, 1)
	assert.Equal(t, int64(4), lots[0].Quantity, "both sells decremented")

	var sells int
	for _, txn := range l.Transactions() {
		if txn.Type == TxnSell {
			sells++
		}
	}
	assert.Equal(t, 2, sells)
}

func TestForAveraging(t *testing.T) {
	t.Parallel()

	l := New(nil)
	// A: two lots, weighted avg (10*100 + 10*90)/20 = 95, price 90 => -5.26%
	_, err := l.RecordBuy("A", 10, dec("100"), day(1))
	require.NoError(t, err)
	_, err = l.RecordBuy("A", 10, dec("90"), day(2))
	require.NoError(t, err)
	require.NoError(t, l.UpdatePrice("A", dec("90"), dec("100")))

	// B: avg 100, price 99 => -1%, above the -2.5 threshold
	_, err = l.RecordBuy("B", 10, dec("100"), day(1))
	require.NoError(t, err)
	require.NoError(t, l.UpdatePrice("B", dec("99"), dec("100")))

	// C: worse loss, avg 100, price 80 => -20%
	_, err = l.RecordBuy("C", 10, dec("100"), day(1))
	require.NoError(t, err)
	require.NoError(t, l.UpdatePrice("C", dec("80"), dec("100")))

	out := l.ForAveraging(DefaultAveragingThreshold)
	require.Len(t, out, 2)
	assert.Equal(t, "C", out[0].Symbol, "worst loss first")
	assert.Equal(t, "A", out[1].Symbol)
	assert.True(t, out[0].LossPercent.Equal(dec("-20")))
}

func TestForSellingEvaluatesNewestLotOnly(t *testing.T) {
	t.Parallel()

	l := New(nil)
	// Old lot bought cheap (big profit), newest lot bought dear (no profit).
	_, err := l.RecordBuy("A", 10, dec("50"), day(1))
	require.NoError(t, err)
	_, err = l.RecordBuy("A", 10, dec("100"), day(2))
	require.NoError(t, err)
	require.NoError(t, l.UpdatePrice("A", dec("102"), dec("100")))

	out := l.ForSelling(DefaultProfitThreshold)
	assert.Empty(t, out, "newest lot at +2% does not qualify even though the old one would")

	// B qualifies on its newest lot.
	_, err = l.RecordBuy("B", 10, dec("100"), day(1))
	require.NoError(t, err)
	require.NoError(t, l.UpdatePrice("B", dec("110"), dec("100")))

	out = l.ForSelling(DefaultProfitThreshold)
	require.Len(t, out, 1)
	assert.Equal(t, "B", out[0].Symbol)
	assert.True(t, out[0].ProfitPercent.Equal(dec("10")))
}

func TestRemoveKeepsHistory(t *testing.T) {
	t.Parallel()

	l := New(nil)
	_, err := l.RecordBuy("A", 10, dec("100"), day(1))
	require.NoError(t, err)

	assert.True(t, l.Remove("A"))
	assert.False(t, l.Remove("A"))
	_, ok := l.Lookup("A")
	assert.False(t, ok)
	assert.Len(t, l.Transactions(), 1, "audit trail survives removal")
}
