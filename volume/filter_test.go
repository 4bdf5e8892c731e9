package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateAgainstThreshold(t *testing.T) {
	t.Parallel()

	f := New(50_000)

	rec := f.Evaluate("GOLDBEES", 60_000, 55_000)
	assert.True(t, rec.Qualified)
	assert.False(t, rec.CheckedAt.IsZero())

	rec = f.Evaluate("THINLY", 45_000, 40_000)
	assert.False(t, rec.Qualified)

	assert.Equal(t, []string{"GOLDBEES"}, f.Qualified())
	assert.Equal(t, []string{"THINLY"}, f.Disqualified())
}

func TestEvaluateDefaultsAverageToCurrent(t *testing.T) {
	t.Parallel()

	f := New(50_000)
	rec := f.Evaluate("NEW", 70_000, 0)
	assert.Equal(t, int64(70_000), rec.AverageVolume)
	assert.True(t, rec.Qualified)
}

func TestEvaluateOverwritesVerdict(t *testing.T) {
	t.Parallel()

	f := New(50_000)
	f.Evaluate("A", 60_000, 60_000)
	require.True(t, f.IsQualified("A"))

	f.Evaluate("A", 10_000, 10_000)
	assert.False(t, f.IsQualified("A"))
	assert.Equal(t, 1, f.Report().Checked, "record overwritten, not duplicated")
}

func TestSetThresholdReevaluatesStoredRecords(t *testing.T) {
	t.Parallel()

	f := New(50_000)
	f.Evaluate("A", 60_000, 60_000)
	f.Evaluate("B", 40_000, 40_000)
	require.Equal(t, []string{"A"}, f.Qualified())

	f.SetThreshold(30_000)
	assert.ElementsMatch(t, []string{"A", "B"}, f.Qualified())

	f.SetThreshold(100_000)
	assert.Empty(t, f.Qualified())
	assert.ElementsMatch(t, []string{"A", "B"}, f.Disqualified())
}

func TestUnknownDefaultsToQualified(t *testing.T) {
	t.Parallel()

	f := New(50_000)
	assert.True(t, f.IsQualified("NEVERCHECKED"))
	assert.Empty(t, f.Qualified(), "unknown instruments are not listed")
	assert.Empty(t, f.Disqualified())
}

func TestDisabledFilterQualifiesEverything(t *testing.T) {
	t.Parallel()

	f := New(50_000)
	f.Evaluate("A", 10_000, 10_000)
	require.False(t, f.IsQualified("A"))

	f.SetEnabled(false)
	assert.True(t, f.IsQualified("A"))
	assert.Equal(t, []string{"A"}, f.Qualified())
	assert.Empty(t, f.Disqualified())

	f.SetEnabled(true)
	assert.False(t, f.IsQualified("A"), "stored verdict survives the toggle")
}

func TestDisqualifiedNeverQualifies(t *testing.T) {
	t.Parallel()

	// Property from the strategy contract: threshold 50k, trailing
	// average 40k must never show up as qualified.
	f := New(50_000)
	f.Evaluate("LOWVOL", 80_000, 40_000)

	assert.False(t, f.IsQualified("LOWVOL"))
	assert.NotContains(t, f.Qualified(), "LOWVOL")
}

func TestSymbolsAreCaseNormalized(t *testing.T) {
	t.Parallel()

	f := New(50_000)
	rec := f.Evaluate(" goldbees ", 40_000, 40_000)
	assert.Equal(t, "GOLDBEES", rec.Symbol)

	// The stored failing verdict gates every spelling of the symbol.
	assert.False(t, f.IsQualified("GOLDBEES"))
	assert.False(t, f.IsQualified("goldbees"))
	assert.Equal(t, []string{"GOLDBEES"}, f.Disqualified())

	// A re-check under a different case overwrites, never duplicates.
	f.Evaluate("GoldBees", 60_000, 60_000)
	assert.Equal(t, 1, f.Report().Checked)
	assert.True(t, f.IsQualified("goldbees"))

	f.Remove("goldBEES")
	assert.Equal(t, 0, f.Report().Checked)
}

func TestRestoreNormalizesStoredSymbols(t *testing.T) {
	t.Parallel()

	f := Restore(State{
		Threshold: 50_000,
		Enabled:   true,
		Records:   []Record{{Symbol: "goldbees", AverageVolume: 40_000, Qualified: false}},
	})
	assert.False(t, f.IsQualified("GOLDBEES"))
}

func TestExportRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	f := New(75_000)
	f.Evaluate("A", 80_000, 80_000)
	f.Evaluate("B", 10_000, 10_000)
	f.SetEnabled(false)

	g := Restore(f.Export())
	assert.Equal(t, int64(75_000), g.Threshold())
	assert.False(t, g.Enabled())

	g.SetEnabled(true)
	assert.Equal(t, []string{"A"}, g.Qualified())
	assert.Equal(t, []string{"B"}, g.Disqualified())
}

func TestRemoveDropsRecord(t *testing.T) {
	t.Parallel()

	f := New(50_000)
	f.Evaluate("A", 10_000, 10_000)
	f.Remove("A")
	assert.Empty(t, f.Disqualified())
	assert.True(t, f.IsQualified("A"), "back to the unknown default")
}
