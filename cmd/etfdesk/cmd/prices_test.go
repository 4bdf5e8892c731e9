package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/etfdesk/config"
	"github.com/rustyeddy/etfdesk/ledger"
	"github.com/rustyeddy/etfdesk/store"
	"github.com/rustyeddy/etfdesk/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Journal.Type = "none"
	cfg.Journal.DBPath = ""
	cfg.Store.Path = filepath.Join(t.TempDir(), "state.json")
	cfg.Fetch.BaseURL = baseURL
	cfg.Fetch.SymbolSuffix = ""
	cfg.Fetch.TimeoutSeconds = 5
	return cfg
}

// useConfig points the command wiring at a config file and restores the
// previous flag value afterwards.
func useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "etfdesk.json")
	require.NoError(t, cfg.SaveToFile(path))

	prev := cfgPath
	cfgPath = path
	t.Cleanup(func() { cfgPath = prev })
}

func TestPricesFetchWithoutVolumeLeavesVerdictUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"chart":{"result":[{
			"meta":{"symbol":"GOLDBEES","regularMarketPrice":81.73,"regularMarketTime":1704188700},
			"indicators":{"quote":[{"close":[80.0,84.0],"volume":[null,null]}]}
		}],"error":null}}`)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	useConfig(t, cfg)

	require.NoError(t, runPricesFetch(pricesFetchCmd, []string{"GOLDBEES"}))

	snap, err := store.Load(cfg.Store.Path)
	require.NoError(t, err)

	l, err := ledger.Restore(snap.Ledger, nil)
	require.NoError(t, err)
	in, ok := l.Lookup("GOLDBEES")
	require.True(t, ok)
	assert.Equal(t, "81.73", in.Price.Decimal.String(), "price still updated")

	f := volume.Restore(snap.Volume)
	assert.Equal(t, 0, f.Report().Checked, "missing volume data stores no verdict")
	assert.True(t, f.IsQualified("GOLDBEES"), "instrument stays in the unknown state")
}

func TestPricesFetchWithVolumeStoresVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"chart":{"result":[{
			"meta":{"symbol":"GOLDBEES","regularMarketPrice":81.73,"regularMarketTime":1704188700},
			"indicators":{"quote":[{"close":[80.0,84.0],"volume":[40000,40000]}]}
		}],"error":null}}`)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	useConfig(t, cfg)

	require.NoError(t, runPricesFetch(pricesFetchCmd, []string{"GOLDBEES"}))

	snap, err := store.Load(cfg.Store.Path)
	require.NoError(t, err)

	f := volume.Restore(snap.Volume)
	assert.Equal(t, 1, f.Report().Checked)
	assert.False(t, f.IsQualified("GOLDBEES"), "40k average against the 50k threshold")
}
