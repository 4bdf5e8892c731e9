package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/etfdesk/config"
	"github.com/rustyeddy/etfdesk/journal"
	"github.com/rustyeddy/etfdesk/ledger"
	"github.com/rustyeddy/etfdesk/sizing"
	"github.com/rustyeddy/etfdesk/store"
	"github.com/rustyeddy/etfdesk/strategy"
	"github.com/rustyeddy/etfdesk/volume"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "etfdesk",
	Short: "A tactical ETF trading desk for deviation-based rotation",
	Long: `Etfdesk tracks a universe of ETFs, ranks them by deviation from
their 20-day moving average and recommends one trade per side per day.

It provides tools for:
  - Ranking instruments by how far they have fallen below the 20DMA
  - Buy, average-down and sell recommendations with LIFO lot unwinding
  - Liquidity gating on 5-day trailing average volume
  - Capital-based position sizing with a price buffer
  - A persistent transaction journal (SQLite or CSV)`,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./etfdesk.yaml if present)")
}

// desk bundles the live components every command works against.
type desk struct {
	cfg     *config.Config
	ledger  *ledger.Ledger
	filter  *volume.Filter
	sizing  sizing.Config
	journal journal.Journal
}

func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFromFile(cfgPath)
	}
	if _, err := os.Stat("./etfdesk.yaml"); err == nil {
		return config.LoadFromFile("./etfdesk.yaml")
	}
	return config.Default(), nil
}

// openDesk loads the config, opens the journal and restores the last
// snapshot if one exists.
func openDesk() (*desk, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var j journal.Journal
	switch cfg.Journal.Type {
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.CSVPath)
	}
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	d := &desk{cfg: cfg, journal: j}

	if store.Exists(cfg.Store.Path) {
		snap, err := store.Load(cfg.Store.Path)
		if err != nil {
			d.close()
			return nil, fmt.Errorf("load state: %w", err)
		}
		d.ledger, err = ledger.Restore(snap.Ledger, j)
		if err != nil {
			d.close()
			return nil, fmt.Errorf("restore ledger: %w", err)
		}
		d.filter = volume.Restore(snap.Volume)
		d.sizing = snap.Sizing
		return d, nil
	}

	d.ledger = ledger.New(j)
	d.filter = volume.New(cfg.Volume.Threshold)
	d.filter.SetEnabled(cfg.Volume.Enabled)
	d.sizing = cfg.SizingConfig()
	return d, nil
}

func (d *desk) engine() *strategy.Engine {
	return strategy.New(d.ledger, d.filter, d.cfg.StrategyParams())
}

// save writes the snapshot; commands that mutate state call it before
// closing.
func (d *desk) save() error {
	return store.Save(d.cfg.Store.Path, store.Snapshot{
		Ledger: d.ledger.Export(),
		Volume: d.filter.Export(),
		Sizing: d.sizing,
	})
}

func (d *desk) close() {
	if d.journal != nil {
		d.journal.Close()
	}
}

// saveAndClose is the usual epilogue of a mutating command.
func (d *desk) saveAndClose() error {
	defer d.close()
	return d.save()
}
