package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/etfdesk/fetch"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Update instrument prices and moving averages",
	Long: `Update prices manually or fetch them from the chart API.

Examples:
  etfdesk prices set GOLDBEES 81.73 82.105 --volume 61234 --avg-volume 58911
  etfdesk prices fetch
  etfdesk prices fetch GOLDBEES NIFTYBEES`,
}

var pricesSetCmd = &cobra.Command{
	Use:   "set <symbol> <price> <dma20>",
	Short: "Set one instrument's price and 20-day moving average",
	Args:  cobra.ExactArgs(3),
	RunE:  runPricesSet,
}

var pricesFetchCmd = &cobra.Command{
	Use:   "fetch [symbol]...",
	Short: "Fetch quotes for tracked (or named) instruments",
	RunE:  runPricesFetch,
}

var (
	pricesVolume    int64
	pricesAvgVolume int64
)

func init() {
	rootCmd.AddCommand(pricesCmd)
	pricesCmd.AddCommand(pricesSetCmd)
	pricesCmd.AddCommand(pricesFetchCmd)

	pricesSetCmd.Flags().Int64Var(&pricesVolume, "volume", 0, "latest traded volume")
	pricesSetCmd.Flags().Int64Var(&pricesAvgVolume, "avg-volume", 0, "5-day trailing average volume")
}

func runPricesSet(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}

	price, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("bad price %q: %w", args[1], err)
	}
	dma, err := decimal.NewFromString(args[2])
	if err != nil {
		return fmt.Errorf("bad moving average %q: %w", args[2], err)
	}

	if err := d.ledger.UpdatePrice(args[0], price, dma); err != nil {
		d.close()
		return err
	}

	if pricesVolume > 0 {
		rec := d.filter.Evaluate(args[0], pricesVolume, pricesAvgVolume)
		verdict := "disqualified"
		if rec.Qualified {
			verdict = "qualified"
		}
		fmt.Printf("%s volume %d (avg %d): %s\n", rec.Symbol, rec.CurrentVolume, rec.AverageVolume, verdict)
	}

	in, _ := d.ledger.Lookup(args[0])
	fmt.Printf("%s price %s, 20DMA %s, deviation %s%%\n",
		in.Symbol, in.Price.Decimal.StringFixed(2), in.DMA20.Decimal.StringFixed(2), in.Deviation.Decimal.StringFixed(2))

	return d.saveAndClose()
}

func runPricesFetch(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}

	symbols := args
	if len(symbols) == 0 {
		for _, in := range d.ledger.Instruments() {
			symbols = append(symbols, in.Symbol)
		}
	}
	if len(symbols) == 0 {
		d.close()
		return fmt.Errorf("no instruments to fetch; add some with 'etfdesk track add'")
	}

	client := fetch.NewClient(d.cfg.Fetch.BaseURL, d.cfg.Fetch.SymbolSuffix,
		time.Duration(d.cfg.Fetch.TimeoutSeconds)*time.Second)

	quotes, err := client.GetQuotes(context.Background(), symbols)
	if err != nil {
		d.close()
		return fmt.Errorf("fetch quotes: %w", err)
	}

	updated := 0
	for _, sym := range symbols {
		q, ok := quotes[sym]
		if !ok {
			continue
		}
		if err := d.ledger.UpdatePrice(q.Symbol, q.Price, q.DMA20); err != nil {
			fmt.Printf("skip %s: %v\n", q.Symbol, err)
			continue
		}
		// No volume bars this cycle leaves the verdict unknown rather
		// than storing a disqualification for missing data.
		if q.Volume > 0 {
			d.filter.Evaluate(q.Symbol, q.Volume, q.AvgVolume5)
		}
		updated++
	}
	fmt.Printf("updated %d of %d instrument(s)\n", updated, len(symbols))

	return d.saveAndClose()
}
