package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rustyeddy/etfdesk/sizing"
	"github.com/rustyeddy/etfdesk/strategy"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var buyCmd = &cobra.Command{
	Use:   "buy <symbol> <price> [quantity]",
	Short: "Record a buy",
	Long: `Record a buy fill. Without an explicit quantity the position
sizer derives one from the configured capital per trade.

Examples:
  etfdesk buy GOLDBEES 81.73
  etfdesk buy GOLDBEES 81.73 119
  etfdesk buy GOLDBEES 81.73 --date 2024-01-02`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runBuy,
}

var buyDate string

func init() {
	rootCmd.AddCommand(buyCmd)
	buyCmd.Flags().StringVar(&buyDate, "date", "", "trade date as YYYY-MM-DD (default today)")
}

func runBuy(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}

	price, err := decimal.NewFromString(args[1])
	if err != nil {
		d.close()
		return fmt.Errorf("bad price %q: %w", args[1], err)
	}

	var quantity int64
	if len(args) == 3 {
		quantity, err = strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			d.close()
			return fmt.Errorf("bad quantity %q: %w", args[2], err)
		}
	} else {
		s, err := sizing.Suggest(price, decimal.Zero, d.sizing)
		if err != nil {
			d.close()
			return fmt.Errorf("size order: %w", err)
		}
		quantity = s.Quantity
		fmt.Printf("sized %d units for %s capital\n", quantity, s.Capital.StringFixed(2))
	}

	date, err := parseDate(buyDate)
	if err != nil {
		d.close()
		return err
	}

	txn, err := d.engine().ExecuteBuy(
		strategy.Advice{Action: strategy.ActionBuyNew, Symbol: args[0]},
		quantity, price, date)
	if err != nil {
		d.close()
		return err
	}

	fmt.Printf("bought %d %s at %s, total %s (txn %s)\n",
		txn.Quantity, txn.Symbol, txn.Price.StringFixed(2), txn.TotalAmount.StringFixed(2), txn.ID)

	return d.saveAndClose()
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
