package cmd

import (
	"fmt"
	"strconv"

	"github.com/rustyeddy/etfdesk/strategy"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sellCmd = &cobra.Command{
	Use:   "sell <symbol> <price> <quantity>",
	Short: "Record a sell against the newest lot",
	Long: `Record a sell fill. The sell unwinds the most recently acquired
active lot; a quantity above the lot's remainder is clamped down to it.

Examples:
  etfdesk sell GOLDBEES 87.01 19
  etfdesk sell GOLDBEES 87.01 19 --date 2024-02-02`,
	Args: cobra.ExactArgs(3),
	RunE: runSell,
}

var sellDate string

func init() {
	rootCmd.AddCommand(sellCmd)
	sellCmd.Flags().StringVar(&sellDate, "date", "", "trade date as YYYY-MM-DD (default today)")
}

func runSell(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}

	price, err := decimal.NewFromString(args[1])
	if err != nil {
		d.close()
		return fmt.Errorf("bad price %q: %w", args[1], err)
	}
	quantity, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		d.close()
		return fmt.Errorf("bad quantity %q: %w", args[2], err)
	}

	date, err := parseDate(sellDate)
	if err != nil {
		d.close()
		return err
	}

	txn, err := d.engine().ExecuteSell(
		strategy.Advice{Action: strategy.ActionSell, Symbol: args[0]},
		quantity, price, date)
	if err != nil {
		d.close()
		return err
	}

	fmt.Printf("sold %d %s at %s, total %s\n",
		txn.Quantity, txn.Symbol, txn.Price.StringFixed(2), txn.TotalAmount.StringFixed(2))
	if txn.TotalProfit.Valid {
		fmt.Printf("profit %s (%s%%) against buy at %s\n",
			txn.TotalProfit.Decimal.StringFixed(2),
			txn.ProfitPercent.Decimal.StringFixed(2),
			txn.BuyPrice.Decimal.StringFixed(2))
	}

	return d.saveAndClose()
}
