package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank instruments by deviation from the 20-day moving average",
	Long: `List every priced instrument ordered by deviation, most fallen
first. Rank 1 is the cheapest relative to its own trend.`,
	Args: cobra.NoArgs,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.close()

	rankings := d.ledger.Rankings()
	if len(rankings) == 0 {
		fmt.Println("no instrument has both a price and a moving average")
		return nil
	}

	held := d.ledger.Holdings()

	fmt.Printf("%4s %-12s %10s %10s %9s %6s %5s\n", "RANK", "SYMBOL", "PRICE", "20DMA", "DEV%", "LIQ", "HELD")
	for i, r := range rankings {
		liq := "ok"
		if !d.filter.IsQualified(r.Symbol) {
			liq = "low"
		}
		holding := ""
		if _, ok := held[r.Symbol]; ok {
			holding = "*"
		}
		fmt.Printf("%4d %-12s %10s %10s %9s %6s %5s\n",
			i+1, r.Symbol, r.Price.StringFixed(2), r.DMA20.StringFixed(2), r.Deviation.StringFixed(2), liq, holding)
	}
	return nil
}
