package cmd

import (
	"fmt"

	"github.com/rustyeddy/etfdesk/sizing"
	"github.com/rustyeddy/etfdesk/strategy"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend today's buy and sell",
	Long: `Run the full pipeline: deviation ranking, liquidity gate, buy
or average-down pick, and the best-profit LIFO sell candidate. A sized
quantity is shown next to the buy recommendation.`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.close()

	advice := d.engine().Advise()

	fmt.Println("BUY SIDE")
	printAdvice(advice.Buy)
	if advice.Buy.Action == strategy.ActionBuyNew || advice.Buy.Action == strategy.ActionAverageDown {
		if s, err := sizing.Suggest(advice.Buy.Price, d.sizing.DefaultPerTrade, d.sizing); err == nil {
			fmt.Printf("  sized: %d units ~ %s of %s capital (%s%%)\n",
				s.Quantity, s.ExactCost.StringFixed(2), s.Capital.StringFixed(2), s.UtilizationPercent.StringFixed(1))
		}
	}

	fmt.Println("\nSELL SIDE")
	printAdvice(advice.Sell)

	s := advice.Summary
	fmt.Printf("\nPORTFOLIO  %d instrument(s), invested %s, value %s, P&L %s\n",
		s.Instruments, s.Invested.StringFixed(2), s.CurrentValue.StringFixed(2), s.ProfitLoss.StringFixed(2))
	return nil
}

func printAdvice(a strategy.Advice) {
	switch a.Action {
	case strategy.ActionBuyNew:
		fmt.Printf("  buy %s at %s (rank %d, deviation %s%%)\n",
			a.Symbol, a.Price.StringFixed(2), a.Rank, a.Deviation.StringFixed(2))
	case strategy.ActionAverageDown:
		fmt.Printf("  average down %s at %s (loss %s%%)\n",
			a.Symbol, a.Price.StringFixed(2), a.LossPercent.StringFixed(2))
	case strategy.ActionSell:
		fmt.Printf("  sell %s at %s (profit %s%%, lot of %d from %s)\n",
			a.Symbol, a.Price.StringFixed(2), a.ProfitPercent.StringFixed(2),
			a.Lot.Quantity, a.Lot.Date.Format("2006-01-02"))
	default:
		fmt.Printf("  no action: %s\n", a.Reason)
	}
}
