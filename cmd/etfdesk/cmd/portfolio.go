package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Show current holdings and valuation",
	Args:  cobra.NoArgs,
	RunE:  runPortfolio,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.close()

	s := d.ledger.Summary()
	if s.Instruments == 0 {
		fmt.Println("no holdings")
		return nil
	}

	fmt.Printf("%-12s %6s %10s %10s %12s %12s %9s\n",
		"SYMBOL", "QTY", "AVG BUY", "PRICE", "COST", "VALUE", "P&L%")
	for _, h := range s.Holdings {
		fmt.Printf("%-12s %6d %10s %10s %12s %12s %9s\n",
			h.Symbol, h.Quantity,
			h.AvgBuyPrice.StringFixed(2), h.CurrentPrice.StringFixed(2),
			h.Cost.StringFixed(2), h.Value.StringFixed(2),
			h.ProfitLossPercent.StringFixed(2))
	}

	fmt.Printf("\ninvested %s, value %s, unrealized P&L %s\n",
		s.Invested.StringFixed(2), s.CurrentValue.StringFixed(2), s.ProfitLoss.StringFixed(2))
	return nil
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show realized trading statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.close()

	s := d.ledger.Stats()
	fmt.Printf("buys:            %d\n", s.Buys)
	fmt.Printf("sells:           %d\n", s.Sells)
	fmt.Printf("profitable:      %d\n", s.ProfitableSells)
	fmt.Printf("losing:          %d\n", s.LosingSells)
	fmt.Printf("win rate:        %s%%\n", s.WinRatePercent.StringFixed(1))
	fmt.Printf("realized profit: %s\n", s.TotalRealizedProfit.StringFixed(2))
	fmt.Printf("avg per sell:    %s\n", s.AvgProfitPerSell.StringFixed(2))
	return nil
}
