package cmd

import (
	"fmt"

	"github.com/rustyeddy/etfdesk/sizing"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var investCmd = &cobra.Command{
	Use:   "invest",
	Short: "Manage capital per trade and size orders",
	Long: `Inspect and change the capital deployed per trade, and preview
the quantity a given price would buy.

Examples:
  etfdesk invest show
  etfdesk invest set 25000
  etfdesk invest preset aggressive
  etfdesk invest suggest 81.73`,
}

var investShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the sizing configuration",
	Args:  cobra.NoArgs,
	RunE:  runInvestShow,
}

var investSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the default capital per trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvestSet,
}

var investPresetCmd = &cobra.Command{
	Use:   "preset <name>",
	Short: "Adopt a named capital preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvestPreset,
}

var investSuggestCmd = &cobra.Command{
	Use:   "suggest <price>",
	Short: "Preview the sized quantity for a price",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvestSuggest,
}

var investCapital string

func init() {
	rootCmd.AddCommand(investCmd)
	investCmd.AddCommand(investShowCmd)
	investCmd.AddCommand(investSetCmd)
	investCmd.AddCommand(investPresetCmd)
	investCmd.AddCommand(investSuggestCmd)

	investSuggestCmd.Flags().StringVar(&investCapital, "capital", "", "capital override (default the configured per-trade amount)")
}

func runInvestShow(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.close()

	c := d.sizing
	fmt.Printf("capital per trade: %s (bounds %s to %s)\n",
		c.DefaultPerTrade.StringFixed(2), c.MinPerTrade.StringFixed(2), c.MaxPerTrade.StringFixed(2))
	fmt.Printf("quantity bounds:   %d to %d\n", c.MinQuantity, c.MaxQuantity)
	rounding := "round to nearest"
	if c.RoundDown {
		rounding = "round down"
	}
	fmt.Printf("price buffer:      %s%%, %s\n", c.BufferPercent.StringFixed(1), rounding)

	if len(c.Presets) > 0 {
		fmt.Println("presets:")
		for _, name := range [...]string{"conservative", "balanced", "aggressive"} {
			if amount, ok := c.Presets[name]; ok {
				fmt.Printf("  %-12s %s\n", name, amount.StringFixed(2))
			}
		}
	}
	return nil
}

func runInvestSet(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("bad amount %q: %w", args[0], err)
	}

	d, err := openDesk()
	if err != nil {
		return err
	}

	if err := d.sizing.SetDefaultPerTrade(amount); err != nil {
		d.close()
		return err
	}
	fmt.Printf("capital per trade set to %s\n", amount.StringFixed(2))

	return d.saveAndClose()
}

func runInvestPreset(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}

	if err := d.sizing.UsePreset(args[0]); err != nil {
		d.close()
		return err
	}
	fmt.Printf("preset %q adopted: %s per trade\n", args[0], d.sizing.DefaultPerTrade.StringFixed(2))

	return d.saveAndClose()
}

func runInvestSuggest(cmd *cobra.Command, args []string) error {
	price, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("bad price %q: %w", args[0], err)
	}

	capital := decimal.Zero
	if investCapital != "" {
		capital, err = decimal.NewFromString(investCapital)
		if err != nil {
			return fmt.Errorf("bad capital %q: %w", investCapital, err)
		}
	}

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.close()

	s, err := sizing.Suggest(price, capital, d.sizing)
	if err != nil {
		return err
	}

	fmt.Printf("price %s, buffered %s\n", s.Price.StringFixed(2), s.EffectivePrice.StringFixed(4))
	fmt.Printf("capital %s buys %d unit(s)\n", s.Capital.StringFixed(2), s.Quantity)
	fmt.Printf("exact cost %s (%s%% of capital)\n", s.ExactCost.StringFixed(2), s.UtilizationPercent.StringFixed(1))
	return nil
}
