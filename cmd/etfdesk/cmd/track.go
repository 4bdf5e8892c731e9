package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Manage the tracked instrument universe",
	Long: `Add, remove and list the instruments the desk evaluates.

Removing an instrument only stops tracking it; lots and the transaction
history stay intact.

Examples:
  etfdesk track add GOLDBEES NIFTYBEES
  etfdesk track remove GOLDBEES
  etfdesk track list`,
}

var trackAddCmd = &cobra.Command{
	Use:   "add <symbol>...",
	Short: "Add instruments to the tracked universe",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrackAdd,
}

var trackRemoveCmd = &cobra.Command{
	Use:   "remove <symbol>...",
	Short: "Stop tracking instruments",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrackRemove,
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked instruments",
	Args:  cobra.NoArgs,
	RunE:  runTrackList,
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackAddCmd)
	trackCmd.AddCommand(trackRemoveCmd)
	trackCmd.AddCommand(trackListCmd)
}

func runTrackAdd(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}

	added := 0
	for _, sym := range args {
		if d.ledger.Add(sym) {
			added++
		}
	}
	fmt.Printf("added %d instrument(s), %d tracked\n", added, len(d.ledger.Instruments()))

	return d.saveAndClose()
}

func runTrackRemove(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}

	for _, sym := range args {
		if !d.ledger.Remove(sym) {
			fmt.Printf("%s was not tracked\n", sym)
			continue
		}
		d.filter.Remove(sym)
		fmt.Printf("removed %s\n", sym)
	}

	return d.saveAndClose()
}

func runTrackList(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.close()

	instruments := d.ledger.Instruments()
	if len(instruments) == 0 {
		fmt.Println("no instruments tracked")
		return nil
	}

	fmt.Printf("%-12s %10s %10s %9s\n", "SYMBOL", "PRICE", "20DMA", "DEV%")
	for _, in := range instruments {
		price, dma, dev := "-", "-", "-"
		if in.Price.Valid {
			price = in.Price.Decimal.StringFixed(2)
		}
		if in.DMA20.Valid {
			dma = in.DMA20.Decimal.StringFixed(2)
		}
		if in.Deviation.Valid {
			dev = in.Deviation.Decimal.StringFixed(2)
		}
		fmt.Printf("%-12s %10s %10s %9s\n", in.Symbol, price, dma, dev)
	}
	return nil
}
