package cmd

import (
	"fmt"

	"github.com/rustyeddy/etfdesk/universe"
	"github.com/spf13/cobra"
)

var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Load a symbol list into the tracked universe",
	Long: `Load instrument symbols from a file. Plain text, CSV, zip
archives and xz-compressed lists are all accepted; the format follows
the file extension.

Examples:
  etfdesk universe load etf_list.csv
  etfdesk universe load nse_etfs.zip
  etfdesk universe load symbols.txt.xz`,
}

var universeLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load symbols from a list file",
	Args:  cobra.ExactArgs(1),
	RunE:  runUniverseLoad,
}

func init() {
	rootCmd.AddCommand(universeCmd)
	universeCmd.AddCommand(universeLoadCmd)
}

func runUniverseLoad(cmd *cobra.Command, args []string) error {
	symbols, err := universe.Load(args[0])
	if err != nil {
		return err
	}

	d, err := openDesk()
	if err != nil {
		return err
	}

	added := 0
	for _, sym := range symbols {
		if d.ledger.Add(sym) {
			added++
		}
	}
	fmt.Printf("loaded %d symbol(s) from %s, %d new, %d tracked in total\n",
		len(symbols), args[0], added, len(d.ledger.Instruments()))

	return d.saveAndClose()
}
