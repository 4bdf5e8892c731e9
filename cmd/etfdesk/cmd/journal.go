package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/etfdesk/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the transaction journal",
	Long: `Query transaction records from the SQLite journal.

Subcommands:
  txn    - Get one transaction by ID
  day    - List transactions on a specific day
  symbol - List every transaction for an instrument

Examples:
  etfdesk journal txn <txn-id>
  etfdesk journal day 2024-01-15
  etfdesk journal symbol GOLDBEES`,
}

var journalTxnCmd = &cobra.Command{
	Use:   "txn <txn-id>",
	Short: "Get one transaction by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTxn,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List transactions on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalSymbolCmd = &cobra.Command{
	Use:   "symbol <symbol>",
	Short: "List every transaction for an instrument",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSymbol,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTxnCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalSymbolCmd)
}

func openSQLiteJournal() (*journal.SQLite, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Journal.Type != "sqlite" {
		return nil, fmt.Errorf("journal queries need the sqlite journal, config uses %q", cfg.Journal.Type)
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}

func runJournalTxn(cmd *cobra.Command, args []string) error {
	j, err := openSQLiteJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetRecord(args[0])
	if err != nil {
		return err
	}
	printRecord(rec)
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	start, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return fmt.Errorf("bad date %q (want YYYY-MM-DD): %w", args[0], err)
	}

	j, err := openSQLiteJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListBetween(start, start.Add(24*time.Hour))
	if err != nil {
		return err
	}
	printRecords(recs)
	return nil
}

func runJournalSymbol(cmd *cobra.Command, args []string) error {
	j, err := openSQLiteJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListBySymbol(args[0])
	if err != nil {
		return err
	}
	printRecords(recs)
	return nil
}

func printRecords(recs []journal.Record) {
	if len(recs) == 0 {
		fmt.Println("no transactions")
		return
	}
	for _, rec := range recs {
		printRecord(rec)
	}
}

func printRecord(rec journal.Record) {
	line := fmt.Sprintf("%s  %-4s %-12s %6d @ %10s  total %12s",
		rec.Date.Format("2006-01-02"), rec.Type, rec.Symbol,
		rec.Quantity, rec.Price.StringFixed(2), rec.TotalAmount.StringFixed(2))
	if rec.TotalProfit.Valid {
		line += fmt.Sprintf("  profit %s (%s%%)",
			rec.TotalProfit.Decimal.StringFixed(2), rec.ProfitPercent.Decimal.StringFixed(2))
	}
	fmt.Println(line)
	fmt.Printf("  txn %s", rec.TxnID)
	if rec.LotID != "" {
		fmt.Printf("  lot %s", rec.LotID)
	}
	fmt.Println()
}
