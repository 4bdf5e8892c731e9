package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Manage the liquidity filter",
	Long: `Inspect and tune the volume-based liquidity gate.

Examples:
  etfdesk volume report
  etfdesk volume threshold 75000
  etfdesk volume off
  etfdesk volume check GOLDBEES 61234 58911`,
}

var volumeReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the filter state and stored verdicts",
	Args:  cobra.NoArgs,
	RunE:  runVolumeReport,
}

var volumeThresholdCmd = &cobra.Command{
	Use:   "threshold <minimum>",
	Short: "Change the threshold and re-evaluate stored verdicts",
	Args:  cobra.ExactArgs(1),
	RunE:  runVolumeThreshold,
}

var volumeOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable the liquidity gate",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, args []string) error { return setVolumeEnabled(true) },
}

var volumeOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable the liquidity gate",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, args []string) error { return setVolumeEnabled(false) },
}

var volumeCheckCmd = &cobra.Command{
	Use:   "check <symbol> <current-volume> <avg-volume>",
	Short: "Store a fresh qualification verdict",
	Args:  cobra.ExactArgs(3),
	RunE:  runVolumeCheck,
}

func init() {
	rootCmd.AddCommand(volumeCmd)
	volumeCmd.AddCommand(volumeReportCmd)
	volumeCmd.AddCommand(volumeThresholdCmd)
	volumeCmd.AddCommand(volumeOnCmd)
	volumeCmd.AddCommand(volumeOffCmd)
	volumeCmd.AddCommand(volumeCheckCmd)
}

func runVolumeReport(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.close()

	r := d.filter.Report()
	state := "enabled"
	if !r.Enabled {
		state = "disabled"
	}
	fmt.Printf("filter %s, threshold %d, %d instrument(s) checked\n", state, r.Threshold, r.Checked)
	fmt.Printf("qualified: %d, disqualified: %d\n\n", len(r.Qualified), len(r.Disqualified))

	if len(r.Records) == 0 {
		return nil
	}
	fmt.Printf("%-12s %12s %12s %12s\n", "SYMBOL", "VOLUME", "AVG 5D", "VERDICT")
	for _, rec := range r.Records {
		verdict := "disqualified"
		if rec.Qualified {
			verdict = "qualified"
		}
		fmt.Printf("%-12s %12d %12d %12s\n", rec.Symbol, rec.CurrentVolume, rec.AverageVolume, verdict)
	}
	return nil
}

func runVolumeThreshold(cmd *cobra.Command, args []string) error {
	threshold, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || threshold <= 0 {
		return fmt.Errorf("bad threshold %q: want a positive integer", args[0])
	}

	d, err := openDesk()
	if err != nil {
		return err
	}

	d.filter.SetThreshold(threshold)
	fmt.Printf("threshold set to %d, %d instrument(s) disqualified\n",
		threshold, len(d.filter.Disqualified()))

	return d.saveAndClose()
}

func setVolumeEnabled(enabled bool) error {
	d, err := openDesk()
	if err != nil {
		return err
	}

	d.filter.SetEnabled(enabled)
	if enabled {
		fmt.Println("liquidity gate enabled")
	} else {
		fmt.Println("liquidity gate disabled; every instrument qualifies")
	}

	return d.saveAndClose()
}

func runVolumeCheck(cmd *cobra.Command, args []string) error {
	current, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad current volume %q: %w", args[1], err)
	}
	avg, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("bad average volume %q: %w", args[2], err)
	}

	d, err := openDesk()
	if err != nil {
		return err
	}

	rec := d.filter.Evaluate(args[0], current, avg)
	verdict := "disqualified"
	if rec.Qualified {
		verdict = "qualified"
	}
	fmt.Printf("%s avg volume %d against threshold %d: %s\n",
		rec.Symbol, rec.AverageVolume, d.filter.Threshold(), verdict)

	return d.saveAndClose()
}
