package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt5journal/journal"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics over every stored trade",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	j, err := loadJournal(cmd)
	if err != nil {
		return err
	}

	dates := j.Dates()
	fmt.Fprintf(cmd.OutOrStdout(), "Days: %d (%s .. %s)\n", len(dates), dates[0], dates[len(dates)-1])
	printStatistics(cmd, j.Statistics)
	return nil
}

func printStatistics(cmd *cobra.Command, s journal.Statistics) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Trades:       %d (%d won, %d lost)\n", s.TotalTrades, s.WinningTrades, s.LosingTrades)
	fmt.Fprintf(out, "Win rate:     %.2f%%\n", s.WinRate)
	fmt.Fprintf(out, "Total P/L:    %s\n", s.TotalProfit.StringFixed(2))
	fmt.Fprintf(out, "Average win:  %s\n", s.AverageWin.StringFixed(2))
	fmt.Fprintf(out, "Average loss: %s\n", s.AverageLoss.StringFixed(2))
	fmt.Fprintf(out, "Largest win:  %s\n", s.LargestWin.StringFixed(2))
	fmt.Fprintf(out, "Largest loss: %s\n", s.LargestLoss.StringFixed(2))
}
