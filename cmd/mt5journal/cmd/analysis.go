package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt5journal/journal"
)

var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Win rate by close hour and weekday",
	Long: `Bucket every trade by the hour and weekday it closed (UTC) and rank the
best buckets. Buckets with fewer than --min-trades trades are listed but
never ranked.`,
	Args: cobra.NoArgs,
	RunE: runAnalysis,
}

var analysisMinTrades int

func init() {
	rootCmd.AddCommand(analysisCmd)

	analysisCmd.Flags().IntVarP(&analysisMinTrades, "min-trades", "m", 0, "minimum trades per ranked bucket (default from config)")
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	j, err := loadJournal(cmd)
	if err != nil {
		return err
	}

	minTrades := cfg.Analysis.MinTrades
	if analysisMinTrades > 0 {
		minTrades = analysisMinTrades
	}
	p := journal.AnalyzePatterns(j.Trades(), minTrades)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Best hours (min %d trades):\n", minTrades)
	printBest(out, p.BestHour, func(k int) string { return fmt.Sprintf("%02d:00", k) })
	fmt.Fprintf(out, "Best weekdays (min %d trades):\n", minTrades)
	printBest(out, p.BestDays, journal.WeekdayName)

	fmt.Fprintln(out, "\nBy hour:")
	for _, b := range p.Hourly {
		if b.Total == 0 {
			continue
		}
		fmt.Fprintf(out, "  %02d:00  %3d trades  %6.2f%%\n", b.Key, b.Total, b.WinRate)
	}
	fmt.Fprintln(out, "By weekday:")
	for _, b := range p.Weekday {
		if b.Total == 0 {
			continue
		}
		fmt.Fprintf(out, "  %-9s  %3d trades  %6.2f%%\n", journal.WeekdayName(b.Key), b.Total, b.WinRate)
	}
	return nil
}

func printBest(out io.Writer, buckets []journal.Bucket, name func(int) string) {
	if len(buckets) == 0 {
		fmt.Fprintln(out, "  (not enough trades)")
		return
	}
	for i, b := range buckets {
		fmt.Fprintf(out, "  %d. %-9s %6.2f%% (%d/%d)\n", i+1, name(b.Key), b.WinRate, b.Wins, b.Total)
	}
}
