package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt5journal/journal"
	"github.com/rustyeddy/mt5journal/pkg/id"
	"github.com/rustyeddy/mt5journal/reconcile"
)

var importCmd = &cobra.Command{
	Use:   "import <deals.csv>",
	Short: "Import an MT5 deals report, replacing the stored journal",
	Long: `Decode an MT5 deals export, pair opens with closes and store the
resulting day journals. The previous journal is replaced as a whole; day
observations are carried over unless import.keep_observations is false.

Examples:
  mt5journal import ReportHistory.csv
  mt5journal import --dry-run ReportHistory.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importDryRun bool

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "decode and report without writing the journal")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	j, rep, err := reconcile.New(logger).Import(f)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s\n", rep.Summary())
	for _, oc := range rep.OverCloses {
		fmt.Fprintf(out, "  line %d: order %s closed %s of %s remaining\n",
			oc.Line, oc.Order, oc.CloseVolume, oc.Remaining)
	}
	for _, p := range rep.OpenPositions {
		fmt.Fprintf(out, "  open: order %s %s %s %s since %s\n",
			p.Order, p.Symbol, p.Side, p.Remaining, p.OpenTime.UTC().Format(time.RFC3339))
	}

	if importDryRun {
		printStatistics(cmd, j.Statistics)
		return nil
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if cfg.Import.KeepObservations {
		obs, err := s.Observations(ctx)
		if err != nil {
			return fmt.Errorf("read observations: %w", err)
		}
		for date, text := range obs {
			if d, ok := j.Days[date]; ok {
				d.Observations = text
			}
		}
	}

	run := journal.ImportRun{
		RunID:      id.New(),
		Created:    time.Now().UTC(),
		Source:     filepath.Base(path),
		Rows:       rep.Rows,
		Trades:     rep.Trades,
		Skipped:    rep.SkippedTotal(),
		Unmatched:  rep.UnmatchedCloses,
		OverCloses: len(rep.OverCloses),
	}
	if err := s.Replace(ctx, run, j); err != nil {
		return fmt.Errorf("store journal: %w", err)
	}
	logger.Info("journal replaced", "run", run.RunID, "trades", run.Trades, "days", len(j.Days), "db", cfg.Journal.DBPath)

	fmt.Fprintf(out, "✓ Stored %d days in %s\n", len(j.Days), cfg.Journal.DBPath)
	if d, ok := j.Latest(); ok {
		fmt.Fprintf(out, "  Latest: %s  P/L %s  (%d trades)\n", d.Date, d.TotalProfit.StringFixed(2), d.TradeCount)
	}
	return nil
}
