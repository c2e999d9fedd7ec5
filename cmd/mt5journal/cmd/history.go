package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past imports into the journal",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListImports(cmd.Context())
	if err != nil {
		return fmt.Errorf("list imports: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no imports yet")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s  %-24s rows=%d trades=%d skipped=%d unmatched=%d over-closes=%d\n",
			r.RunID, r.Created.UTC().Format(time.RFC3339), r.Source,
			r.Rows, r.Trades, r.Skipped, r.Unmatched, r.OverCloses)
	}
	return nil
}
