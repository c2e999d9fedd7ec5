package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes <YYYY-MM-DD> [text...]",
	Short: "Show or set the observations of a trading day",
	Long: `With only a date, print the day's observations. With text, replace them.
An empty string clears them.

Examples:
  mt5journal notes 2024-01-05
  mt5journal notes 2024-01-05 "Chased the NFP spike, stop was too tight"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNotes,
}

func init() {
	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) error {
	date := args[0]
	if _, _, err := dayBounds(date); err != nil {
		return fmt.Errorf("date: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if len(args) == 1 {
		obs, err := s.Observations(ctx)
		if err != nil {
			return fmt.Errorf("read observations: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), obs[date])
		return nil
	}

	text := strings.Join(args[1:], " ")
	if err := s.SetObservations(ctx, date, text); err != nil {
		return fmt.Errorf("set observations: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Observations saved for %s\n", date)
	return nil
}
