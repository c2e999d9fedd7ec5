package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt5journal/journal"
)

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Show one trading day, the latest by default",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDay,
}

var tradeCmd = &cobra.Command{
	Use:   "trade <order> [leg]",
	Short: "Show one close leg of an order",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTrade,
}

func init() {
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(tradeCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	var date string
	if len(args) == 1 {
		date = args[0]
	} else {
		j, err := s.Load(ctx)
		if err != nil {
			return fmt.Errorf("load journal: %w", err)
		}
		latest, ok := j.Latest()
		if !ok {
			return fmt.Errorf("journal %s is empty, run import first", cfg.Journal.DBPath)
		}
		date = latest.Date
	}

	start, end, err := dayBounds(date)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	trades, err := s.ListTradesClosedBetween(ctx, start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	if len(trades) == 0 {
		return fmt.Errorf("no trades on %s", date)
	}

	obs, err := s.Observations(ctx)
	if err != nil {
		return fmt.Errorf("read observations: %w", err)
	}

	d := journal.NewDay(date)
	for _, t := range trades {
		d.Add(t)
	}
	d.Observations = obs[date]

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatDayOrg(d))
	return nil
}

func runTrade(cmd *cobra.Command, args []string) error {
	leg := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("leg must be a positive number: %q", args[1])
		}
		leg = n
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.GetTrade(cmd.Context(), args[0], leg)
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

// dayBounds returns the UTC day that journal dates are keyed on.
func dayBounds(day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation(journal.DayLayout, day, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return t, t.AddDate(0, 0, 1), nil
}
