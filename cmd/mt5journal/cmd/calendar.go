package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt5journal/journal"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Show a month of daily P/L, the latest traded month by default",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	j, err := loadJournal(cmd)
	if err != nil {
		return err
	}

	var month time.Time
	if len(args) == 1 {
		month, err = time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("month: %w", err)
		}
	} else {
		latest, _ := j.Latest()
		month, _ = time.Parse(journal.DayLayout, latest.Date)
	}

	cells := journal.MonthGrid(month.Year(), month.Month(), j)
	fmt.Fprint(cmd.OutOrStdout(), renderCalendar(month, cells))
	return nil
}

// renderCalendar draws one row per week, each cell the day of month and the
// day's P/L when traded. Days outside the month are blank.
func renderCalendar(month time.Time, cells []journal.CalendarDay) string {
	const width = 12

	var b strings.Builder
	b.WriteString(month.Format("January 2006"))
	b.WriteString("\n")
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&b, "%-*s", width, journal.WeekdayName(i)[:3])
	}
	b.WriteString("\n")

	for i, c := range cells {
		cell := ""
		if c.IsCurrentMonth {
			cell = fmt.Sprintf("%2d", c.DayOfMonth)
			if c.HasTrading {
				cell += " " + c.Profit.StringFixed(2)
			}
		}
		fmt.Fprintf(&b, "%-*s", width, cell)
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}

	profit, trades := journal.MonthTotal(cells)
	fmt.Fprintf(&b, "Month P/L %s over %d trades\n", profit.StringFixed(2), trades)
	return b.String()
}
