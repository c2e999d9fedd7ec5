package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt5journal/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the journal as CSV or Org",
	Long: `Export every stored trade. The CSV form has one row per trade with
the day's observations repeated on each row; the Org form has one heading
per day.

Examples:
  mt5journal export --format csv --out journal.csv
  mt5journal export --format org > journal.org`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or org")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "org" {
		return fmt.Errorf("unknown format %q: want csv or org", exportFormat)
	}

	j, err := loadJournal(cmd)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	switch exportFormat {
	case "csv":
		err = journal.WriteCSV(w, j)
	case "org":
		_, err = io.WriteString(w, journal.FormatJournalOrg(j))
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if exportOut != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s\n", j.Statistics.TotalTrades, exportOut)
	}
	return nil
}
