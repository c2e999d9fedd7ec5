package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt5journal/config"
	"github.com/rustyeddy/mt5journal/journal"
	"github.com/rustyeddy/mt5journal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "mt5journal",
	Short: "Build a daily trading journal from MetaTrader 5 deal reports",
	Long: `mt5journal reconciles a MetaTrader 5 "Deals" CSV export into completed
trades, groups them by trading day and keeps the result in a SQLite journal.

It provides tools for:
  - Importing deal reports (comma, semicolon or tab separated)
  - Reviewing days, statistics and a monthly calendar
  - Win rate analysis by hour and weekday
  - Per-day observations
  - Exporting the journal as CSV or Org`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile string
	dbPath  string

	cfg    *config.Config
	logger *slog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Journal.DBPath = dbPath
	}

	logger = logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)
	return nil
}

func openStore() (*journal.SQLite, error) {
	s, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return s, nil
}

// loadJournal reads the whole stored journal and fails when nothing has
// been imported yet.
func loadJournal(cmd *cobra.Command) (*journal.JournalData, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	j, err := s.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	if len(j.Days) == 0 {
		return nil, fmt.Errorf("journal %s is empty, run import first", cfg.Journal.DBPath)
	}
	return j, nil
}
