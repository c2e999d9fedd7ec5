package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides applied by Load after the file is read.
const (
	EnvDBPath    = "MT5JOURNAL_DB"
	EnvLogLevel  = "MT5JOURNAL_LOG_LEVEL"
	EnvLogFormat = "MT5JOURNAL_LOG_FORMAT"
)

// Config is the journal tool configuration
type Config struct {
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Import   ImportConfig   `json:"import" yaml:"import"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// JournalConfig locates the journal store
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ImportConfig controls how a new deals report replaces the stored journal
type ImportConfig struct {
	// KeepObservations carries day notes over to a re-imported journal.
	KeepObservations bool `json:"keep_observations" yaml:"keep_observations"`
}

// AnalysisConfig contains pattern analysis parameters
type AnalysisConfig struct {
	MinTrades int `json:"min_trades" yaml:"min_trades"`
}

// LogConfig selects the slog level and handler
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

// Load reads .env when present, then the config file at path (Default when
// path is empty), then applies environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Journal.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
}

// LoadFromFile loads configuration from a file (JSON or YAML). Sections
// missing from the file keep their Default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Analysis.MinTrades < 1 {
		return fmt.Errorf("analysis.min_trades must be at least 1")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DBPath: "./mt5journal.db",
		},
		Import: ImportConfig{
			KeepObservations: true,
		},
		Analysis: AnalysisConfig{
			MinTrades: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
