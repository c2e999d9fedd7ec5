package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "./mt5journal.db", cfg.Journal.DBPath)
	assert.True(t, cfg.Import.KeepObservations)
	assert.Equal(t, 5, cfg.Analysis.MinTrades)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func(mod func(c *Config)) *Config {
		c := Default()
		mod(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name:    "missing db path",
			config:  valid(func(c *Config) { c.Journal.DBPath = "" }),
			wantErr: true,
			errMsg:  "journal.db_path is required",
		},
		{
			name:    "zero min trades",
			config:  valid(func(c *Config) { c.Analysis.MinTrades = 0 }),
			wantErr: true,
			errMsg:  "analysis.min_trades must be at least 1",
		},
		{
			name:    "unknown log level",
			config:  valid(func(c *Config) { c.Log.Level = "verbose" }),
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "upper case level",
			config:  valid(func(c *Config) { c.Log.Level = "DEBUG" }),
			wantErr: false,
		},
		{
			name:    "unknown log format",
			config:  valid(func(c *Config) { c.Log.Format = "xml" }),
			wantErr: true,
			errMsg:  "log.format must be 'text' or 'json'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"yml format", ".yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Journal.DBPath = "/var/lib/journal.db"
			cfg.Analysis.MinTrades = 3
			cfg.Import.KeepObservations = false
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  db_path: other.db\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Journal.DBPath)
	assert.Equal(t, 5, cfg.Analysis.MinTrades)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("analysis:\n  min_trades: 0\n"), 0644))
	_, err := LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not: [valid"), 0644))
	_, err = LoadFromFile(garbage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/env.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, Default().SaveToFile(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Journal.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "xml")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}
