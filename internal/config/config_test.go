package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		DataDir:        dir,
		DataBackend:    "csv",
		SQLiteDBPath:   filepath.Join(dir, "pfm.db"),
		LogFile:        filepath.Join(dir, "app.log"),
		LogLevel:       "INFO",
		CurrencySymbol: "₹",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid csv backend config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "valid sqlite backend config",
			mutate:  func(c *Config) { c.DataBackend = "sqlite" },
			wantErr: false,
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "memory" },
			wantErr:     true,
			errorString: "invalid data backend 'memory': must be one of [csv sqlite]",
		},
		{
			name: "sqlite backend missing database path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "empty data directory",
			mutate:      func(c *Config) { c.DataDir = "" },
			wantErr:     true,
			errorString: "data directory cannot be empty",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:    "lower case log level",
			mutate:  func(c *Config) { c.LogLevel = "debug" },
			wantErr: false,
		},
		{
			name:        "empty currency symbol",
			mutate:      func(c *Config) { c.CurrencySymbol = "" },
			wantErr:     true,
			errorString: "currency symbol cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := Config{DataBackend: "sheets", LogLevel: "INFO"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Config.Validate() error = nil, want error")
	}
	for _, want := range []string{"data directory", "invalid data backend", "log file", "currency symbol"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Config.Validate() error = %v, want error containing %v", err, want)
		}
	}
}

func TestConfig_ValidateDataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(cfg.DataDir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	cfg.DataDir = file

	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "is not a directory") {
		t.Errorf("Config.Validate() error = %v, want not a directory", err)
	}
}

func TestLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"DATA_DIR", "DATA_BACKEND", "SQLITE_DB_PATH", "LOG_FILE", "LOG_LEVEL", "CURRENCY_SYMBOL"} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		wantDir := filepath.Join(home, ".personal_finance_data")
		if cfg.DataDir != wantDir {
			t.Errorf("Load() DataDir = %v, want %v", cfg.DataDir, wantDir)
		}
		if cfg.DataBackend != "csv" {
			t.Errorf("Load() DataBackend = %v, want csv", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != filepath.Join(wantDir, "pfm.db") {
			t.Errorf("Load() SQLiteDBPath = %v", cfg.SQLiteDBPath)
		}
		if cfg.LogFile != filepath.Join(wantDir, "app.log") {
			t.Errorf("Load() LogFile = %v", cfg.LogFile)
		}
		if cfg.CurrencySymbol != "₹" {
			t.Errorf("Load() CurrencySymbol = %v, want ₹", cfg.CurrencySymbol)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("DATA_DIR", "~/money")
		t.Setenv("DATA_BACKEND", "SQLite")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("CURRENCY_SYMBOL", "$")

		cfg := Load()

		wantDir := filepath.Join(home, "money")
		if cfg.DataDir != wantDir {
			t.Errorf("Load() DataDir = %v, want %v", cfg.DataDir, wantDir)
		}
		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != filepath.Join(wantDir, "pfm.db") {
			t.Errorf("Load() SQLiteDBPath = %v", cfg.SQLiteDBPath)
		}
		if cfg.LogLevel != "DEBUG" {
			t.Errorf("Load() LogLevel = %v, want DEBUG", cfg.LogLevel)
		}
		if cfg.CurrencySymbol != "$" {
			t.Errorf("Load() CurrencySymbol = %v, want $", cfg.CurrencySymbol)
		}
	})
}
