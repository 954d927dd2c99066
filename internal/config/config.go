package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultDataDirName = ".personal_finance_data"

type Config struct {
	// Storage
	DataDir      string
	DataBackend  string
	SQLiteDBPath string

	// Logging
	LogFile  string
	LogLevel string

	// Display
	CurrencySymbol string
}

func Load() *Config {
	dataDir := expandHome(getEnv("DATA_DIR", defaultDataDir()))

	cfg := &Config{
		DataDir:      dataDir,
		DataBackend:  strings.ToLower(getEnv("DATA_BACKEND", "csv")),
		SQLiteDBPath: expandHome(getEnv("SQLITE_DB_PATH", filepath.Join(dataDir, "pfm.db"))),

		LogFile:  expandHome(getEnv("LOG_FILE", filepath.Join(dataDir, "app.log"))),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
	}

	return cfg
}

var validBackends = []string{"csv", "sqlite"}

var validLogLevels = []string{"DEBUG", "INFO", "WARN", "WARNING", "ERROR"}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty")
	} else if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
		errors = append(errors, fmt.Sprintf("data directory '%s' is not a directory", c.DataDir))
	}

	if !oneOf(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.LogFile == "" {
		errors = append(errors, "log file path cannot be empty")
	}

	if !oneOf(validLogLevels, strings.ToUpper(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels[:4]))
	}

	if c.CurrencySymbol == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func oneOf(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirName
	}
	return filepath.Join(home, defaultDataDirName)
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
