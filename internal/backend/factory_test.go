package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfm/internal/config"
	"pfm/internal/ledger"
)

func TestCreateBackendBootstrapsEverySet(t *testing.T) {
	dir := t.TempDir()
	configs := []Config{
		{Type: CSVBackend, DataDirectory: dir},
		{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "pfm.db")},
	}

	for _, cfg := range configs {
		t.Run(cfg.Type.String(), func(t *testing.T) {
			ctx := context.Background()
			res, err := NewFactory(nil).CreateBackend(ctx, cfg)
			require.NoError(t, err)
			if res.Cleanup != nil {
				t.Cleanup(func() { _ = res.Cleanup() })
			}

			for set := range ledger.Headers() {
				ok, err := res.Store.Exists(ctx, set)
				require.NoError(t, err)
				assert.True(t, ok, set)
			}
		})
	}
}

func TestCreateBackendRejectsInvalidConfig(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: "memory"})
	assert.Error(t, err)

	_, err = NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend})
	assert.ErrorContains(t, err, "SQLite database path is required")
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{DataDir: "/data", DataBackend: "sqlite", SQLiteDBPath: "/data/pfm.db"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, DataDirectory: "/data", SQLiteDBPath: "/data/pfm.db"}, cfg)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
}
