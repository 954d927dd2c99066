package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"pfm/internal/storage"
)

func newTestStore(t *testing.T) *storage.FileStore {
	t.Helper()
	s, err := storage.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, storage.EnsureAll(context.Background(), s, Headers()))
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// failingStore reports a storage error on every call.
type failingStore struct{}

var errDisk = &storage.StorageError{Op: "write", Set: "x", Err: errors.New("disk full")}

func (failingStore) ReadAll(context.Context, string) ([][]string, error) { return nil, errDisk }
func (failingStore) WriteAll(context.Context, string, []string, [][]string) error {
	return errDisk
}
func (failingStore) EnsureHeader(context.Context, string, []string) error { return errDisk }
func (failingStore) Exists(context.Context, string) (bool, error)         { return false, errDisk }
