// Package storage implements the record store every ledger is built on: a
// named, header-having set of delimited rows that is always read and written
// as a whole.
package storage

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RecordStore reads and replaces whole record sets.
//
// There is no locking. A store assumes a single process owns its data root;
// concurrent external mutation is undefined.
type RecordStore interface {
	// ReadAll returns every row of set, header excluded. A missing set reads
	// as empty.
	ReadAll(ctx context.Context, set string) ([][]string, error)

	// WriteAll replaces the entire set. Readers observe either the previous
	// content or the new content, never a partial write.
	WriteAll(ctx context.Context, set string, header []string, rows [][]string) error

	// EnsureHeader creates set with header when absent, or rewrites it with the
	// correct header when its first row differs, keeping every other line.
	EnsureHeader(ctx context.Context, set string, header []string) error

	// Exists reports whether set has been created.
	Exists(ctx context.Context, set string) (bool, error)
}

// StorageError reports that the underlying medium could not be read or
// written. It is fatal to the attempted operation and never retried.
type StorageError struct {
	Op  string
	Set string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Set, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op, set string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Set: set, Err: err}
}

// EnsureAll bootstraps every set in headers. Sets are independent, so they
// are ensured concurrently; the first failure is returned.
func EnsureAll(ctx context.Context, store RecordStore, headers map[string][]string) error {
	g, ctx := errgroup.WithContext(ctx)
	for set, header := range headers {
		set, header := set, header
		g.Go(func() error {
			return store.EnsureHeader(ctx, set, header)
		})
	}
	return g.Wait()
}

func sameFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var (
	_ RecordStore = (*FileStore)(nil)
	_ RecordStore = (*SQLiteStore)(nil)
)
