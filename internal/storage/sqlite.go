package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pfm/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every record set in one SQLite database. Each set is a
// header plus rows stored as encoded lines in position order.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteStore(dbPath string, logger *log.Logger) (*SQLiteStore, error) {
	logger = log.OrDiscard(logger, log.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, storageErr("init", dbPath, fmt.Errorf("create db directory: %w", err))
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		return nil, storageErr("init", dbPath, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, storageErr("init", dbPath, fmt.Errorf("open sqlite database: %w", err))
	}
	// one writer at a time; sqlite rejects concurrent write transactions
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storageErr("init", dbPath, fmt.Errorf("ping database: %w", err))
	}

	logger.Info("SQLite record store ready", log.FieldPath, dbPath, "schema_version", version)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) header(ctx context.Context, q querier, set string) ([]string, bool, error) {
	var line string
	err := q.QueryRowContext(ctx, `SELECT header FROM record_sets WHERE name = ?`, set).Scan(&line)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	fields, err := decodeLine(line)
	if err != nil {
		return nil, true, err
	}
	return fields, true, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, set string) (bool, error) {
	_, ok, err := s.header(ctx, s.db, set)
	if err != nil {
		return false, storageErr("stat", set, err)
	}
	return ok, nil
}

func (s *SQLiteStore) ReadAll(ctx context.Context, set string) ([][]string, error) {
	rs, err := s.db.QueryContext(ctx,
		`SELECT line FROM records WHERE set_name = ? ORDER BY position`, set)
	if err != nil {
		return nil, storageErr("read", set, err)
	}
	defer rs.Close()

	var rows [][]string
	for rs.Next() {
		var line string
		if err := rs.Scan(&line); err != nil {
			return nil, storageErr("read", set, err)
		}
		fields, err := decodeLine(line)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping unparseable row", log.FieldSet, set, log.FieldError, err)
			continue
		}
		rows = append(rows, fields)
	}
	if err := rs.Err(); err != nil {
		return nil, storageErr("read", set, err)
	}
	return rows, nil
}

func (s *SQLiteStore) WriteAll(ctx context.Context, set string, header []string, rows [][]string) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := putHeader(ctx, tx, set, header); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE set_name = ?`, set); err != nil {
			return fmt.Errorf("clear rows: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO records (set_name, position, line) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()
		for i, row := range rows {
			line, err := encodeLine(row)
			if err != nil {
				return fmt.Errorf("encode row %d: %w", i+1, err)
			}
			if _, err := stmt.ExecContext(ctx, set, i+1, line); err != nil {
				return fmt.Errorf("insert row %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return storageErr("write", set, err)
	}
	s.logger.DebugContext(ctx, "Record set written", log.NewFields().WithSet(set, len(rows)).ToSlice()...)
	return nil
}

func (s *SQLiteStore) EnsureHeader(ctx context.Context, set string, header []string) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, ok, err := s.header(ctx, tx, set)
		if err != nil && !ok {
			return err
		}
		if ok && err == nil && sameFields(current, header) {
			return nil
		}
		if ok {
			s.logger.WarnContext(ctx, "Record set header repaired", log.FieldSet, set)
		} else {
			s.logger.InfoContext(ctx, "Record set created", log.FieldSet, set)
		}
		return putHeader(ctx, tx, set, header)
	})
	if err != nil {
		return storageErr("ensure header", set, err)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func putHeader(ctx context.Context, tx *sql.Tx, set string, header []string) error {
	line, err := encodeLine(header)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO record_sets (name, header) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET header = excluded.header`, set, line)
	if err != nil {
		return fmt.Errorf("store header: %w", err)
	}
	return nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func decodeLine(line string) ([]string, error) {
	return newReader(strings.NewReader(line)).Read()
}
