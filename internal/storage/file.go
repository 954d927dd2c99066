package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pfm/internal/log"
)

const fileExt = ".csv"

// renameFile is swapped in tests to fail the final replace step.
var renameFile = os.Rename

// FileStore keeps each record set in <root>/<set>.csv.
type FileStore struct {
	root   string
	logger *log.Logger
}

func NewFileStore(root string, logger *log.Logger) (*FileStore, error) {
	if root == "" {
		return nil, errors.New("data root is empty")
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, storageErr("init", root, fmt.Errorf("create data directory: %w", err))
	}
	return &FileStore{
		root:   root,
		logger: log.OrDiscard(logger, log.ComponentStorage),
	}, nil
}

// Root returns the data directory this store writes to.
func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) path(set string) (string, error) {
	if set == "" || strings.ContainsAny(set, `/\`) || set == "." || set == ".." {
		return "", fmt.Errorf("invalid record set name %q", set)
	}
	return filepath.Join(s.root, set+fileExt), nil
}

func (s *FileStore) Exists(_ context.Context, set string) (bool, error) {
	p, err := s.path(set)
	if err != nil {
		return false, storageErr("stat", set, err)
	}
	_, err = os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, storageErr("stat", set, err)
	}
	return true, nil
}

func (s *FileStore) ReadAll(ctx context.Context, set string) ([][]string, error) {
	p, err := s.path(set)
	if err != nil {
		return nil, storageErr("read", set, err)
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("read", set, err)
	}

	r := newReader(bytes.NewReader(data))
	var rows [][]string
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			s.logger.WarnContext(ctx, "Skipping unparseable line",
				log.FieldSet, set, "line", perr.StartLine, log.FieldError, err)
			first = false
			continue
		}
		if err != nil {
			return nil, storageErr("read", set, err)
		}
		if first {
			first = false
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func (s *FileStore) WriteAll(ctx context.Context, set string, header []string, rows [][]string) error {
	p, err := s.path(set)
	if err != nil {
		return storageErr("write", set, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return storageErr("write", set, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return storageErr("write", set, err)
	}

	if err := writeAtomic(p, buf.Bytes()); err != nil {
		return storageErr("write", set, err)
	}
	s.logger.DebugContext(ctx, "Record set written", log.NewFields().WithSet(set, len(rows)).ToSlice()...)
	return nil
}

func (s *FileStore) EnsureHeader(ctx context.Context, set string, header []string) error {
	p, err := s.path(set)
	if err != nil {
		return storageErr("ensure header", set, err)
	}
	headerLine, err := encodeLine(header)
	if err != nil {
		return storageErr("ensure header", set, err)
	}

	data, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return storageErr("ensure header", set, err)
	}

	lines := nonBlankLines(string(data))
	if len(lines) == 0 {
		if err := writeAtomic(p, []byte(headerLine+"\n")); err != nil {
			return storageErr("ensure header", set, err)
		}
		s.logger.InfoContext(ctx, "Record set created", log.FieldSet, set)
		return nil
	}

	if first, err := newReader(strings.NewReader(lines[0])).Read(); err == nil && sameFields(first, header) {
		return nil
	}

	// The old first line may be a data row, so every line survives.
	var b strings.Builder
	b.WriteString(headerLine)
	b.WriteByte('\n')
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := writeAtomic(p, []byte(b.String())); err != nil {
		return storageErr("ensure header", set, err)
	}
	s.logger.WarnContext(ctx, "Record set header repaired",
		log.NewFields().WithOperation(log.OpRepair).WithSet(set, len(lines)).ToSlice()...)
	return nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func encodeLine(fields []string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// writeAtomic writes data to a temp file beside path and renames it into
// place, so a failure mid-write leaves the previous file untouched.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := renameFile(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}
