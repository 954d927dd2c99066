// Package export writes the expense listing to files a spreadsheet can open.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"pfm/internal/ledger"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

const sheetName = "Expenses"

// WriteCSV writes the header and every stored row as-is.
func WriteCSV(w io.Writer, l ledger.Listing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledger.ExpensesHeader); err != nil {
		return err
	}
	for _, row := range l.Rows {
		if err := cw.Write(row.Fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with one sheet. Amounts of well-formed rows
// become numeric cells; anything else is kept as text.
func WriteXLSX(w io.Writer, l ledger.Listing) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for c, h := range ledger.ExpensesHeader {
		if err := setCell(f, c+1, 1, h); err != nil {
			return err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for r, row := range l.Rows {
		for c, v := range row.Fields {
			var value any = v
			if c == 1 && row.Err == nil {
				value = row.Expense.Amount.InexactFloat64()
			}
			if err := setCell(f, c+1, r+2, value); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "E", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return f.Write(w)
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}

// FileName is the export file name for username in format.
func FileName(username string, format Format) string {
	return fmt.Sprintf("exported_expenses_%s.%s", username, format)
}

// ToFile writes the listing into dir and returns the file path.
func ToFile(dir, username string, format Format, l ledger.Listing) (string, error) {
	path := filepath.Join(dir, FileName(username, format))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	switch format {
	case FormatXLSX:
		err = WriteXLSX(f, l)
	default:
		err = WriteCSV(f, l)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
