// Package fetcher reads the tabular and archived files the food-access
// inputs ship as: CSV, XLSX workbooks, and ZIP archives.
package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is a header row plus data rows of raw string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// TableOptions configures ReadTable.
type TableOptions struct {
	SheetName string // XLSX only; empty selects the first sheet
}

// ReadTable reads a CSV or XLSX file whose first row is a header.
// The format is chosen by file extension.
func ReadTable(ctx context.Context, path string, opts TableOptions) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return readCSVTable(ctx, path)
	case ".xlsx":
		return readXLSXTable(path, opts)
	default:
		return nil, eris.Errorf("fetcher: unsupported table format %q", ext)
	}
}

func readCSVTable(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	t, err := ReadCSV(ctx, f, CSVOptions{})
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read %s", path)
	}
	return t, nil
}

func readXLSXTable(path string, opts TableOptions) (*Table, error) {
	rows, err := ReadXLSX(path, XLSXOptions{SheetName: opts.SheetName})
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read %s", path)
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("fetcher: %s has no header row", path)
	}

	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}
