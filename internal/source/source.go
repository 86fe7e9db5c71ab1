// Package source reads chart rows from files and databases.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/janekbaraniewski/timeplot/internal/core"
)

var ErrUnsupported = errors.New("unsupported input format")

type Options struct {
	// Sheet selects the XLSX sheet; empty means the first one.
	Sheet string
	// Query is run against a SQLite database.
	Query string
}

// Kind names the reader used for path.
func Kind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".tsv", ".tab":
		return "tsv"
	case ".json":
		return "json"
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	}
	return ""
}

// Load reads all rows of path, choosing the reader by extension. A
// non-empty Query forces the SQLite reader.
func Load(ctx context.Context, path string, opts Options) ([]core.RawRow, error) {
	kind := Kind(path)
	if opts.Query != "" {
		kind = "sqlite"
	}

	var (
		rows []core.RawRow
		err  error
	)
	switch kind {
	case "csv", "tsv":
		rows, err = loadDelimited(path, kind == "tsv")
	case "json":
		rows, err = loadJSON(path)
	case "xlsx":
		rows, err = ReadXLSX(path, opts.Sheet)
	case "sqlite":
		if opts.Query == "" {
			return nil, fmt.Errorf("%s: a query is required for SQLite input", path)
		}
		rows, err = ReadSQLite(ctx, path, opts.Query)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return rows, nil
}

func loadDelimited(path string, tabs bool) ([]core.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	comma := ','
	if tabs {
		comma = '\t'
	}
	return ReadCSV(f, comma)
}

func loadJSON(path string) ([]core.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
