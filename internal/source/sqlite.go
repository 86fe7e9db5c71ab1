package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/janekbaraniewski/timeplot/internal/core"
)

// ReadSQLite runs query against the database at path. Result columns
// become chart columns in select order.
func ReadSQLite(ctx context.Context, path, query string) ([]core.RawRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()
	return QueryRows(ctx, db, query)
}

// QueryRows collects every row returned by query.
func QueryRows(ctx context.Context, db *sql.DB, query string) ([]core.RawRow, error) {
	rs, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rs.Close()

	cols, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var rows []core.RawRow
	for rs.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(rows), err)
		}
		row := make(core.RawRow, len(cols))
		for i, c := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[i] = core.Cell{Column: c, Value: v}
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return rows, nil
}
