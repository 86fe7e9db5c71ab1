package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/janekbaraniewski/timeplot/internal/core"
)

// ReadCSV reads a header row followed by data rows. Every row carries every
// header column; cells missing from short rows are nil. Rows that fail to
// parse are skipped, any other read error is returned.
func ReadCSV(r io.Reader, comma rune) ([]core.RawRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	headers = normalizeHeaders(headers)

	var rows []core.RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV rows: %w", err)
		}
		if blank(record) {
			continue
		}
		rows = append(rows, zipRow(headers, record))
	}
	return rows, nil
}

func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("column%d", i+1)
		}
		out[i] = h
	}
	return out
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func zipRow(headers, values []string) core.RawRow {
	row := make(core.RawRow, len(headers))
	for i, h := range headers {
		row[i] = core.Cell{Column: h}
		if i < len(values) {
			row[i].Value = values[i]
		}
	}
	return row
}
