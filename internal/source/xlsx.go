package source

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/janekbaraniewski/timeplot/internal/core"
)

// ReadXLSX reads a worksheet whose first row holds the column names.
func ReadXLSX(path, sheet string) ([]core.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	} else if !lo.Contains(sheets, sheet) {
		return nil, fmt.Errorf("sheet %q not found (have %v)", sheet, sheets)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, nil
	}

	headers := normalizeHeaders(cells[0])
	rows := make([]core.RawRow, 0, len(cells)-1)
	for _, record := range cells[1:] {
		if blank(record) {
			continue
		}
		rows = append(rows, zipRow(headers, record))
	}
	return rows, nil
}
