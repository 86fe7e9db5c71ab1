package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/janekbaraniewski/timeplot/internal/parsers"
)

var ErrInvalidTickField = errors.New("invalid tick field")

type BuildOptions struct {
	// CategoryColumn names the x column. Empty selects the first column.
	CategoryColumn string
	IsDate         bool
	DateFormat     string
}

// DeriveSchema splits the columns of the first row into the category column
// and the ordered series columns.
func DeriveSchema(first RawRow, categoryColumn string) (Schema, error) {
	columns := first.Columns()
	if categoryColumn == "" {
		if len(columns) == 0 {
			return Schema{}, nil
		}
		categoryColumn = columns[0]
	} else if !lo.Contains(columns, categoryColumn) {
		return Schema{}, fmt.Errorf("%w: column %q not in %v", ErrInvalidTickField, categoryColumn, columns)
	}
	return Schema{
		CategoryColumn: categoryColumn,
		SeriesColumns:  lo.Without(columns, categoryColumn),
	}, nil
}

// BuildChart turns raw rows into one record per row with a point per
// series column. Non-numeric values count as 0.
func BuildChart(rows []RawRow, opts BuildOptions) (*Chart, error) {
	if len(rows) == 0 {
		return &Chart{Schema: Schema{CategoryColumn: opts.CategoryColumn}}, nil
	}
	schema, err := DeriveSchema(rows[0], opts.CategoryColumn)
	if err != nil {
		return nil, err
	}

	chart := &Chart{
		Schema:  schema,
		Records: make([]CategoryRecord, 0, len(rows)),
	}
	for i, row := range rows {
		raw, _ := row.Get(schema.CategoryColumn)
		category, err := makeCategory(raw, opts)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		points := make([]DataPoint, len(schema.SeriesColumns))
		for j, col := range schema.SeriesColumns {
			v, _ := row.Get(col)
			points[j] = DataPoint{
				SeriesIndex:   j,
				Category:      category,
				CategoryIndex: i,
				SeriesKey:     col,
				Value:         parsers.CoerceFloat(v),
			}
		}
		chart.Records = append(chart.Records, CategoryRecord{
			CategoryIndex: i,
			Category:      category,
			Points:        points,
			Average:       average(points),
		})
	}
	chart.Extent = ComputeExtent(chart.Values())
	return chart, nil
}

func average(points []DataPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	return lo.SumBy(points, func(p DataPoint) float64 { return p.Value }) / float64(len(points))
}

// ComputeExtent returns min, max and mean of values; all zero when empty.
func ComputeExtent(values []float64) Extent {
	if len(values) == 0 {
		return Extent{}
	}
	return Extent{
		Min:   lo.Min(values),
		Max:   lo.Max(values),
		Mean:  lo.Sum(values) / float64(len(values)),
		Count: len(values),
	}
}

func makeCategory(raw any, opts BuildOptions) (Category, error) {
	label := categoryLabel(raw)
	if !opts.IsDate {
		return Category{Label: label}, nil
	}
	if t, ok := raw.(time.Time); ok {
		return Category{Label: parsers.FormatTime(opts.DateFormat, t), Time: t, IsDate: true}, nil
	}
	t, err := parsers.ParseTime(opts.DateFormat, label)
	if err != nil {
		return Category{}, err
	}
	return Category{Label: label, Time: t, IsDate: true}, nil
}

func categoryLabel(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return parsers.FormatNumber(v)
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
