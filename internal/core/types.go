package core

import (
	"time"

	"github.com/samber/lo"
)

// Cell is one (column, value) pair of a raw input row. Value holds a
// string, a number, a bool, a time.Time or nil.
type Cell struct {
	Column string
	Value  any
}

// RawRow keeps cells in source order; the first row defines the schema.
type RawRow []Cell

func (r RawRow) Get(column string) (any, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return nil, false
}

func (r RawRow) Columns() []string {
	return lo.Map(r, func(c Cell, _ int) string { return c.Column })
}

// Category is one x-axis position: a text label, or a date when the
// category column is date valued.
type Category struct {
	Label  string
	Time   time.Time
	IsDate bool
}

func (c Category) String() string { return c.Label }

type Schema struct {
	CategoryColumn string
	SeriesColumns  []string
}

type DataPoint struct {
	SeriesIndex   int
	Category      Category
	CategoryIndex int
	SeriesKey     string
	Value         float64
}

func (p DataPoint) Ref() PointRef {
	return PointRef{CategoryIndex: p.CategoryIndex, SeriesIndex: p.SeriesIndex}
}

// PointRef identifies a dot by its category row and series column.
type PointRef struct {
	CategoryIndex int
	SeriesIndex   int
}

type CategoryRecord struct {
	CategoryIndex int
	Category      Category
	Points        []DataPoint
	Average       float64
}

type Extent struct {
	Min   float64
	Max   float64
	Mean  float64
	Count int
}

type Chart struct {
	Schema  Schema
	Records []CategoryRecord
	Extent  Extent
}

func (c *Chart) Values() []float64 {
	if c == nil {
		return nil
	}
	out := make([]float64, 0, len(c.Records)*len(c.Schema.SeriesColumns))
	for _, rec := range c.Records {
		for _, p := range rec.Points {
			out = append(out, p.Value)
		}
	}
	return out
}

func (c *Chart) Point(ref PointRef) (DataPoint, bool) {
	if c == nil || ref.CategoryIndex < 0 || ref.CategoryIndex >= len(c.Records) {
		return DataPoint{}, false
	}
	points := c.Records[ref.CategoryIndex].Points
	if ref.SeriesIndex < 0 || ref.SeriesIndex >= len(points) {
		return DataPoint{}, false
	}
	return points[ref.SeriesIndex], true
}

func (c *Chart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

func (c *Chart) Empty() bool {
	return c.Len() == 0 || len(c.Schema.SeriesColumns) == 0
}
