// Package legend groups color scale ticks into labelled value buckets.
package legend

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/janekbaraniewski/timeplot/internal/parsers"
	"github.com/janekbaraniewski/timeplot/internal/scale"
)

const stride = 3

// Formatter renders a bucket floor; isLast is set for the final bucket.
type Formatter func(v float64, isLast bool) string

// Bucket is a half-open value range [Floor, Ceiling) shown as one swatch.
type Bucket struct {
	Floor   float64
	Ceiling float64
	Color   string
	Label   string
}

func (b Bucket) Contains(v float64) bool {
	return v >= b.Floor && v < b.Ceiling
}

// Same compares bucket bounds, ignoring color and label.
func (b Bucket) Same(o Bucket) bool {
	return b.Floor == o.Floor && b.Ceiling == o.Ceiling
}

type Legend struct {
	Buckets []Bucket
	// Width is shared by every bucket.
	Width float64
}

// Text returns the label drawn for bucket i; the final one reads as "> floor".
func (l Legend) Text(i int) string {
	if i < 0 || i >= len(l.Buckets) {
		return ""
	}
	if i == len(l.Buckets)-1 {
		return ">" + l.Buckets[i].Label
	}
	return l.Buckets[i].Label
}

// Index returns the position of the bucket with the same bounds as b, or -1.
func (l Legend) Index(b Bucket) int {
	_, i, ok := lo.FindIndexOf(l.Buckets, func(x Bucket) bool { return x.Same(b) })
	if !ok {
		return -1
	}
	return i
}

// Build merges the tick values of both color branches into buckets of three
// ticks each and keeps only the buckets that hold at least one value.
func Build(neg, pos scale.Sequential, level, domainMax float64, values []float64, format Formatter, measure func(string) float64, padding float64) Legend {
	if format == nil {
		format = func(v float64, _ bool) string { return parsers.FormatNumber(v) }
	}
	ts := append(neg.Ticks(0), pos.Ticks(0)...)
	// The level tick appears in both branches; both copies count toward the strides.
	sort.Float64s(ts)
	if len(ts) == 0 {
		return Legend{Width: padding}
	}

	bucket := func(i int) Bucket {
		floor := ts[i]
		ceiling := math.Inf(1)
		if i+stride < len(ts) {
			ceiling = ts[i+stride]
		}
		color := pos.Color(floor)
		if floor < level {
			color = neg.Color(floor)
		}
		return Bucket{Floor: floor, Ceiling: ceiling, Color: color, Label: format(floor, false)}
	}

	var buckets []Bucket
	for i := 0; i < len(ts)-1; i += stride {
		buckets = append(buckets, bucket(i))
	}
	last := ts[len(ts)-1]
	if (len(buckets) == 0 || buckets[len(buckets)-1].Floor != last) && last <= domainMax {
		buckets = append(buckets, bucket(len(ts)-1))
	}
	if len(buckets) == 0 {
		return Legend{Width: padding}
	}
	final := &buckets[len(buckets)-1]
	final.Label = format(final.Floor, true)

	buckets = lo.Filter(buckets, func(b Bucket, _ int) bool {
		return lo.SomeBy(values, b.Contains)
	})

	width := 0.0
	if measure != nil {
		for i := range buckets {
			width = math.Max(width, measure(Legend{Buckets: buckets}.Text(i)))
		}
	}
	return Legend{Buckets: buckets, Width: width + padding}
}
