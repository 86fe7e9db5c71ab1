// Package axis plans tick positions for the category and value axes.
package axis

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/scale"
)

const (
	IntervalAuto   = "auto"
	IntervalMonth  = "month"
	IntervalWeek   = "week"
	IntervalBiweek = "biweek"
)

var dateIntervals = []string{IntervalMonth, IntervalWeek, IntervalBiweek}

// IsDateInterval reports whether interval enumerates calendar boundaries.
func IsDateInterval(interval string) bool {
	return lo.Contains(dateIntervals, strings.ToLower(interval))
}

type XOptions struct {
	IsDate   bool
	Interval string
	// Label renders a category. Nil uses the category's own label.
	Label func(core.Category) string
	// DateLabel renders a calendar boundary in date mode. Nil uses ISO dates.
	DateLabel func(time.Time) string
}

type XTick struct {
	Index int
	X     float64
	Label string
}

// XTicks chooses which categories get a labelled tick. Date-valued
// categories with a calendar interval get one tick per boundary; anything
// else gets every Nth category, where "auto" picks N so labels do not overlap.
func XTicks(records []core.CategoryRecord, opts XOptions, sc scale.Point, measure func(string) float64) []XTick {
	if len(records) == 0 {
		return nil
	}
	interval := strings.ToLower(strings.TrimSpace(opts.Interval))
	if opts.IsDate && IsDateInterval(interval) {
		return dateTicks(records, interval, opts, sc)
	}

	label := opts.Label
	if label == nil {
		label = func(c core.Category) string { return c.Label }
	}
	labels := lo.Map(records, func(r core.CategoryRecord, _ int) string { return label(r.Category) })

	n := 0
	if v, err := strconv.Atoi(interval); err == nil && v > 0 {
		n = v
	} else {
		n = AutoInterval(labels, sc.Range(), measure)
	}

	var out []XTick
	for i := 0; i < len(records); i += n {
		out = append(out, XTick{Index: i, X: sc.Scale(i), Label: labels[i]})
	}
	return out
}

// AutoInterval returns how many categories one label needs so that labels
// of the widest size, spaced two widths apart, fit into r.
func AutoInterval(labels []string, r scale.Range, measure func(string) float64) int {
	if len(labels) == 0 || measure == nil {
		return 1
	}
	widest := lo.Max(lo.Map(labels, func(s string, _ int) float64 { return measure(s) }))
	if widest <= 0 {
		return 1
	}
	fit := math.Floor(math.Abs(r.Len()) / widest / 2)
	if fit < 1 {
		fit = 1
	}
	return max(1, int(math.Ceil(float64(len(labels))/fit)))
}

func dateTicks(records []core.CategoryRecord, interval string, opts XOptions, sc scale.Point) []XTick {
	first := records[0].Category.Time
	last := records[len(records)-1].Category.Time
	label := opts.DateLabel
	if label == nil {
		label = func(t time.Time) string { return t.Format(time.DateOnly) }
	}

	var out []XTick
	seen := map[int]bool{}
	for _, boundary := range CalendarRange(interval, first, last) {
		idx := sort.Search(len(records), func(i int) bool {
			return !records[i].Category.Time.Before(boundary)
		})
		if idx >= len(records) || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, XTick{Index: idx, X: sc.Scale(idx), Label: label(boundary)})
	}
	return out
}

// epochSunday anchors biweekly boundaries: weeks are counted from the
// Sunday before the Unix epoch and only even weeks are kept.
var epochSunday = time.Date(1969, time.December, 28, 0, 0, 0, 0, time.UTC)

// CalendarRange lists every boundary of interval in [start, stop].
func CalendarRange(interval string, start, stop time.Time) []time.Time {
	if stop.Before(start) {
		return nil
	}
	loc := start.Location()
	var (
		cur  time.Time
		next func(time.Time) time.Time
	)
	switch interval {
	case IntervalMonth:
		cur = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc)
		if cur.Before(start) {
			cur = cur.AddDate(0, 1, 0)
		}
		next = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	case IntervalWeek, IntervalBiweek:
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		cur = day.AddDate(0, 0, -int(day.Weekday()))
		if cur.Before(start) {
			cur = cur.AddDate(0, 0, 7)
		}
		step := 7
		if interval == IntervalBiweek {
			step = 14
			if weeksSinceEpoch(cur)%2 != 0 {
				cur = cur.AddDate(0, 0, 7)
			}
		}
		next = func(t time.Time) time.Time { return t.AddDate(0, 0, step) }
	default:
		return nil
	}

	var out []time.Time
	for ; !cur.After(stop); cur = next(cur) {
		out = append(out, cur)
	}
	return out
}

func weeksSinceEpoch(t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(math.Floor(day.Sub(epochSunday).Hours() / 24 / 7))
}
