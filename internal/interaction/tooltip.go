package interaction

import (
	"math"

	"github.com/janekbaraniewski/timeplot/internal/core"
)

// TooltipSizing describes how tooltip text is measured and padded.
type TooltipSizing struct {
	Measure     func(string) float64
	LineHeight  float64
	LineSpacing float64
	PadX, PadY  float64
	// Offset nudges the box away from the anchor.
	Offset float64
}

type Tooltip struct {
	Lines         []string
	X, Y          float64
	Width, Height float64
}

// TooltipLines lists the category label, the series key and the formatted value.
func TooltipLines(p core.DataPoint, category string, format func(float64) string) []string {
	return []string{category, p.SeriesKey, format(p.Value)}
}

// LayoutTooltip sizes the box to the widest line and places it right of and
// below the anchor, flipping to the other side of the dot when it would
// cross maxW or maxH.
func LayoutTooltip(lines []string, ax, ay, radius, maxW, maxH float64, sz TooltipSizing) Tooltip {
	spacing := sz.LineSpacing
	if spacing <= 0 {
		spacing = 1
	}
	widest := 0.0
	if sz.Measure != nil {
		for _, l := range lines {
			widest = math.Max(widest, sz.Measure(l))
		}
	}
	w := widest + sz.PadX
	h := spacing*sz.LineHeight*float64(len(lines)) + sz.PadY
	x, y := PlaceTooltip(ax, ay, w, h, radius, maxW, maxH)
	return Tooltip{
		Lines:  lines,
		X:      x + sz.Offset,
		Y:      y + sz.Offset,
		Width:  w,
		Height: h,
	}
}

func PlaceTooltip(ax, ay, w, h, radius, maxW, maxH float64) (x, y float64) {
	x, y = ax, ay
	if ax+w+radius > maxW {
		x = ax - w - 2*radius
	}
	if ay+h+radius > maxH {
		y = ay - h - 2*radius
	}
	return x, y
}
