package render

import (
	"math"

	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/scale"
)

type Margin struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// DefaultMargin leaves room on the right for the value labels.
var DefaultMargin = Margin{Top: 25, Right: 60, Bottom: 25, Left: 25}

// Units holds backend dependent distances.
type Units struct {
	// GridOverhang extends y grid lines left of the plot.
	GridOverhang float64
	// GridExtend extends y grid lines right of the plot; labels start there.
	GridExtend float64
	// TickExtend extends x tick lines below the plot.
	TickExtend float64
	// LabelOffset is the distance from the plot bottom to the x labels.
	LabelOffset   float64
	SliderWidth   float64
	LegendPadding float64
	TooltipPadX   float64
	TooltipPadY   float64
	TooltipOffset float64
	LineSpacing   float64
}

// PixelUnits are the distances used on a vector surface.
var PixelUnits = Units{
	GridOverhang:  10,
	GridExtend:    25,
	TickExtend:    5,
	LabelOffset:   6,
	SliderWidth:   20,
	LegendPadding: 10,
	TooltipPadX:   15,
	TooltipPadY:   5,
	TooltipOffset: 3,
	LineSpacing:   1.1,
}

type Layout struct {
	Width, Height float64
	// Margin includes the legend band and the slider reserve.
	Margin       Margin
	Plot         Box
	Radius       float64
	LegendHeight float64
	X            scale.Point
	Y            scale.Linear
}

// NewLayout reserves two text lines above the plot for the legend and the
// slider width on the left, then sizes dots so that categories touch.
func NewLayout(width, height float64, base Margin, u Units, lineHeight float64, count int, ext core.Extent, slider bool) Layout {
	m := base
	legendHeight := 2 * lineHeight
	m.Top += legendHeight
	if slider {
		m.Left += u.SliderWidth
	}
	plot := Box{
		X: m.Left,
		Y: m.Top,
		W: math.Max(0, width-m.Left-m.Right),
		H: math.Max(0, height-m.Top-m.Bottom),
	}
	radius := 0.0
	if count > 0 {
		radius = plot.W / float64(count) / 2
	}
	return Layout{
		Width:        width,
		Height:       height,
		Margin:       m,
		Plot:         plot,
		Radius:       radius,
		LegendHeight: legendHeight,
		X:            scale.NewPoint(count, scale.Range{Start: m.Left, End: width - m.Right}),
		Y:            scale.NewValue(ext.Min, ext.Max, scale.Range{Start: height - m.Bottom, End: m.Top}),
	}
}

// DotCenter returns where the dot of v in category i is drawn.
func (l Layout) DotCenter(i int, v float64) Pos {
	return Pos{X: l.X.Scale(i) + l.Radius, Y: l.Y.Scale(v)}
}

// Slider maps the level range onto a vertical track.
type Slider struct {
	Min, Max, Step float64
	Track          scale.Range
}

// NewSlider widens the value domain by one percent on both ends.
func NewSlider(domain [2]float64, track scale.Range) Slider {
	d0, d1 := domain[0], domain[1]
	s := Slider{Track: track}
	if d0 > 0 {
		s.Min = d0 / 1.01
	} else {
		s.Min = d0 * 1.01
	}
	if d1 >= 0 {
		s.Max = d1 * 1.01
	} else {
		s.Max = d1 / 1.01
	}
	s.Step = math.Abs(s.Min) / 100
	if s.Step == 0 {
		s.Step = (s.Max - s.Min) / 100
	}
	if s.Step == 0 {
		s.Step = 1
	}
	return s
}

func (s Slider) Clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Position returns the track coordinate of v.
func (s Slider) Position(v float64) float64 {
	span := s.Max - s.Min
	if span == 0 {
		return s.Track.Mid()
	}
	return s.Track.Start + (s.Clamp(v)-s.Min)/span*s.Track.Len()
}

// ValueAt inverts Position and snaps the result to Step.
func (s Slider) ValueAt(pos float64) float64 {
	if s.Track.Len() == 0 {
		return s.Min
	}
	v := s.Min + (pos-s.Track.Start)/s.Track.Len()*(s.Max-s.Min)
	v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	return s.Clamp(v)
}

// Nudge moves v by n steps.
func (s Slider) Nudge(v float64, n int) float64 {
	return s.Clamp(v + float64(n)*s.Step)
}
