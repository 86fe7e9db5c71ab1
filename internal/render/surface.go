// Package render lays out a dot plot and paints it onto a Surface.
package render

import "github.com/janekbaraniewski/timeplot/internal/interaction"

type Pos struct {
	X, Y float64
}

type Box struct {
	X, Y, W, H float64
}

func (b Box) Contains(p Pos) bool {
	return p.X >= b.X && p.X < b.X+b.W && p.Y >= b.Y && p.Y < b.Y+b.H
}

// Paint is a fill or stroke color with an opacity in [0, 1]. Shapes with
// zero opacity are invisible but still receive pointer events.
type Paint struct {
	Color   string
	Opacity float64
}

func Solid(color string) Paint { return Paint{Color: color, Opacity: 1} }

type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

type TextStyle struct {
	Color  string
	Anchor Anchor
	// Vertical draws the text bottom to top.
	Vertical bool
	Bold     bool
}

// Surface is a paint backend. Positions are top-left based; text is placed
// by the top of its line box. Shapes drawn later cover earlier ones and
// win pointer hit-tests, so the target passed with each shape is what a
// click there is delivered to. Decorations pass interaction.Surface().
type Surface interface {
	Size() (w, h float64)
	Rect(b Box, p Paint, t interaction.Target)
	Circle(c Pos, r float64, p Paint, t interaction.Target)
	Line(a, b Pos, p Paint)
	Text(at Pos, s string, st TextStyle, t interaction.Target)
}

// TextMetrics measures strings in the surface's font.
type TextMetrics interface {
	TextWidth(s string) float64
	LineHeight() float64
}
