package tui

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/janekbaraniewski/timeplot/internal/interaction"
	"github.com/janekbaraniewski/timeplot/internal/palette"
	"github.com/janekbaraniewski/timeplot/internal/render"
)

// Terminal cells are about twice as tall as they are wide.
const cellAspect = 2

// TerminalMargin is render.DefaultMargin in cells.
var TerminalMargin = render.Margin{Top: 0, Right: 8, Bottom: 2, Left: 2}

// TerminalUnits are render.Units in cells.
var TerminalUnits = render.Units{
	GridOverhang:  1,
	GridExtend:    1,
	TickExtend:    0,
	LabelOffset:   1,
	SliderWidth:   3,
	LegendPadding: 2,
	TooltipPadX:   2,
	TooltipPadY:   0,
	TooltipOffset: 1,
	LineSpacing:   1,
}

type cellMetrics struct{}

func (cellMetrics) TextWidth(s string) float64 { return float64(ansi.StringWidth(s)) }
func (cellMetrics) LineHeight() float64        { return 1 }

// cellSurface rasterizes shapes into an ntcharts canvas and remembers the
// topmost pointer target of every cell.
type cellSurface struct {
	canvas canvas.Model
	w, h   int
	bg     string
	fills  []string
	hits   []interaction.Target
}

func newCellSurface(w, h int, bg string) *cellSurface {
	w, h = max(w, 0), max(h, 0)
	s := &cellSurface{
		canvas: canvas.New(w, h),
		w:      w,
		h:      h,
		bg:     bg,
		fills:  make([]string, w*h),
		hits:   make([]interaction.Target, w*h),
	}
	for i := range s.hits {
		s.hits[i] = interaction.Surface()
		s.fills[i] = bg
	}
	blank := lipgloss.NewStyle().Background(lipgloss.Color(bg))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.canvas.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(' ', blank))
		}
	}
	return s
}

func (s *cellSurface) Size() (float64, float64) { return float64(s.w), float64(s.h) }

func (s *cellSurface) inside(x, y int) bool { return x >= 0 && y >= 0 && x < s.w && y < s.h }

// HitTest returns the target drawn last at cell (x, y).
func (s *cellSurface) HitTest(x, y int) interaction.Target {
	if !s.inside(x, y) {
		return interaction.Surface()
	}
	return s.hits[y*s.w+x]
}

func (s *cellSurface) View() string { return s.canvas.View() }

func (s *cellSurface) color(p render.Paint) (string, bool) {
	if p.Color == "" || p.Opacity <= 0 {
		return "", false
	}
	return palette.Fade(p.Color, s.bg, p.Opacity), true
}

func (s *cellSurface) fill(x, y int, color string) {
	if !s.inside(x, y) {
		return
	}
	s.fills[y*s.w+x] = color
	st := lipgloss.NewStyle().Background(lipgloss.Color(color))
	s.canvas.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(' ', st))
}

func (s *cellSurface) glyph(x, y int, r rune, fg string, bold bool) {
	if !s.inside(x, y) {
		return
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(s.fills[y*s.w+x])).
		Bold(bold)
	s.canvas.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(r, st))
}

func (s *cellSurface) mark(x, y int, t interaction.Target) {
	if s.inside(x, y) {
		s.hits[y*s.w+x] = t
	}
}

// span maps [a, a+n) onto whole cells; a non-empty extent covers at least one.
func span(a, n float64) (int, int) {
	lo := int(math.Round(a))
	hi := int(math.Round(a + n))
	if hi <= lo && n > 0 {
		hi = lo + 1
	}
	return lo, hi
}

func (s *cellSurface) Rect(b render.Box, p render.Paint, t interaction.Target) {
	x0, x1 := span(b.X, b.W)
	y0, y1 := span(b.Y, b.H)
	color, visible := s.color(p)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if visible {
				s.fill(x, y, color)
			}
			s.mark(x, y, t)
		}
	}
}

// Circle covers the cells whose centers fall inside the ellipse that looks
// round on screen. Dots narrower than two cells are drawn as a glyph.
func (s *cellSurface) Circle(c render.Pos, r float64, p render.Paint, t interaction.Target) {
	if r <= 0 {
		return
	}
	color, visible := s.color(p)
	cx, cy := int(math.Floor(c.X)), int(math.Floor(c.Y))
	if 2*r < 2 {
		if visible {
			g := '●'
			if 2*r < 1 {
				g = '•'
			}
			s.glyph(cx, cy, g, color, false)
			if s.inside(cx, cy) {
				s.fills[cy*s.w+cx] = color
			}
		}
		s.mark(cx, cy, t)
		return
	}
	ry := r / cellAspect
	for y := int(math.Floor(c.Y - ry)); y <= int(math.Ceil(c.Y+ry)); y++ {
		for x := int(math.Floor(c.X - r)); x <= int(math.Ceil(c.X+r)); x++ {
			dx := (float64(x) + 0.5 - c.X) / r
			dy := (float64(y) + 0.5 - c.Y) / math.Max(ry, 0.5)
			if dx*dx+dy*dy > 1 && !(x == cx && y == cy) {
				continue
			}
			if visible {
				s.fill(x, y, color)
			}
			s.mark(x, y, t)
		}
	}
}

func isLineRune(r rune) bool {
	switch r {
	case '─', '│', '┼':
		return true
	}
	return false
}

// Line draws axis aligned strokes only; it never covers text or dots.
func (s *cellSurface) Line(a, b render.Pos, p render.Paint) {
	color, visible := s.color(p)
	if !visible {
		return
	}
	horizontal := math.Abs(a.Y-b.Y) < math.Abs(a.X-b.X)
	if horizontal {
		y := int(math.Floor(a.Y))
		x0, x1 := int(math.Round(math.Min(a.X, b.X))), int(math.Round(math.Max(a.X, b.X)))
		for x := x0; x < x1; x++ {
			s.stroke(x, y, '─', color)
		}
		return
	}
	x := int(math.Floor(a.X))
	y0, y1 := int(math.Round(math.Min(a.Y, b.Y))), int(math.Round(math.Max(a.Y, b.Y)))
	for y := y0; y < y1; y++ {
		s.stroke(x, y, '│', color)
	}
}

func (s *cellSurface) stroke(x, y int, r rune, color string) {
	if !s.inside(x, y) {
		return
	}
	cur := s.canvas.Cell(canvas.Point{X: x, Y: y}).Rune
	switch {
	case cur == ' ' || cur == runes.Null:
	case isLineRune(cur):
		if cur != r {
			r = '┼'
		}
	default:
		return
	}
	s.glyph(x, y, r, color, false)
}

func (s *cellSurface) Text(at render.Pos, str string, st render.TextStyle, t interaction.Target) {
	width := ansi.StringWidth(str)
	if width == 0 {
		return
	}
	offset := 0.0
	switch st.Anchor {
	case render.AnchorMiddle:
		offset = float64(width) / 2
	case render.AnchorEnd:
		offset = float64(width)
	}

	if st.Vertical {
		x := int(math.Floor(at.X))
		y := int(math.Ceil(at.Y+offset)) - 1
		for _, r := range str {
			s.glyph(x, y, r, st.Color, st.Bold)
			s.mark(x, y, t)
			y--
		}
		return
	}

	x := int(math.Round(at.X - offset))
	y := int(math.Floor(at.Y))
	for _, r := range str {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		s.glyph(x, y, r, st.Color, st.Bold)
		s.mark(x, y, t)
		if w == 2 {
			s.mark(x+1, y, t)
		}
		x += w
	}
}
