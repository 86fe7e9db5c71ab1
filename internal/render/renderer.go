package render

import (
	"math"
	"time"

	"github.com/janekbaraniewski/timeplot/internal/axis"
	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/interaction"
	"github.com/janekbaraniewski/timeplot/internal/legend"
	"github.com/janekbaraniewski/timeplot/internal/palette"
	"github.com/janekbaraniewski/timeplot/internal/parsers"
	"github.com/janekbaraniewski/timeplot/internal/scale"
)

// Formatters turn values into label text. Nil fields fall back to plain
// number and date formatting.
type Formatters struct {
	// Category labels tooltips and x ticks.
	Category func(core.Category) string
	// XExtractor shortens text category labels on the x axis.
	XExtractor func(string) string
	YTick      func(v float64, isLast bool) string
	Tooltip    func(v float64) string
	Legend     legend.Formatter
	Slider     func(v float64) string
}

type Colors struct {
	Axis        string
	Grid        string
	Level       string
	Average     string
	Highlighter string
	Marker      string
	Legend      string
	Tooltip     string
	TooltipBox  string
	TooltipEdge string
	Muted       string
}

type Config struct {
	Margin Margin
	Units  Units

	Pos palette.Ramp
	Neg palette.Ramp

	IsDate     bool
	XInterval  string
	YTickCount int

	AverageEnabled     bool
	SliderEnabled      bool
	HighlighterEnabled bool

	Formatters Formatters
	Colors     Colors
}

// DefaultYTickCount is used when Config.YTickCount is not positive.
const DefaultYTickCount = 5

// Renderer holds everything that depends only on data and size. Colors and
// the legend depend on the level and are derived on every Draw.
type Renderer struct {
	cfg     Config
	chart   *core.Chart
	metrics TextMetrics
	layout  Layout
	xticks  []axis.XTick
	yticks  []float64
	slider  Slider
}

func New(cfg Config, chart *core.Chart, metrics TextMetrics, width, height float64) *Renderer {
	if cfg.YTickCount <= 0 {
		cfg.YTickCount = DefaultYTickCount
	}
	if cfg.Units.LineSpacing <= 0 {
		cfg.Units.LineSpacing = 1
	}
	if chart == nil {
		chart = &core.Chart{}
	}
	r := &Renderer{cfg: cfg, chart: chart, metrics: metrics}
	r.layout = NewLayout(width, height, cfg.Margin, cfg.Units, metrics.LineHeight(), chart.Len(), chart.Extent, cfg.SliderEnabled)
	r.xticks = axis.XTicks(chart.Records, axis.XOptions{
		IsDate:    cfg.IsDate,
		Interval:  cfg.XInterval,
		Label:     r.xLabel,
		DateLabel: r.dateTickLabel,
	}, r.layout.X, metrics.TextWidth)
	r.yticks = axis.YTicks(r.layout.Y.Domain(), cfg.YTickCount)
	r.slider = NewSlider(r.layout.Y.Domain(), scale.Range{
		Start: r.layout.Plot.Y + r.layout.Plot.H,
		End:   r.layout.Plot.Y,
	})
	return r
}

func (r *Renderer) Layout() Layout       { return r.layout }
func (r *Renderer) Slider() Slider       { return r.slider }
func (r *Renderer) XTicks() []axis.XTick { return r.xticks }
func (r *Renderer) YTicks() []float64    { return r.yticks }

// SliderBox is the pointer area of the level slider.
func (r *Renderer) SliderBox() Box {
	if !r.cfg.SliderEnabled {
		return Box{}
	}
	return Box{X: r.metrics.LineHeight(), Y: r.layout.Plot.Y, W: r.cfg.Units.SliderWidth, H: r.layout.Plot.H}
}

// ColorScales returns the positive and negative color scales for level.
func (r *Renderer) ColorScales(level float64) (pos, neg scale.Sequential) {
	e := r.chart.Extent
	return scale.ColorScales(level, e.Min, e.Max, r.cfg.Pos, r.cfg.Neg)
}

func (r *Renderer) Legend(level float64) legend.Legend {
	pos, neg := r.ColorScales(level)
	return legend.Build(neg, pos, level, r.chart.Extent.Max, r.chart.Values(), r.cfg.Formatters.Legend, r.metrics.TextWidth, r.cfg.Units.LegendPadding)
}

// LegendOrigin is the top-left corner of the legend, right aligned.
func (r *Renderer) LegendOrigin(l legend.Legend) Pos {
	return Pos{X: r.layout.Width - float64(len(l.Buckets))*l.Width, Y: 0}
}

func (r *Renderer) CategoryLabel(c core.Category) string {
	if f := r.cfg.Formatters.Category; f != nil {
		return f(c)
	}
	if c.IsDate {
		return parsers.FormatTime(parsers.DefaultDateFormat, c.Time)
	}
	return c.Label
}

func (r *Renderer) xLabel(c core.Category) string {
	if !c.IsDate && r.cfg.Formatters.XExtractor != nil {
		return r.cfg.Formatters.XExtractor(c.Label)
	}
	return r.CategoryLabel(c)
}

func (r *Renderer) dateTickLabel(t time.Time) string {
	return r.CategoryLabel(core.Category{Time: t, IsDate: true})
}

func (r *Renderer) yLabel(v float64, isLast bool) string {
	if f := r.cfg.Formatters.YTick; f != nil {
		return f(v, isLast)
	}
	return parsers.FormatNumber(v)
}

func (r *Renderer) valueLabel(v float64) string {
	if f := r.cfg.Formatters.Tooltip; f != nil {
		return f(v)
	}
	return parsers.FormatNumber(v)
}

func (r *Renderer) sliderLabel(v float64) string {
	if f := r.cfg.Formatters.Slider; f != nil {
		return f(v)
	}
	return parsers.FormatNumber(v)
}

// Draw paints one frame: axes, level line, side-bars, dots, highlight
// markers, averages, legend, slider and tooltip, in that order.
func (r *Renderer) Draw(s Surface, ctrl *interaction.Controller) {
	l := r.layout
	level := ctrl.Level()
	cl := r.cfg.Colors
	lh := r.metrics.LineHeight()

	s.Rect(Box{W: l.Width, H: l.Height}, Paint{}, interaction.Surface())

	if r.chart.Empty() {
		msg := "no data"
		s.Text(Pos{X: l.Width / 2, Y: l.Height / 2}, msg, TextStyle{Color: cl.Muted, Anchor: AnchorMiddle}, interaction.Surface())
		return
	}

	bottom := l.Height - l.Margin.Bottom
	for _, tk := range r.xticks {
		s.Line(Pos{X: tk.X, Y: l.Margin.Top}, Pos{X: tk.X, Y: bottom + r.cfg.Units.TickExtend}, Solid(cl.Grid))
		s.Text(Pos{X: tk.X, Y: bottom + r.cfg.Units.LabelOffset}, tk.Label, TextStyle{Color: cl.Axis}, interaction.Surface())
	}

	gridLeft := l.Margin.Left - r.cfg.Units.GridOverhang
	gridRight := l.Width - l.Margin.Right + r.cfg.Units.GridExtend
	for i, v := range r.yticks {
		y := l.Y.Scale(v)
		s.Line(Pos{X: gridLeft, Y: y}, Pos{X: gridRight, Y: y}, Solid(cl.Grid))
		label := r.yLabel(v, i == len(r.yticks)-1)
		s.Text(Pos{X: gridRight, Y: y - lh}, label, TextStyle{Color: cl.Axis}, interaction.Surface())
	}
	if r.cfg.SliderEnabled {
		y := l.Y.Scale(level)
		s.Line(Pos{X: gridLeft, Y: y}, Pos{X: gridRight, Y: y}, Solid(cl.Level))
	}

	for i := range r.chart.Records {
		op := 0.0
		if r.cfg.HighlighterEnabled && ctrl.SideBar() == i {
			op = 1
		}
		s.Rect(Box{X: l.X.Scale(i), Y: l.Plot.Y, W: 2 * l.Radius, H: l.Plot.H}, Paint{Color: cl.Highlighter, Opacity: op}, interaction.Category(i))
	}

	pos, neg := r.ColorScales(level)
	progress := ctrl.MarkerProgress()
	for _, rec := range r.chart.Records {
		for _, p := range rec.Points {
			c := l.DotCenter(rec.CategoryIndex, p.Value)
			fill := Paint{Color: scale.ColorOf(p.Value, level, pos, neg), Opacity: ctrl.DotOpacity(p)}
			s.Circle(c, l.Radius, fill, interaction.Dot(p.Ref()))
		}
	}
	for _, rec := range r.chart.Records {
		for _, p := range rec.Points {
			if !ctrl.Marked(p) {
				continue
			}
			c := l.DotCenter(rec.CategoryIndex, p.Value)
			s.Circle(c, l.Radius/2*progress, Solid(cl.Marker), interaction.Dot(p.Ref()))
		}
	}

	if r.cfg.AverageEnabled {
		hr := l.Radius / 2
		op := ctrl.AverageOpacity()
		for _, rec := range r.chart.Records {
			b := Box{X: l.X.Scale(rec.CategoryIndex) - l.Radius/4, Y: l.Y.Scale(rec.Average), W: 2*l.Radius + hr, H: hr}
			s.Rect(b, Paint{Color: cl.Average, Opacity: op}, interaction.Category(rec.CategoryIndex))
		}
	}

	r.drawLegend(s, r.Legend(level))
	if r.cfg.SliderEnabled {
		r.drawSlider(s, level)
	}
	r.drawTooltip(s, ctrl)
}

func (r *Renderer) drawLegend(s Surface, lg legend.Legend) {
	lh := r.metrics.LineHeight()
	origin := r.LegendOrigin(lg)
	for i, b := range lg.Buckets {
		x := origin.X + float64(i)*lg.Width
		t := interaction.Bucket(b)
		s.Rect(Box{X: x, Y: origin.Y, W: lg.Width, H: lh}, Solid(b.Color), t)
		s.Text(Pos{X: x, Y: origin.Y + lh}, lg.Text(i), TextStyle{Color: r.cfg.Colors.Legend}, t)
	}
}

func (r *Renderer) drawSlider(s Surface, level float64) {
	box := r.SliderBox()
	sl := r.slider
	cx := box.X + box.W/2
	s.Rect(box, Paint{}, interaction.Slider())
	s.Line(Pos{X: cx, Y: box.Y}, Pos{X: cx, Y: box.Y + box.H}, Solid(r.cfg.Colors.Grid))

	y := sl.Position(level)
	s.Circle(Pos{X: cx, Y: y}, box.W/4, Solid(r.cfg.Colors.Level), interaction.Slider())

	label := r.sliderLabel(level)
	half := r.metrics.TextWidth(label) / 2
	ty := y
	if ty+half > box.Y+box.H {
		ty = box.Y + box.H - half
	} else if ty-half <= box.Y {
		ty = box.Y + half
	}
	s.Text(Pos{X: 0, Y: ty}, label, TextStyle{Color: r.cfg.Colors.Axis, Anchor: AnchorMiddle, Vertical: true}, interaction.Slider())
}

// Tooltip lays out the tooltip of the hovered dot, if any.
func (r *Renderer) Tooltip(ctrl *interaction.Controller) (interaction.Tooltip, bool) {
	ref := ctrl.State().Tooltip
	if ref == nil {
		return interaction.Tooltip{}, false
	}
	p, ok := r.chart.Point(*ref)
	if !ok {
		return interaction.Tooltip{}, false
	}
	l := r.layout
	u := r.cfg.Units
	c := l.DotCenter(p.CategoryIndex, p.Value)
	lines := interaction.TooltipLines(p, r.CategoryLabel(p.Category), r.valueLabel)
	tip := interaction.LayoutTooltip(lines, c.X+2*l.Radius, c.Y+2*l.Radius, l.Radius, l.Width, l.Height, interaction.TooltipSizing{
		Measure:     r.metrics.TextWidth,
		LineHeight:  r.metrics.LineHeight(),
		LineSpacing: u.LineSpacing,
		PadX:        u.TooltipPadX,
		PadY:        u.TooltipPadY,
		Offset:      u.TooltipOffset,
	})
	// Keep the box on screen when the chart is too small for either side.
	tip.X = math.Max(0, math.Min(tip.X, l.Width-tip.Width))
	tip.Y = math.Max(0, math.Min(tip.Y, l.Height-tip.Height))
	return tip, true
}

func (r *Renderer) drawTooltip(s Surface, ctrl *interaction.Controller) {
	tip, ok := r.Tooltip(ctrl)
	if !ok {
		return
	}
	u := r.cfg.Units
	lh := r.metrics.LineHeight()
	s.Rect(Box{X: tip.X, Y: tip.Y, W: tip.Width, H: tip.Height}, Solid(r.cfg.Colors.TooltipBox), interaction.Surface())
	if edge := r.cfg.Colors.TooltipEdge; edge != "" {
		s.Line(Pos{X: tip.X, Y: tip.Y}, Pos{X: tip.X, Y: tip.Y + tip.Height}, Solid(edge))
	}
	for i, line := range tip.Lines {
		at := Pos{X: tip.X + u.TooltipPadX/2, Y: tip.Y + u.TooltipPadY/2 + float64(i)*u.LineSpacing*lh}
		s.Text(at, line, TextStyle{Color: r.cfg.Colors.Tooltip}, interaction.Surface())
	}
}
