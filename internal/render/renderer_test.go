package render

import (
	"math"
	"strings"
	"testing"

	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/interaction"
	"github.com/janekbaraniewski/timeplot/internal/palette"
	"github.com/janekbaraniewski/timeplot/internal/scale"
)

func scaleRange(start, end float64) scale.Range { return scale.Range{Start: start, End: end} }

type fixedMetrics struct{}

func (fixedMetrics) TextWidth(s string) float64 { return 6 * float64(len([]rune(s))) }
func (fixedMetrics) LineHeight() float64        { return 10 }

type shape struct {
	kind   string
	box    Box
	center Pos
	radius float64
	paint  Paint
	text   string
	target interaction.Target
}

type recordingSurface struct {
	w, h   float64
	shapes []shape
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }

func (s *recordingSurface) Rect(b Box, p Paint, t interaction.Target) {
	s.shapes = append(s.shapes, shape{kind: "rect", box: b, paint: p, target: t})
}

func (s *recordingSurface) Circle(c Pos, r float64, p Paint, t interaction.Target) {
	s.shapes = append(s.shapes, shape{kind: "circle", center: c, radius: r, paint: p, target: t})
}

func (s *recordingSurface) Line(a, b Pos, p Paint) {
	s.shapes = append(s.shapes, shape{kind: "line", box: Box{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}, paint: p})
}

func (s *recordingSurface) Text(at Pos, text string, _ TextStyle, t interaction.Target) {
	s.shapes = append(s.shapes, shape{kind: "text", center: at, text: text, target: t})
}

func (s *recordingSurface) find(kind string, targetKind interaction.TargetKind) []shape {
	var out []shape
	for _, sh := range s.shapes {
		if sh.kind == kind && sh.target.Kind == targetKind {
			out = append(out, sh)
		}
	}
	return out
}

func (s *recordingSurface) texts() []string {
	var out []string
	for _, sh := range s.shapes {
		if sh.kind == "text" {
			out = append(out, sh.text)
		}
	}
	return out
}

func exampleChart(t *testing.T) *core.Chart {
	t.Helper()
	rows := []core.RawRow{
		{{Column: "date", Value: "2021-01-01"}, {Column: "A", Value: 1.0}, {Column: "B", Value: -2.0}},
		{{Column: "date", Value: "2021-01-02"}, {Column: "A", Value: 3.0}, {Column: "B", Value: 0.0}},
	}
	chart, err := core.BuildChart(rows, core.BuildOptions{CategoryColumn: "date", IsDate: true})
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}
	return chart
}

func testConfig(t *testing.T) Config {
	t.Helper()
	reds, err := palette.Named("reds")
	if err != nil {
		t.Fatal(err)
	}
	blues, err := palette.Named("blues")
	if err != nil {
		t.Fatal(err)
	}
	return Config{
		Margin:             DefaultMargin,
		Units:              PixelUnits,
		Pos:                reds,
		Neg:                blues,
		IsDate:             true,
		XInterval:          "auto",
		AverageEnabled:     true,
		SliderEnabled:      true,
		HighlighterEnabled: true,
		Colors:             Colors{Marker: "#000000", Level: "#ff0000"},
	}
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(400, 300, DefaultMargin, PixelUnits, 10, 5, core.Extent{Min: -2, Max: 3}, true)
	want := Margin{Top: 45, Right: 60, Bottom: 25, Left: 45}
	if l.Margin != want {
		t.Fatalf("margin = %+v, want %+v", l.Margin, want)
	}
	if l.Plot.W != 295 || l.Plot.H != 230 {
		t.Errorf("plot = %+v", l.Plot)
	}
	if l.Radius != 29.5 {
		t.Errorf("radius = %v, want 29.5", l.Radius)
	}
	if got := l.Y.Scale(3); got != 45 {
		t.Errorf("Y(max) = %v, want plot top 45", got)
	}
	if got := l.Y.Scale(-2); got != 275 {
		t.Errorf("Y(min) = %v, want plot bottom 275", got)
	}

	noSlider := NewLayout(400, 300, DefaultMargin, PixelUnits, 10, 0, core.Extent{}, false)
	if noSlider.Margin.Left != 25 || noSlider.Radius != 0 {
		t.Errorf("layout without slider = %+v", noSlider)
	}
}

func TestNewSlider(t *testing.T) {
	tests := []struct {
		name          string
		domain        [2]float64
		min, max, stp float64
	}{
		{"mixed", [2]float64{-2, 3}, -2.02, 3.03, 0.0202},
		{"positive", [2]float64{2, 4}, 2 / 1.01, 4.04, 2 / 1.01 / 100},
		{"negative", [2]float64{-5, -1}, -5.05, -1 / 1.01, 0.0505},
		{"zero min", [2]float64{0, 10}, 0, 10.1, 0.101},
		{"flat zero", [2]float64{0, 0}, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider(tt.domain, scaleRange(100, 0))
			if math.Abs(s.Min-tt.min) > 1e-9 || math.Abs(s.Max-tt.max) > 1e-9 || math.Abs(s.Step-tt.stp) > 1e-9 {
				t.Errorf("slider = %+v, want min %v max %v step %v", s, tt.min, tt.max, tt.stp)
			}
		})
	}
}

func TestSliderMapping(t *testing.T) {
	s := NewSlider([2]float64{0, 100}, scaleRange(200, 0))
	if got := s.Position(0); got != 200 {
		t.Errorf("Position(min) = %v", got)
	}
	if got := s.Position(1000); got != 0 {
		t.Errorf("Position above max = %v, want clamped to top", got)
	}
	v := s.ValueAt(100)
	if math.Abs(v-50.5) > 1e-9 {
		t.Errorf("ValueAt(mid) = %v, want 50.5", v)
	}
	if got := s.Nudge(100, 1000); got != s.Max {
		t.Errorf("Nudge past max = %v", got)
	}
}

func TestDrawDots(t *testing.T) {
	chart := exampleChart(t)
	r := New(testConfig(t), chart, fixedMetrics{}, 400, 300)
	ctrl := interaction.NewController(chart, 0, interaction.Options{FadeOpacity: 0.3, HighlighterEnabled: true}, interaction.Hooks{})
	s := &recordingSurface{w: 400, h: 300}
	r.Draw(s, ctrl)

	dots := s.find("circle", interaction.TargetDot)
	if len(dots) != 4 {
		t.Fatalf("dots = %d, want 4", len(dots))
	}
	reds, _ := palette.Named("reds")
	blues, _ := palette.Named("blues")
	for _, d := range dots {
		p, _ := chart.Point(d.target.Point)
		switch p.Value {
		case 3:
			if d.paint.Color != reds(1) {
				t.Errorf("max dot color = %s, want top of positive ramp", d.paint.Color)
			}
		case -2:
			if d.paint.Color != blues(1) {
				t.Errorf("min dot color = %s, want top of negative ramp", d.paint.Color)
			}
		}
		if d.paint.Opacity != 1 {
			t.Errorf("idle opacity = %v", d.paint.Opacity)
		}
	}

	if bars := s.find("rect", interaction.TargetCategory); len(bars) != 4 {
		t.Errorf("category rects = %d, want 2 side-bars and 2 averages", len(bars))
	}
	if len(s.find("rect", interaction.TargetBucket)) == 0 {
		t.Error("legend not drawn")
	}
	if len(s.find("rect", interaction.TargetSlider)) != 1 {
		t.Error("slider not drawn")
	}
	texts := strings.Join(s.texts(), "|")
	if !strings.Contains(texts, "2021-01-01") {
		t.Errorf("x labels missing: %s", texts)
	}
	if !strings.Contains(texts, ">3") {
		t.Errorf("final legend label missing: %s", texts)
	}
}

func TestDrawRecolorsOnLevelChange(t *testing.T) {
	chart := exampleChart(t)
	r := New(testConfig(t), chart, fixedMetrics{}, 400, 300)
	ctrl := interaction.NewController(chart, 0, interaction.Options{FadeOpacity: 0.3}, interaction.Hooks{})

	colorOf := func() string {
		s := &recordingSurface{w: 400, h: 300}
		r.Draw(s, ctrl)
		for _, d := range s.find("circle", interaction.TargetDot) {
			if p, _ := chart.Point(d.target.Point); p.Value == 1 {
				return d.paint.Color
			}
		}
		return ""
	}
	before := colorOf()
	ctrl.Dispatch(interaction.SliderInput{Value: 2})
	after := colorOf()
	if before == after {
		t.Errorf("dot color did not change with the level: %s", before)
	}
	_, neg := r.ColorScales(2)
	if after != neg.Color(1) {
		t.Errorf("value below level = %s, want negative scale color %s", after, neg.Color(1))
	}
}

func TestDrawPinnedAndTooltip(t *testing.T) {
	chart := exampleChart(t)
	cfg := testConfig(t)
	cfg.Colors.TooltipEdge = "#123456"
	r := New(cfg, chart, fixedMetrics{}, 400, 300)
	ctrl := interaction.NewController(chart, 0, interaction.Options{FadeOpacity: 1}, interaction.Hooks{})
	ref := core.PointRef{CategoryIndex: 0, SeriesIndex: 0}
	ctrl.Dispatch(interaction.Click{Target: interaction.Dot(ref)})
	ctrl.Dispatch(interaction.PointerEnter{Target: interaction.Dot(ref)})

	s := &recordingSurface{w: 400, h: 300}
	r.Draw(s, ctrl)
	markers := 0
	for _, d := range s.find("circle", interaction.TargetDot) {
		if d.paint.Color == "#000000" {
			markers++
			if d.radius != r.Layout().Radius/2 {
				t.Errorf("marker radius = %v, want half the dot radius", d.radius)
			}
		}
	}
	if markers != 2 {
		t.Errorf("markers = %d, want one per category of the pinned series", markers)
	}

	tip, ok := r.Tooltip(ctrl)
	if !ok {
		t.Fatal("tooltip missing")
	}
	if len(tip.Lines) != 3 || tip.Lines[0] != "2021-01-01" || tip.Lines[1] != "A" || tip.Lines[2] != "1" {
		t.Errorf("tooltip lines = %v", tip.Lines)
	}
	if tip.Width != 6*10+PixelUnits.TooltipPadX {
		t.Errorf("tooltip width = %v", tip.Width)
	}
	if tip.X+tip.Width > 400 || tip.Y+tip.Height > 300 {
		t.Errorf("tooltip overflows: %+v", tip)
	}
	edges := 0
	for _, sh := range s.shapes {
		if sh.kind == "line" && sh.paint.Color == "#123456" {
			edges++
			if sh.box.X != tip.X || sh.box.Y != tip.Y || sh.box.H != tip.Height {
				t.Errorf("tooltip edge = %+v, want left side of %+v", sh.box, tip)
			}
		}
	}
	if edges != 1 {
		t.Errorf("tooltip edges = %d, want 1", edges)
	}
}

func TestDrawEmpty(t *testing.T) {
	chart, _ := core.BuildChart(nil, core.BuildOptions{})
	r := New(testConfig(t), chart, fixedMetrics{}, 200, 100)
	ctrl := interaction.NewController(chart, 0, interaction.Options{}, interaction.Hooks{})
	s := &recordingSurface{w: 200, h: 100}
	r.Draw(s, ctrl)
	if texts := s.texts(); len(texts) != 1 || texts[0] != "no data" {
		t.Errorf("texts = %v", texts)
	}
}
