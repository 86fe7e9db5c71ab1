package interaction

import (
	"math"
	"testing"
	"time"

	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/legend"
)

// testChart has two categories and two series:
//
//	c0: A=-1 B=2
//	c1: A=3  B=0
func testChart(t *testing.T) *core.Chart {
	t.Helper()
	rows := []core.RawRow{
		{{Column: "c", Value: "c0"}, {Column: "A", Value: -1.0}, {Column: "B", Value: 2.0}},
		{{Column: "c", Value: "c1"}, {Column: "A", Value: 3.0}, {Column: "B", Value: 0.0}},
	}
	chart, err := core.BuildChart(rows, core.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}
	return chart
}

type hookLog struct {
	hovers, clicks, cancels []core.DataPoint
}

func (h *hookLog) hooks() Hooks {
	return Hooks{
		OnHover:  func(p core.DataPoint) { h.hovers = append(h.hovers, p) },
		OnClick:  func(p core.DataPoint) { h.clicks = append(h.clicks, p) },
		OnCancel: func(p core.DataPoint) { h.cancels = append(h.cancels, p) },
	}
}

func newTestController(t *testing.T, opts Options) (*Controller, *hookLog, *core.Chart) {
	t.Helper()
	chart := testChart(t)
	log := &hookLog{}
	if opts.FadeOpacity == 0 {
		opts.FadeOpacity = 0.3
	}
	return NewController(chart, 0, opts, log.hooks()), log, chart
}

func pt(chart *core.Chart, cat, series int) core.DataPoint {
	p, _ := chart.Point(core.PointRef{CategoryIndex: cat, SeriesIndex: series})
	return p
}

func ref(cat, series int) core.PointRef {
	return core.PointRef{CategoryIndex: cat, SeriesIndex: series}
}

func TestClickSamePinnedPointTwice(t *testing.T) {
	c, log, _ := newTestController(t, Options{})

	c.Dispatch(Click{Target: Dot(ref(0, 1))})
	if c.Mode() != Pinned {
		t.Fatalf("mode = %v, want pinned", c.Mode())
	}
	c.Dispatch(Click{Target: Dot(ref(0, 1))})
	if c.Mode() != Idle {
		t.Fatalf("mode = %v, want idle", c.Mode())
	}
	if len(log.clicks) != 1 || len(log.cancels) != 1 {
		t.Fatalf("clicks = %d, cancels = %d; want 1 and 1", len(log.clicks), len(log.cancels))
	}
	if log.cancels[0].SeriesKey != "B" {
		t.Errorf("cancel point = %+v", log.cancels[0])
	}
}

func TestClickDifferentDotRepins(t *testing.T) {
	c, log, _ := newTestController(t, Options{})
	c.Dispatch(Click{Target: Dot(ref(0, 0))})
	c.Dispatch(Click{Target: Dot(ref(1, 1))})

	st := c.State()
	if st.Pinned == nil || *st.Pinned != ref(1, 1) {
		t.Fatalf("pinned = %v, want (1,1)", st.Pinned)
	}
	if len(log.clicks) != 2 || len(log.cancels) != 0 {
		t.Fatalf("clicks = %d, cancels = %d", len(log.clicks), len(log.cancels))
	}
	if log.clicks[1].Value != 0 || log.clicks[1].CategoryIndex != 1 {
		t.Errorf("second click point = %+v", log.clicks[1])
	}
}

func TestPinnedOpacity(t *testing.T) {
	c, _, chart := newTestController(t, Options{})
	c.Dispatch(Click{Target: Dot(ref(0, 0))})

	tests := []struct {
		name string
		p    core.DataPoint
		want float64
	}{
		{"pinned dot", pt(chart, 0, 0), 1},
		{"same category", pt(chart, 0, 1), 1},
		{"same series", pt(chart, 1, 0), 1},
		{"unrelated", pt(chart, 1, 1), 0.3},
	}
	for _, tt := range tests {
		if got := c.DotOpacity(tt.p); got != tt.want {
			t.Errorf("%s: opacity = %v, want %v", tt.name, got, tt.want)
		}
	}

	// Hover is suppressed while pinned.
	c.Dispatch(PointerEnter{Target: Dot(ref(1, 1))})
	if got := c.DotOpacity(pt(chart, 1, 1)); got != 0.3 {
		t.Errorf("hovered unrelated dot while pinned = %v, want 0.3", got)
	}
	if c.State().Tooltip == nil {
		t.Error("tooltip should still follow the pointer while pinned")
	}
}

func TestLegendRangeSelection(t *testing.T) {
	c, _, chart := newTestController(t, Options{})
	bucket := legend.Bucket{Floor: 0, Ceiling: 5}

	c.Dispatch(Click{Target: Bucket(bucket)})
	if c.Mode() != RangeSelected {
		t.Fatalf("mode = %v, want range", c.Mode())
	}
	if got := c.DotOpacity(pt(chart, 0, 0)); got != 0.3 {
		t.Errorf("value -1 opacity = %v, want 0.3", got)
	}
	if got := c.DotOpacity(pt(chart, 0, 1)); got != 1 {
		t.Errorf("value 2 opacity = %v, want 1", got)
	}

	other := legend.Bucket{Floor: -5, Ceiling: 0}
	c.Dispatch(Click{Target: Bucket(other)})
	if r, _ := c.Range(); !r.Same(other) {
		t.Errorf("range = %+v, want replaced by %+v", r, other)
	}
	c.Dispatch(Click{Target: Bucket(legend.Bucket{Floor: -5, Ceiling: 0, Label: "relabelled"})})
	if c.Mode() != Idle {
		t.Errorf("clicking the same bucket should clear the range, mode = %v", c.Mode())
	}
}

func TestTransientBucketHover(t *testing.T) {
	c, _, chart := newTestController(t, Options{})
	c.Dispatch(PointerEnter{Target: Bucket(legend.Bucket{Floor: 3, Ceiling: math.Inf(1)})})
	if got := c.DotOpacity(pt(chart, 1, 0)); got != 1 {
		t.Errorf("in-range opacity = %v", got)
	}
	if got := c.DotOpacity(pt(chart, 1, 1)); got != 0.3 {
		t.Errorf("out-of-range opacity = %v", got)
	}
	c.Dispatch(PointerLeave{Target: Bucket(legend.Bucket{Floor: 3, Ceiling: math.Inf(1)})})
	if got := c.DotOpacity(pt(chart, 1, 1)); got != 1 {
		t.Errorf("after leave opacity = %v", got)
	}
}

func TestPinTakesPrecedenceOverRange(t *testing.T) {
	c, _, chart := newTestController(t, Options{})
	c.Dispatch(Click{Target: Bucket(legend.Bucket{Floor: 3, Ceiling: 4})})
	c.Dispatch(Click{Target: Dot(ref(0, 0))})
	if c.Mode() != Pinned {
		t.Fatalf("mode = %v", c.Mode())
	}
	// (0,1) is outside the range but shares the pinned category.
	if got := c.DotOpacity(pt(chart, 0, 1)); got != 1 {
		t.Errorf("opacity = %v, want pin rule", got)
	}
	if _, ok := c.Range(); !ok {
		t.Error("range should remain set under a pin")
	}
}

func TestSurfaceClickResets(t *testing.T) {
	c, log, _ := newTestController(t, Options{})
	c.Dispatch(Click{Target: Bucket(legend.Bucket{Floor: 0, Ceiling: 5})})
	c.Dispatch(Click{Target: Dot(ref(1, 0))})
	c.Dispatch(Click{Target: Surface()})
	if c.Mode() != Idle {
		t.Fatalf("mode = %v, want idle", c.Mode())
	}
	if _, ok := c.Range(); ok {
		t.Error("range not cleared")
	}
	if len(log.cancels) != 0 {
		t.Errorf("surface reset fired %d cancels", len(log.cancels))
	}
}

func TestClickActionNone(t *testing.T) {
	c, log, _ := newTestController(t, Options{ClickAction: ClickNone, HighlighterEnabled: true})
	if c.Dispatch(Click{Target: Dot(ref(0, 0))}) {
		t.Error("dot click should be ignored")
	}
	c.Dispatch(Click{Target: Bucket(legend.Bucket{Floor: 0, Ceiling: 1})})
	if c.Mode() != Idle || len(log.clicks) != 0 {
		t.Fatalf("mode = %v, clicks = %d", c.Mode(), len(log.clicks))
	}
	if c.SideBar() != None {
		t.Errorf("side-bar = %d, want none", c.SideBar())
	}
	c.Dispatch(Click{Target: Category(1)})
	if c.SideBar() != 1 {
		t.Errorf("category click side-bar = %d, want 1", c.SideBar())
	}
}

func TestHoverInIdle(t *testing.T) {
	c, log, chart := newTestController(t, Options{HighlighterEnabled: true})

	c.Dispatch(PointerEnter{Target: Category(1)})
	if got := c.DotOpacity(pt(chart, 0, 0)); got != 0.3 {
		t.Errorf("other category opacity = %v", got)
	}
	if got := c.DotOpacity(pt(chart, 1, 0)); got != 1 {
		t.Errorf("hovered category opacity = %v", got)
	}
	if got := c.AverageOpacity(); got != 0.3 {
		t.Errorf("average opacity = %v, want faded", got)
	}
	if c.SideBar() != 1 {
		t.Errorf("side-bar = %d, want 1", c.SideBar())
	}

	c.Dispatch(PointerEnter{Target: Dot(ref(1, 1))})
	if len(log.hovers) != 1 {
		t.Fatalf("hovers = %d", len(log.hovers))
	}
	if got := c.DotOpacity(pt(chart, 0, 1)); got != 1 {
		t.Errorf("same series opacity = %v", got)
	}
	if got := c.DotOpacity(pt(chart, 0, 0)); got != 0.3 {
		t.Errorf("unrelated opacity = %v", got)
	}
	if !c.Marked(pt(chart, 0, 1)) || c.Marked(pt(chart, 1, 0)) {
		t.Error("markers should follow the hovered series")
	}

	c.Dispatch(PointerLeave{Target: Dot(ref(1, 1))})
	if c.State().Tooltip != nil {
		t.Error("tooltip should hide on leave")
	}
	c.Dispatch(PointerLeave{Target: Category(1)})
	if got := c.DotOpacity(pt(chart, 0, 0)); got != 1 {
		t.Errorf("restored opacity = %v", got)
	}
	if got := c.AverageOpacity(); got != 1 {
		t.Errorf("restored average opacity = %v", got)
	}

	c.Dispatch(PointerLeave{Target: Chart()})
	if c.SideBar() != None {
		t.Errorf("side-bar after chart leave = %d", c.SideBar())
	}
}

func TestSideBarStaysWhilePinned(t *testing.T) {
	c, _, _ := newTestController(t, Options{HighlighterEnabled: true})
	c.Dispatch(Click{Target: Dot(ref(1, 0))})
	c.Dispatch(PointerLeave{Target: Chart()})
	if c.SideBar() != 1 {
		t.Errorf("side-bar = %d, want 1", c.SideBar())
	}
}

func TestSlider(t *testing.T) {
	c, _, _ := newTestController(t, Options{})
	if !c.Dispatch(SliderInput{Value: 1.5}) {
		t.Fatal("slider input should report a change")
	}
	if c.Level() != 1.5 {
		t.Errorf("level = %v", c.Level())
	}
	if c.Dispatch(Click{Target: Slider()}) {
		t.Error("slider click should not reach the surface")
	}
	c.Dispatch(SliderReset{})
	if c.Level() != 0 {
		t.Errorf("level after reset = %v, want default 0", c.Level())
	}
}

func TestMarkerProgress(t *testing.T) {
	c, _, _ := newTestController(t, Options{FadeOpacity: 0.5})
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Dispatch(Click{Target: Dot(ref(0, 0))})
	if got := c.MarkerProgress(); got != 0 {
		t.Errorf("progress at start = %v", got)
	}
	if !c.Animating() {
		t.Error("expected animation in progress")
	}
	now = now.Add(250 * time.Millisecond)
	if got := c.MarkerProgress(); got != 0.5 {
		t.Errorf("progress at 250ms = %v", got)
	}
	now = now.Add(time.Second)
	if got := c.MarkerProgress(); got != 1 {
		t.Errorf("progress after duration = %v", got)
	}

	opaque, _, _ := newTestController(t, Options{FadeOpacity: 1})
	opaque.now = func() time.Time { return now }
	opaque.Dispatch(Click{Target: Dot(ref(0, 0))})
	if got := opaque.MarkerProgress(); got != 1 {
		t.Errorf("transition should be skipped at full opacity, got %v", got)
	}
}

func TestSetChartDropsStaleFocus(t *testing.T) {
	c, _, _ := newTestController(t, Options{})
	c.Dispatch(Click{Target: Dot(ref(1, 1))})
	smaller, err := core.BuildChart([]core.RawRow{{{Column: "c", Value: "x"}, {Column: "A", Value: 1}}}, core.BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	c.SetChart(smaller, 0)
	if c.Mode() != Idle {
		t.Errorf("mode after reload = %v, want idle", c.Mode())
	}
}

func TestLayoutTooltip(t *testing.T) {
	width := func(s string) float64 { return float64(len(s)) }
	sz := TooltipSizing{Measure: width, LineHeight: 1, LineSpacing: 1, PadX: 2, PadY: 0}
	lines := []string{"2021-01-01", "A", "3"}

	tip := LayoutTooltip(lines, 10, 5, 1, 100, 40, sz)
	if tip.Width != 12 || tip.Height != 3 {
		t.Fatalf("size = %vx%v, want 12x3", tip.Width, tip.Height)
	}
	if tip.X != 10 || tip.Y != 5 {
		t.Errorf("position = (%v,%v), want (10,5)", tip.X, tip.Y)
	}

	flipped := LayoutTooltip(lines, 95, 39, 1, 100, 40, sz)
	if flipped.X != 95-12-2 || flipped.Y != 39-3-2 {
		t.Errorf("flipped position = (%v,%v)", flipped.X, flipped.Y)
	}
}

func TestTooltipLines(t *testing.T) {
	p := core.DataPoint{SeriesKey: "A", Value: 2.5}
	got := TooltipLines(p, "Mon", func(v float64) string { return "v=2.5" })
	if len(got) != 3 || got[0] != "Mon" || got[1] != "A" || got[2] != "v=2.5" {
		t.Errorf("lines = %v", got)
	}
}
