package interaction

import (
	"math"
	"time"

	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/legend"
)

// Controller applies pointer and slider events to the chart state.
// It is not safe for concurrent use; callers serialize events.
type Controller struct {
	chart *core.Chart
	opts  Options
	hooks Hooks
	state State
	now   func() time.Time
}

func NewController(chart *core.Chart, level float64, opts Options, hooks Hooks) *Controller {
	if opts.ClickAction == "" {
		opts.ClickAction = ClickHighlight
	}
	opts.FadeOpacity = math.Max(0, math.Min(1, opts.FadeOpacity))
	return &Controller{
		chart: chart,
		opts:  opts,
		hooks: hooks,
		state: newState(level),
		now:   time.Now,
	}
}

func (c *Controller) State() State     { return c.state }
func (c *Controller) Options() Options { return c.opts }
func (c *Controller) Level() float64   { return c.state.Level }
func (c *Controller) SideBar() int     { return c.state.SideBar }

// SetChart swaps the data after a reload. Focus referring to rows that no
// longer exist is dropped; the level is kept.
func (c *Controller) SetChart(chart *core.Chart, defaultLevel float64) {
	c.chart = chart
	c.state.DefaultLevel = defaultLevel
	valid := func(ref *core.PointRef) *core.PointRef {
		if ref == nil {
			return nil
		}
		if _, ok := chart.Point(*ref); !ok {
			return nil
		}
		return ref
	}
	c.state.Pinned = valid(c.state.Pinned)
	c.state.HoverPoint = valid(c.state.HoverPoint)
	c.state.Tooltip = valid(c.state.Tooltip)
	if c.state.HoverCategory >= chart.Len() {
		c.state.HoverCategory = None
	}
	if c.state.SideBar >= chart.Len() {
		c.state.SideBar = None
	}
}

func (c *Controller) Mode() Mode {
	switch {
	case c.state.Pinned != nil:
		return Pinned
	case c.state.Range != nil:
		return RangeSelected
	default:
		return Idle
	}
}

func (c *Controller) clickable() bool { return c.opts.ClickAction != ClickNone }

// Dispatch applies ev and reports whether anything visible may have changed.
func (c *Controller) Dispatch(ev Event) bool {
	switch e := ev.(type) {
	case PointerEnter:
		return c.enter(e.Target)
	case PointerLeave:
		return c.leave(e.Target)
	case Click:
		return c.click(e.Target)
	case SliderInput:
		if e.Value == c.state.Level {
			return false
		}
		c.state.Level = e.Value
		return true
	case SliderReset:
		c.state.Level = c.state.DefaultLevel
		return true
	}
	return false
}

func (c *Controller) enter(t Target) bool {
	s := &c.state
	switch t.Kind {
	case TargetDot:
		p, ok := c.chart.Point(t.Point)
		if !ok {
			return false
		}
		ref := t.Point
		if c.Mode() == Idle {
			s.HoverPoint = &ref
			s.MarkSince = c.now()
		}
		s.Tooltip = &ref
		if c.hooks.OnHover != nil {
			c.hooks.OnHover(p)
		}
		return true
	case TargetCategory:
		if c.Mode() != Idle {
			return false
		}
		s.HoverCategory = t.Category
		if c.opts.HighlighterEnabled {
			s.SideBar = t.Category
		}
		return true
	case TargetBucket:
		if s.Range != nil {
			return false
		}
		b := t.Bucket
		s.HoverBucket = &b
		return true
	}
	return false
}

func (c *Controller) leave(t Target) bool {
	s := &c.state
	switch t.Kind {
	case TargetDot:
		s.HoverPoint = nil
		s.Tooltip = nil
		return true
	case TargetCategory:
		s.HoverCategory = None
		return true
	case TargetBucket:
		s.HoverBucket = nil
		return true
	case TargetChart:
		s.HoverPoint, s.Tooltip, s.HoverBucket = nil, nil, nil
		s.HoverCategory = None
		if s.Pinned == nil {
			s.SideBar = None
		}
		return true
	}
	return false
}

func (c *Controller) click(t Target) bool {
	s := &c.state
	switch t.Kind {
	case TargetDot:
		if !c.clickable() {
			return false
		}
		p, ok := c.chart.Point(t.Point)
		if !ok {
			return false
		}
		if s.Pinned != nil && *s.Pinned == t.Point {
			s.Pinned = nil
			s.HoverPoint = nil
			if c.hooks.OnCancel != nil {
				c.hooks.OnCancel(p)
			}
		} else {
			ref := t.Point
			s.Pinned = &ref
			s.MarkSince = c.now()
			if c.hooks.OnClick != nil {
				c.hooks.OnClick(p)
			}
		}
		if c.opts.HighlighterEnabled {
			s.SideBar = t.Point.CategoryIndex
		}
		return true
	case TargetCategory:
		if !c.opts.HighlighterEnabled {
			return false
		}
		s.SideBar = t.Category
		return true
	case TargetBucket:
		if !c.clickable() {
			return false
		}
		if s.Range != nil && s.Range.Same(t.Bucket) {
			s.Range = nil
		} else {
			b := t.Bucket
			s.Range = &b
		}
		s.HoverBucket = nil
		return true
	case TargetSurface:
		if !c.clickable() {
			return false
		}
		s.Pinned, s.Range, s.HoverPoint = nil, nil, nil
		return true
	}
	// Slider clicks stop here.
	return false
}

func related(a, b core.PointRef) bool {
	return a.CategoryIndex == b.CategoryIndex || a.SeriesIndex == b.SeriesIndex
}

// DotOpacity returns the opacity of p. The first matching rule wins: pin,
// selected range, hovered legend bucket, hovered dot, hovered category.
func (c *Controller) DotOpacity(p core.DataPoint) float64 {
	s := c.state
	fade := c.opts.FadeOpacity
	pick := func(keep bool) float64 {
		if keep {
			return 1
		}
		return fade
	}
	ref := p.Ref()
	switch {
	case s.Pinned != nil:
		return pick(related(*s.Pinned, ref))
	case s.Range != nil:
		return pick(s.Range.Contains(p.Value))
	case s.HoverBucket != nil:
		return pick(s.HoverBucket.Contains(p.Value))
	case s.HoverPoint != nil:
		return pick(related(*s.HoverPoint, ref))
	case s.HoverCategory != None:
		return pick(p.CategoryIndex == s.HoverCategory)
	}
	return 1
}

// AverageOpacity fades the average markers while a category is hovered.
func (c *Controller) AverageOpacity() float64 {
	if c.Mode() == Idle && c.state.HoverCategory != None {
		return c.opts.FadeOpacity
	}
	return 1
}

func (c *Controller) markedRef() *core.PointRef {
	if c.state.Pinned != nil {
		return c.state.Pinned
	}
	if c.Mode() == Idle {
		return c.state.HoverPoint
	}
	return nil
}

// Marked reports whether p carries a highlight marker: it shares the
// series of the pinned dot, or of the hovered dot when nothing is pinned.
func (c *Controller) Marked(p core.DataPoint) bool {
	ref := c.markedRef()
	return ref != nil && ref.SeriesIndex == p.SeriesIndex
}

// MarkerProgress is the grown fraction of highlight markers in [0, 1].
func (c *Controller) MarkerProgress() float64 {
	if c.opts.FadeOpacity >= 1 || c.state.MarkSince.IsZero() {
		return 1
	}
	elapsed := c.now().Sub(c.state.MarkSince)
	return math.Max(0, math.Min(1, float64(elapsed)/float64(MarkerDuration)))
}

// Animating reports whether markers are still growing.
func (c *Controller) Animating() bool {
	return c.markedRef() != nil && c.MarkerProgress() < 1
}

// Range returns the selected legend bucket, if any.
func (c *Controller) Range() (legend.Bucket, bool) {
	if c.state.Range == nil {
		return legend.Bucket{}, false
	}
	return *c.state.Range, true
}
