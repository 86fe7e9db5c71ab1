package interaction

import (
	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/legend"
)

type TargetKind int

const (
	// TargetSurface is the empty chart background.
	TargetSurface TargetKind = iota
	TargetDot
	TargetCategory
	TargetBucket
	TargetSlider
	// TargetChart is the chart as a whole; leaving it hides the side-bar.
	TargetChart
)

type Target struct {
	Kind     TargetKind
	Point    core.PointRef
	Category int
	Bucket   legend.Bucket
}

func Surface() Target               { return Target{Kind: TargetSurface, Category: None} }
func Chart() Target                 { return Target{Kind: TargetChart, Category: None} }
func Slider() Target                { return Target{Kind: TargetSlider, Category: None} }
func Category(i int) Target         { return Target{Kind: TargetCategory, Category: i} }
func Bucket(b legend.Bucket) Target { return Target{Kind: TargetBucket, Category: None, Bucket: b} }
func Dot(ref core.PointRef) Target {
	return Target{Kind: TargetDot, Point: ref, Category: ref.CategoryIndex}
}

// Event is one input delivered to Controller.Dispatch.
type Event interface {
	event()
}

type PointerEnter struct{ Target Target }
type PointerLeave struct{ Target Target }

// Click is delivered only to the topmost target under the pointer.
type Click struct{ Target Target }

type SliderInput struct{ Value float64 }
type SliderReset struct{}

func (PointerEnter) event() {}
func (PointerLeave) event() {}
func (Click) event()        {}
func (SliderInput) event()  {}
func (SliderReset) event()  {}
