// Package interaction holds the chart's runtime focus state and the rules
// that derive opacity and highlight markers from it.
package interaction

import (
	"fmt"
	"time"

	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/legend"
)

// None marks an unset category index.
const None = -1

// MarkerDuration is how long highlight markers take to grow to full size.
const MarkerDuration = 500 * time.Millisecond

type Mode int

const (
	Idle Mode = iota
	Pinned
	RangeSelected
)

func (m Mode) String() string {
	switch m {
	case Pinned:
		return "pinned"
	case RangeSelected:
		return "range"
	default:
		return "idle"
	}
}

type ClickAction string

const (
	ClickHighlight ClickAction = "highlight"
	ClickNone      ClickAction = "none"
)

func ParseClickAction(s string) (ClickAction, error) {
	switch ClickAction(s) {
	case "", ClickHighlight:
		return ClickHighlight, nil
	case ClickNone:
		return ClickNone, nil
	}
	return "", fmt.Errorf("invalid click action %q (want highlight or none)", s)
}

type Options struct {
	ClickAction        ClickAction
	FadeOpacity        float64
	HighlighterEnabled bool
}

// Hooks are called synchronously from Dispatch. Any of them may be nil.
type Hooks struct {
	OnHover  func(core.DataPoint)
	OnClick  func(core.DataPoint)
	OnCancel func(core.DataPoint)
}

// State is the mutable part of a chart. Pinned and Range stay set until a
// click on an empty part of the surface clears both.
type State struct {
	Level        float64
	DefaultLevel float64

	Pinned *core.PointRef
	Range  *legend.Bucket

	HoverPoint    *core.PointRef
	HoverCategory int
	HoverBucket   *legend.Bucket

	SideBar int
	Tooltip *core.PointRef

	MarkSince time.Time
}

func newState(level float64) State {
	return State{
		Level:         level,
		DefaultLevel:  level,
		HoverCategory: None,
		SideBar:       None,
	}
}
