package scale

import (
	"math"

	"github.com/janekbaraniewski/timeplot/internal/palette"
)

// Sequential maps a numeric domain through a color ramp.
type Sequential struct {
	d0, d1 float64
	ramp   palette.Ramp
}

func NewSequential(domain [2]float64, ramp palette.Ramp) Sequential {
	return Sequential{d0: domain[0], d1: domain[1], ramp: ramp}
}

func (s Sequential) Domain() [2]float64 { return [2]float64{s.d0, s.d1} }

// T returns the normalized position of v in the domain, 0.5 for a
// zero-extent domain.
func (s Sequential) T(v float64) float64 {
	if s.d0 == s.d1 {
		return 0.5
	}
	t := (v - s.d0) / (s.d1 - s.d0)
	if math.IsNaN(t) {
		return 0
	}
	return t
}

func (s Sequential) Color(v float64) string {
	if s.ramp == nil {
		return ""
	}
	return s.ramp(s.T(v))
}

// Ticks proposes n representative domain values; n <= 0 means the default.
func (s Sequential) Ticks(n int) []float64 {
	if n <= 0 {
		n = DefaultTickCount
	}
	return Ticks(s.d0, s.d1, n)
}

// ColorScales builds the positive branch over [level, max] and the
// negative branch over [level, min]. Rebuild them whenever level moves.
func ColorScales(level, min, max float64, pos, neg palette.Ramp) (Sequential, Sequential) {
	return NewSequential([2]float64{level, max}, pos), NewSequential([2]float64{level, min}, neg)
}

// ColorOf colors v with the positive scale at or above level, else the negative one.
func ColorOf(v, level float64, pos, neg Sequential) string {
	if v >= level {
		return pos.Color(v)
	}
	return neg.Color(v)
}
