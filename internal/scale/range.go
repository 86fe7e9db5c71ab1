// Package scale maps data values to positions and colors.
package scale

// Range is an output interval. Start may be greater than End, as for a
// vertical axis whose origin sits at the bottom.
type Range struct {
	Start float64
	End   float64
}

func (r Range) Len() float64 { return r.End - r.Start }

func (r Range) Mid() float64 { return r.Start + r.Len()/2 }
