package scale

// Linear maps a continuous domain onto a Range.
type Linear struct {
	d0, d1 float64
	r      Range
}

// NewValue builds the value axis scale: the domain [min, max] is widened
// with NiceDomain and mapped onto r, which is usually [bottom, top].
func NewValue(min, max float64, r Range) Linear {
	lo, hi := NiceDomain(min, max)
	return NewLinear(lo, hi, r)
}

func NewLinear(d0, d1 float64, r Range) Linear {
	return Linear{d0: d0, d1: d1, r: r}
}

func (l Linear) Domain() [2]float64 { return [2]float64{l.d0, l.d1} }
func (l Linear) Range() Range       { return l.r }

// Scale maps v into the range. A zero-extent domain maps to the middle.
func (l Linear) Scale(v float64) float64 {
	if l.d0 == l.d1 {
		return l.r.Mid()
	}
	return l.r.Start + (v-l.d0)/(l.d1-l.d0)*l.r.Len()
}

func (l Linear) Invert(y float64) float64 {
	if l.r.Len() == 0 {
		return l.d0
	}
	return l.d0 + (y-l.r.Start)/l.r.Len()*(l.d1-l.d0)
}
