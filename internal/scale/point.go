package scale

import "math"

// Point places count categories at evenly spaced positions: index 0 at
// Start, index count-1 at End. A single category sits in the middle.
type Point struct {
	count int
	r     Range
}

func NewPoint(count int, r Range) Point {
	if count < 0 {
		count = 0
	}
	return Point{count: count, r: r}
}

func (p Point) Count() int   { return p.count }
func (p Point) Range() Range { return p.r }

func (p Point) Step() float64 {
	if p.count <= 1 {
		return 0
	}
	return p.r.Len() / float64(p.count-1)
}

func (p Point) Scale(i int) float64 {
	if p.count <= 1 {
		return p.r.Mid()
	}
	return p.r.Start + p.Step()*float64(i)
}

// Index returns the category nearest to x, or -1 when there are none.
func (p Point) Index(x float64) int {
	if p.count == 0 {
		return -1
	}
	step := p.Step()
	if step == 0 {
		return 0
	}
	i := int(math.Round((x - p.r.Start) / step))
	return max(0, min(p.count-1, i))
}
