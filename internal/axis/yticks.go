package axis

import "math"

// YTicks steps from domain[0] to domain[1] in num equal steps. The exact
// maximum is always the last tick.
func YTicks(domain [2]float64, num int) []float64 {
	lo, hi := domain[0], domain[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	if num <= 0 || lo == hi {
		if lo == hi {
			return []float64{lo}
		}
		return []float64{lo, hi}
	}
	step := math.Abs(hi-lo) / float64(num)
	eps := step * 1e-9
	out := make([]float64, 0, num+1)
	for i := 0; i <= num; i++ {
		v := lo + float64(i)*step
		if v > hi+eps {
			break
		}
		if math.Abs(v-hi) <= eps {
			v = hi
		}
		out = append(out, v)
	}
	if out[len(out)-1] != hi {
		out = append(out, hi)
	}
	return out
}
