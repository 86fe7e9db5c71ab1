package scale

import (
	"math"
	"strconv"
	"strings"
)

const maxPrecision = 12

// NiceDomain widens [min, max] outward to friendly bounds. Integral maxima
// floor/ceil both bounds to integers; fractional maxima move each bound
// past the next multiple of 5 at the precision derived from max.
// The result always satisfies lo <= min and hi >= max.
func NiceDomain(min, max float64) (lo, hi float64) {
	if min > max {
		min, max = max, min
	}
	p := Precision(max)
	return niceFloor(min, p), niceCeil(max, p)
}

// Precision returns the decimal place used for nice rounding: 0 for
// integers, 1 when the fraction has no leading zeros, otherwise the number
// of leading zeros plus two.
func Precision(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == math.Trunc(v) {
		return 0
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	_, frac, ok := strings.Cut(s, ".")
	if !ok {
		return 0
	}
	zeros := len(frac) - len(strings.TrimLeft(frac, "0"))
	if zeros == 0 {
		return 1
	}
	return min(zeros+2, maxPrecision)
}

func niceCeil(v float64, p int) float64 {
	if p == 0 {
		return math.Ceil(v)
	}
	pow := math.Pow(10, float64(p))
	k := math.Ceil(v*pow - 1e-9)
	k = math.Floor(k/5)*5 + 5
	return k / pow
}

func niceFloor(v float64, p int) float64 {
	return -niceCeil(-v, p)
}
