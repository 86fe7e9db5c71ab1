package parsers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

func ParseFloat(val string) *float64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &f
}

// CoerceFloat converts a cell value to a number. Anything that is not a
// plain finite number becomes 0, including "1,200".
func CoerceFloat(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		p := ParseFloat(x.String())
		if p == nil {
			return 0
		}
		f = *p
	case []byte:
		return CoerceFloat(string(x))
	case string:
		p := ParseFloat(x)
		if p == nil {
			return 0
		}
		f = *p
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatNumber renders v with the shortest representation that round-trips.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
