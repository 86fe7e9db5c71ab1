// Package palette provides sequential color ramps evaluated over [0, 1].
package palette

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Ramp maps t in [0, 1] to a hex color. Values outside the interval are clamped.
type Ramp func(t float64) string

var schemes = map[string]string{
	"reds":    "fff5f0fee0d2fcbba1fc9272fb6a4aef3b2ccb181da50f1567000d",
	"blues":   "f7fbffdeebf7c6dbef9ecae16baed64292c62171b508519c08306b",
	"greens":  "f7fcf5e5f5e0c7e9c0a1d99b74c47641ab5d238b45006d2c00441b",
	"oranges": "fff5ebfee6cefdd0a2fdae6bfd8d3cf16913d94801a636037f2704",
	"purples": "fcfbfdefedf5dadaebbcbddc9e9ac8807dba6a51a354278f3f007d",
	"greys":   "fffffff0f0f0d9d9d9bdbdbd969696737373525252252525000000",
}

// Names lists the built-in ramps in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(schemes))
	for name := range schemes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Named returns a built-in ramp by case-insensitive name.
func Named(name string) (Ramp, error) {
	spec, ok := schemes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return FromStops(splitHex(spec)...)
}

func splitHex(spec string) []string {
	out := make([]string, 0, len(spec)/6)
	for i := 0; i+6 <= len(spec); i += 6 {
		out = append(out, "#"+spec[i:i+6])
	}
	return out
}

// FromStops builds a ramp interpolating evenly spaced hex stops in Lab space.
func FromStops(stops ...string) (Ramp, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("palette needs at least one color stop")
	}
	colors := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(normalizeHex(s))
		if err != nil {
			return nil, fmt.Errorf("palette stop %d: %w", i, err)
		}
		colors[i] = c
	}
	if len(colors) == 1 {
		hex := colors[0].Hex()
		return func(float64) string { return hex }, nil
	}
	return func(t float64) string {
		if math.IsNaN(t) {
			t = 0
		}
		t = math.Max(0, math.Min(1, t))
		pos := t * float64(len(colors)-1)
		i := int(math.Floor(pos))
		if i >= len(colors)-1 {
			return colors[len(colors)-1].Hex()
		}
		return colors[i].BlendLab(colors[i+1], pos-float64(i)).Clamped().Hex()
	}, nil
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return strings.ToLower(s)
}

// Fade blends fg over bg with the given opacity. Invalid colors are returned unchanged.
func Fade(fg, bg string, opacity float64) string {
	if opacity >= 1 || bg == "" {
		return fg
	}
	f, err := colorful.Hex(normalizeHex(fg))
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(normalizeHex(bg))
	if err != nil {
		return fg
	}
	return b.BlendRgb(f, math.Max(0, opacity)).Clamped().Hex()
}
