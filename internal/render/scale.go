package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Scale is the value range a colormap spans. Values outside it clamp to
// the end colors.
type Scale struct {
	Min float64
	Max float64
}

// UnitScale is the fixed 0..1 range used for ratio maps.
var UnitScale = Scale{Min: 0, Max: 1}

// FitScale returns the range of the finite values in shapes. ok is false
// when there are none.
func FitScale(shapes []Shape) (s Scale, ok bool) {
	s = Scale{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, sh := range shapes {
		if !sh.colored() {
			continue
		}
		s.Min = math.Min(s.Min, sh.Value)
		s.Max = math.Max(s.Max, sh.Value)
		ok = true
	}
	if !ok {
		return UnitScale, false
	}
	return s, true
}

// Color maps v onto the viridis colormap.
func (s Scale) Color(v float64) drawing.Color {
	if s.Max <= s.Min {
		return chart.Viridis(0, 0, 1)
	}
	v = math.Max(s.Min, math.Min(s.Max, v))
	// Keep the table index in range at exactly Max.
	return chart.Viridis(v, s.Min, s.Max+(s.Max-s.Min)*1e-9)
}

// Ticks returns n evenly spaced values from Min to Max.
func (s Scale) Ticks(n int) []float64 {
	if n < 2 || s.Max <= s.Min {
		return []float64{s.Min}
	}
	ticks := make([]float64, n)
	step := (s.Max - s.Min) / float64(n-1)
	for i := range ticks {
		ticks[i] = s.Min + step*float64(i)
	}
	return ticks
}

// ParseHex parses a #RRGGBB color; the leading '#' is optional.
func ParseHex(s string) (drawing.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return drawing.Color{}, eris.Errorf("render: invalid color %q", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return drawing.Color{}, eris.Errorf("render: invalid color %q", s)
	}
	return drawing.ColorFromHex(hex), nil
}
