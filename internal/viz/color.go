package viz

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// viridisStops are the anchor colors of the Viridis scale, evenly spaced
// over [0, 1].
var viridisStops = mustParseStops(
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
)

func mustParseStops(hex ...string) []colorful.Color {
	stops := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		stops[i] = c
	}
	return stops
}

// Viridis maps t in [0, 1] onto the Viridis scale as a "#rrggbb" string.
// Values outside the range are clamped; NaN maps to the start.
func Viridis(t float64) string {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	seg := t * float64(len(viridisStops)-1)
	i := int(seg)
	if i >= len(viridisStops)-1 {
		return viridisStops[len(viridisStops)-1].Hex()
	}
	return viridisStops[i].BlendRgb(viridisStops[i+1], seg-float64(i)).Clamped().Hex()
}
