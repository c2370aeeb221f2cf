package grid

import "math"

const (
	GreenLow  = 0.0
	GreenHigh = 170.0
	BlueLow   = 50.0
	BlueHigh  = 170.0
)

// MapRange linearly maps v from [inLo, inHi] to [outLo, outHi] and clamps the
// result to the output range. An empty input range acts as a step at inLo.
// NaN input yields NaN.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	if inHi == inLo {
		if v < inLo {
			return outLo
		}
		return outHi
	}
	out := (v-inLo)/(inHi-inLo)*(outHi-outLo) + outLo
	lo, hi := math.Min(outLo, outHi), math.Max(outLo, outHi)
	return math.Max(lo, math.Min(hi, out))
}

// Intensities returns the green and blue channels for a scaled cell value.
// Green ramps over [0, 1]; blue ramps over [1, amp].
func Intensities(v, amp float64) (green, blue float64) {
	green = MapRange(v, 0, 1, GreenLow, GreenHigh)
	blue = MapRange(v, 1, amp, BlueLow, BlueHigh)
	return green, blue
}

// MapColor converts a scaled cell value into its fill.
func MapColor(v, amp float64) Color {
	g, b := Intensities(v, amp)
	return Color{R: 0, G: g, B: b}
}
