package imaging

import (
	"image/color"
)

// AdjustLevels applies brightness then contrast to a single channel value.
// Both are percentages: 100 leaves the channel unchanged, brightness scales
// linearly toward 0 or 2x, contrast pivots around mid-gray.
func AdjustLevels(v uint8, brightness, contrast float64) uint8 {
	f := float64(v) * brightness / 100
	f = (f-127.5)*contrast/100 + 127.5
	if f < 0 {
		f = 0
	}
	if f > 255 {
		f = 255
	}
	return uint8(f + 0.5)
}

// FilterRGBA applies brightness/contrast to the color channels of a pixel,
// leaving alpha untouched.
func FilterRGBA(c color.RGBA, brightness, contrast float64) color.RGBA {
	if brightness == 100 && contrast == 100 {
		return c
	}
	return color.RGBA{
		R: AdjustLevels(c.R, brightness, contrast),
		G: AdjustLevels(c.G, brightness, contrast),
		B: AdjustLevels(c.B, brightness, contrast),
		A: c.A,
	}
}
