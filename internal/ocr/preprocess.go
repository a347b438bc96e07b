package ocr

import (
	"image"
	"image/color"
)

// prepareStrip normalizes a header strip for recognition. Overlay text is
// bright on a near-black fluoro field, the reverse of the print Tesseract is
// trained on, so the strip is inverted when its border reads dark and then
// contrast-stretched to the full range.
func prepareStrip(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.SetGray(x, y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
		}
	}

	if borderLuma(gray) < 128 {
		for i, v := range gray.Pix {
			gray.Pix[i] = 255 - v
		}
	}

	lo, hi := uint8(255), uint8(0)
	for _, v := range gray.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi > lo {
		span := int(hi) - int(lo)
		for i, v := range gray.Pix {
			gray.Pix[i] = uint8((int(v) - int(lo)) * 255 / span)
		}
	}
	return gray
}

// borderLuma samples the strip's border pixels and returns their average
// luminance, which decides the overlay's polarity.
func borderLuma(gray *image.Gray) uint8 {
	bounds := gray.Bounds()
	var sum, count uint64

	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		sum += uint64(gray.GrayAt(x, bounds.Min.Y).Y)
		sum += uint64(gray.GrayAt(x, bounds.Max.Y-1).Y)
		count += 2
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		sum += uint64(gray.GrayAt(bounds.Min.X, y).Y)
		sum += uint64(gray.GrayAt(bounds.Max.X-1, y).Y)
		count += 2
	}

	if count == 0 {
		return 0
	}
	return uint8(sum / count)
}
