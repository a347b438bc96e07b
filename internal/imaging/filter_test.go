package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestAdjustLevels(t *testing.T) {
	tests := []struct {
		name                 string
		v                    uint8
		brightness, contrast float64
		want                 uint8
	}{
		{"identity", 90, 100, 100, 90},
		{"brightness doubles", 100, 200, 100, 200},
		{"brightness zero", 100, 0, 100, 0},
		{"contrast collapses to mid-gray", 40, 100, 0, 128},
		{"contrast clips high", 200, 100, 400, 255},
		{"contrast clips low", 50, 100, 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustLevels(tt.v, tt.brightness, tt.contrast); got != tt.want {
				t.Errorf("AdjustLevels(%d, %g, %g) = %d, want %d",
					tt.v, tt.brightness, tt.contrast, got, tt.want)
			}
		})
	}
}

func TestFilterRGBAKeepsAlpha(t *testing.T) {
	in := color.RGBA{R: 100, G: 150, B: 200, A: 80}
	out := FilterRGBA(in, 150, 100)
	if out.A != 80 {
		t.Errorf("alpha = %d, want 80", out.A)
	}
	if out == in {
		t.Error("filter at brightness 150 changed nothing")
	}

	if got := FilterRGBA(in, 100, 100); got != in {
		t.Errorf("neutral filter = %v, want input %v", got, in)
	}
}

func TestBinarizeMaskSnapsToBlackWhite(t *testing.T) {
	buf := image.NewRGBA(image.Rect(0, 0, 4, 1))
	buf.SetRGBA(0, 0, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	buf.SetRGBA(1, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	buf.SetRGBA(2, 0, color.RGBA{R: 127, G: 127, B: 127, A: 255})
	buf.SetRGBA(3, 0, color.RGBA{R: 128, G: 128, B: 128, A: 0})

	out := BinarizeMask(buf, DefaultMaskThreshold)

	wants := []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{0, 0, 0, 255},
		{255, 255, 255, 255}, // alpha is forced opaque
	}
	for x, want := range wants {
		if got := out.RGBAAt(x, 0); got != want {
			t.Errorf("pixel %d = %v, want %v", x, got, want)
		}
	}

	// The input buffer is left untouched.
	if got := buf.RGBAAt(0, 0); got != (color.RGBA{R: 10, G: 10, B: 10, A: 255}) {
		t.Errorf("input mutated: %v", got)
	}
}

func TestCaptureRGBANormalizesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 9, 8))
	src.SetRGBA(5, 5, color.RGBA{R: 7, G: 8, B: 9, A: 255})

	out := CaptureRGBA(src)
	if out.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v, want zero-origin 4x3", out.Bounds())
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{R: 7, G: 8, B: 9, A: 255}) {
		t.Errorf("pixel (0,0) = %v", got)
	}
}

func TestIsSupportedFormat(t *testing.T) {
	for _, p := range []string{"a.png", "b.JPG", "c.tiff", "/x/y/d.tif", "e.jpeg"} {
		if !IsSupportedFormat(p) {
			t.Errorf("%s not recognized", p)
		}
	}
	for _, p := range []string{"a.bmp", "b.gif", "c", "d.dcm"} {
		if IsSupportedFormat(p) {
			t.Errorf("%s wrongly recognized", p)
		}
	}
}
