package ocr

import (
	"image"
	"image/color"
	"testing"

	"angio-caliper/internal/frame"
)

func TestParseStrip(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    frame.Identity
		wantErr bool
	}{
		{
			name: "slash separated angles",
			text: "P0123 30/-20 #5",
			want: frame.Identity{Patient: "P0123", PrimaryAngle: 30, SecondaryAngle: -20, Frame: 5},
		},
		{
			name: "space separated with leading noise",
			text: "CINE AB-7 12.5 0 42 15 FPS",
			want: frame.Identity{Patient: "AB-7", PrimaryAngle: 12.5, SecondaryAngle: 0, Frame: 42},
		},
		{
			name: "lowercase overlay",
			text: "p9 -5 -10 #3",
			want: frame.Identity{Patient: "P9", PrimaryAngle: -5, SecondaryAngle: -10, Frame: 3},
		},
		{name: "no numbers", text: "CINE LOOP", wantErr: true},
		{name: "empty", text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStrip(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("identity = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPrepareStripInvertsDarkField(t *testing.T) {
	// Dim text on a near-black field, the usual fluoro overlay polarity.
	strip := image.NewGray(image.Rect(0, 0, 8, 4))
	for i := range strip.Pix {
		strip.Pix[i] = 20
	}
	strip.SetGray(4, 2, color.Gray{Y: 180})

	out := prepareStrip(strip)

	// After inversion and stretching the text pixel must be the darkest.
	if got := out.GrayAt(4, 2).Y; got != 0 {
		t.Errorf("text pixel = %d, want 0", got)
	}
	if got := out.GrayAt(0, 0).Y; got != 255 {
		t.Errorf("field pixel = %d, want 255", got)
	}
}

func TestPrepareStripKeepsLightField(t *testing.T) {
	strip := image.NewGray(image.Rect(0, 0, 8, 4))
	for i := range strip.Pix {
		strip.Pix[i] = 220
	}
	strip.SetGray(3, 1, color.Gray{Y: 40})

	out := prepareStrip(strip)
	if got := out.GrayAt(3, 1).Y; got != 0 {
		t.Errorf("text pixel = %d, want 0", got)
	}
	if got := out.GrayAt(7, 3).Y; got != 255 {
		t.Errorf("field pixel = %d, want 255", got)
	}
}
