package measure

import (
	"math"
	"testing"

	"angio-caliper/pkg/geometry"
)

func TestLineLength(t *testing.T) {
	tests := []struct {
		name       string
		start, end geometry.Point2D
		want       float64
	}{
		{"horizontal", geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0), 10},
		{"diagonal 3-4-5", geometry.NewPoint2D(1, 1), geometry.NewPoint2D(4, 5), 5},
		{"sub-pixel", geometry.NewPoint2D(0.5, 0.5), geometry.NewPoint2D(1.5, 0.5), 1},
		{"degenerate", geometry.NewPoint2D(2, 3), geometry.NewPoint2D(2, 3), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, l := range []Line{
				NewFluidLine(tt.start, tt.end),
				NewPixelLine(tt.start, tt.end),
			} {
				if math.Abs(l.Length()-tt.want) > 1e-9 {
					t.Errorf("%s line length = %v, want %v", l.Kind(), l.Length(), tt.want)
				}
			}
		})
	}
}

func TestPixelLineWalk(t *testing.T) {
	l := NewPixelLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(5, 2))

	sx, sy := l.Slope()
	if sx != 1 || math.Abs(sy-0.4) > 1e-9 {
		t.Fatalf("slope = [%v, %v], want [1, 0.4]", sx, sy)
	}

	want := []geometry.PointInt{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}, {5, 2}}
	got := l.Path()
	if len(got) != len(want) {
		t.Fatalf("path = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if math.Abs(l.Length()-5.3852) > 1e-4 {
		t.Errorf("length = %v, want 5.3852", l.Length())
	}
}

func TestPixelLinePathEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		start, end geometry.Point2D
	}{
		{"steep", geometry.NewPoint2D(3, 1), geometry.NewPoint2D(4, 9)},
		{"reverse", geometry.NewPoint2D(8, 8), geometry.NewPoint2D(1, 5)},
		{"fractional", geometry.NewPoint2D(0.4, 0.4), geometry.NewPoint2D(6.6, 2.2)},
		{"vertical", geometry.NewPoint2D(2, 0), geometry.NewPoint2D(2, 19)},
		{"single point", geometry.NewPoint2D(5, 5), geometry.NewPoint2D(5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewPixelLine(tt.start, tt.end)
			path := l.Path()
			if len(path) == 0 {
				t.Fatal("empty path")
			}
			if path[0] != tt.start.Round() {
				t.Errorf("path starts at %v, want %v", path[0], tt.start.Round())
			}
			if path[len(path)-1] != tt.end.Round() {
				t.Errorf("path ends at %v, want %v", path[len(path)-1], tt.end.Round())
			}
			for i := 1; i < len(path); i++ {
				if path[i] == path[i-1] {
					t.Errorf("consecutive duplicate at %d: %v", i, path[i])
				}
			}
		})
	}
}

func TestLineIsZero(t *testing.T) {
	if !NewPixelLine(geometry.Point2D{}, geometry.Point2D{}).IsZero() {
		t.Error("zero line not reported as zero")
	}
	if NewPixelLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(1, 0)).IsZero() {
		t.Error("non-zero line reported as zero")
	}
}
