// Package measure implements the annotation-surface engine: reference lines,
// the pan/zoom transform tracker, cross-surface line propagation, and the
// stenosis arithmetic.
package measure

import (
	"math"

	"angio-caliper/pkg/geometry"
)

// LineKind selects the line variant.
type LineKind int

const (
	// Fluid lines keep full sub-pixel precision and render as continuous strokes.
	Fluid LineKind = iota
	// Pixel lines are quantized to the discrete pixel path walked between the
	// endpoints along the dominant axis.
	Pixel
)

func (k LineKind) String() string {
	switch k {
	case Fluid:
		return "fluid"
	case Pixel:
		return "pixel"
	default:
		return "unknown"
	}
}

// Line is an immutable measurement segment. The endpoints are fixed at
// construction; editing a line means replacing it in its collection.
type Line struct {
	kind   LineKind
	start  geometry.Point2D
	end    geometry.Point2D
	length float64

	// Pixel variant only
	slopeX float64
	slopeY float64
	path   []geometry.PointInt
}

// NewFluidLine creates a continuous sub-pixel line.
func NewFluidLine(start, end geometry.Point2D) Line {
	return Line{
		kind:   Fluid,
		start:  start,
		end:    end,
		length: start.Distance(end),
	}
}

// NewPixelLine creates a line quantized to the pixel path walked from start
// to end. The path begins at round(start) and ends at round(end) inclusive,
// with consecutive duplicate rounded positions collapsed.
func NewPixelLine(start, end geometry.Point2D) Line {
	sx, sy := lineSlope(start, end)
	l := Line{
		kind:   Pixel,
		start:  start,
		end:    end,
		length: start.Distance(end),
		slopeX: sx,
		slopeY: sy,
	}
	walkPixels(start, end, func(p geometry.PointInt) bool {
		l.path = append(l.path, p)
		return true
	})
	return l
}

// Kind returns the line variant.
func (l Line) Kind() LineKind { return l.kind }

// Start returns the starting point in logical image coordinates.
func (l Line) Start() geometry.Point2D { return l.start }

// End returns the ending point in logical image coordinates.
func (l Line) End() geometry.Point2D { return l.end }

// Length returns the Euclidean distance between the endpoints. It is the
// same for both variants regardless of pixel quantization.
func (l Line) Length() float64 { return l.length }

// Slope returns the normalized walk direction of a pixel line: the axis with
// the greater absolute delta steps at unit magnitude, the other at
// deltaMinor/|deltaMajor|. Zero for fluid lines.
func (l Line) Slope() (sx, sy float64) { return l.slopeX, l.slopeY }

// Path returns the ordered pixel coordinates visited between the endpoints.
// Nil for fluid lines.
func (l Line) Path() []geometry.PointInt { return l.path }

// IsZero reports whether the line is degenerate (both endpoints at the
// origin). Propagation emits a zero line when no foreground run was found;
// callers must treat it as "measurement failed", not as a valid length.
func (l Line) IsZero() bool {
	return l.start == (geometry.Point2D{}) && l.end == (geometry.Point2D{})
}

// lineSlope derives the unit-dominant-axis step direction between two points.
func lineSlope(start, end geometry.Point2D) (sx, sy float64) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	adx := math.Abs(dx)
	ady := math.Abs(dy)
	switch {
	case adx == 0 && ady == 0:
		return 0, 0
	case adx >= ady:
		return math.Copysign(1, dx), dy / adx
	default:
		return dx / ady, math.Copysign(1, dy)
	}
}

// walkPixels steps from start to end in unit dominant-axis increments,
// rounding the walking position at each step and skipping repeated rounded
// positions. visit returning false stops the walk early. The final visited
// position is always round(end).
func walkPixels(start, end geometry.Point2D, visit func(p geometry.PointInt) bool) {
	sx, sy := lineSlope(start, end)
	steps := int(math.Max(math.Abs(end.X-start.X), math.Abs(end.Y-start.Y)))

	last := geometry.PointInt{X: math.MinInt32, Y: math.MinInt32}
	emit := func(p geometry.PointInt) bool {
		if p == last {
			return true
		}
		last = p
		return visit(p)
	}

	for i := 0; i <= steps; i++ {
		pos := geometry.Point2D{
			X: start.X + sx*float64(i),
			Y: start.Y + sy*float64(i),
		}
		if !emit(pos.Round()) {
			return
		}
	}
	// The dominant delta may be fractional; make sure the walk is inclusive
	// of the rounded endpoint.
	emit(end.Round())
}
