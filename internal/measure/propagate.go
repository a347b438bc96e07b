package measure

import (
	"image"

	"angio-caliper/pkg/geometry"
)

// Propagate maps the source surface's drawn lines onto the target surface by
// walking each line's pixel path over the target's raw buffer and locating
// the vessel silhouette underneath. This is the forward direction
// (image to mask): the target buffer is the binarized segmentation mask.
//
// Preconditions are normal interactive states, not errors, so each guard is
// a silent no-op: the source must hold a full set of drawn lines, the target
// buffer must be captured and non-degenerate, and the target must not
// already hold a full set of either variant (existing measurements are never
// overwritten; the operator clears first).
func Propagate(src, dst *Surface) {
	if len(src.fluid) != src.cfg.MaxLines {
		return
	}
	if !dst.ready || dst.background == nil {
		return
	}
	b := dst.background.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return
	}
	if len(dst.fluid) >= dst.cfg.MaxLines || len(dst.pixel) >= dst.cfg.MaxLines {
		return
	}

	for _, l := range src.fluid {
		start, end := scanForegroundRun(dst.background, l)
		dst.AddLine(NewPixelLine(start, end), true)
	}
}

// PropagateReverse copies the mask surface's drawn lines onto the image
// surface. The mask's lines already carry exact sub-pixel endpoints, so no
// buffer walk is needed. The same guards apply as for the forward direction,
// minus the buffer requirement.
func PropagateReverse(mask, img *Surface) {
	if len(mask.fluid) != mask.cfg.MaxLines {
		return
	}
	if len(img.fluid) >= img.cfg.MaxLines || len(img.pixel) >= img.cfg.MaxLines {
		return
	}

	for _, l := range mask.fluid {
		img.AddLine(NewFluidLine(l.Start(), l.End()), true)
	}
}

// scanForegroundRun walks the line's pixel path over the buffer and returns
// the first contiguous foreground run it crosses. Foreground is opaque white
// (255,255,255,255), background opaque black (0,0,0,255); any other value
// changes nothing. The walk stops at the first background pixel after the
// run started, so disjoint runs further along the line are ignored. Returns
// the zero point pair when no foreground pixel was found, a degenerate
// zero-length result that callers must treat as "not found".
func scanForegroundRun(buf *image.RGBA, l Line) (start, end geometry.Point2D) {
	bounds := buf.Bounds()
	started := false

	walkPixels(l.Start(), l.End(), func(p geometry.PointInt) bool {
		if p.X < bounds.Min.X || p.X >= bounds.Max.X || p.Y < bounds.Min.Y || p.Y >= bounds.Max.Y {
			return true
		}
		i := buf.PixOffset(p.X, p.Y)
		r, g, b, a := buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3]

		switch {
		case r == 255 && g == 255 && b == 255 && a == 255:
			if !started {
				started = true
				start = p.ToFloat()
			}
			end = p.ToFloat()
		case r == 0 && g == 0 && b == 0 && a == 255:
			if started {
				return false
			}
		}
		return true
	})

	return start, end
}
