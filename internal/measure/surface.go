package measure

import (
	"image"
	"image/color"
	"math"

	"angio-caliper/internal/imaging"
	"angio-caliper/pkg/geometry"
)

// Line stroke colors on the rendered view.
var (
	fluidColor = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	pixelColor = color.RGBA{R: 255, G: 64, B: 64, A: 255}
)

// Config holds per-surface settings. A config value is threaded into each
// surface at construction; there is no shared global state.
type Config struct {
	MaxLines    int     // measurement lines per surface
	Brightness  float64 // percent, 0-200
	Contrast    float64 // percent, 0-1000
	ScaleFactor float64 // zoom base applied per wheel step
	MinZoom     float64 // cumulative zoom factor floor
	MaskSuffix  string  // filename suffix pairing a mask with its image
}

// DefaultConfig returns the standard surface settings.
func DefaultConfig() Config {
	return Config{
		MaxLines:    3,
		Brightness:  100,
		Contrast:    100,
		ScaleFactor: 1.1,
		MinZoom:     0.2,
		MaskSuffix:  "_mask",
	}
}

// Surface owns one annotated view: the transform tracker, the bounded line
// collections, the edit/zoom state, and the immutable snapshot of the
// background pixel buffer. All mutation happens on the owning event loop;
// cross-surface writes go only through Propagate, which uses AddLine.
type Surface struct {
	cfg     Config
	tracker *TransformTracker

	fluid    []Line
	pixel    []Line
	lastKind LineKind

	editMode   bool
	zoomFactor float64

	brightness float64
	contrast   float64

	// background is captured once, after the image finishes decoding. ready
	// gates propagation and composite export on that capture.
	background *image.RGBA
	ready      bool

	device *image.RGBA
}

// NewSurface creates a surface with the given configuration. The tracker is
// saved once immediately so UndoAll always has a baseline to restore to.
func NewSurface(cfg Config) *Surface {
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = DefaultConfig().MaxLines
	}
	if cfg.ScaleFactor <= 0 {
		cfg.ScaleFactor = DefaultConfig().ScaleFactor
	}
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = DefaultConfig().MinZoom
	}
	s := &Surface{
		cfg:        cfg,
		tracker:    NewTransformTracker(),
		editMode:   true,
		zoomFactor: 1,
		brightness: cfg.Brightness,
		contrast:   cfg.Contrast,
	}
	s.tracker.Save()
	return s
}

// Config returns the surface configuration.
func (s *Surface) Config() Config { return s.cfg }

// Tracker returns the surface's transform tracker, used by input handlers to
// convert pointer positions into logical coordinates.
func (s *Surface) Tracker() *TransformTracker { return s.tracker }

// SetBackground captures the surface's immutable background pixel buffer and
// renders the initial view. The device raster defaults to the buffer size
// unless SetViewport was called first.
func (s *Surface) SetBackground(buf *image.RGBA) {
	s.background = buf
	s.ready = buf != nil
	if s.device == nil && buf != nil {
		b := buf.Bounds()
		s.device = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	s.Redraw()
}

// SetViewport sizes the device raster the surface renders into.
func (s *Surface) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if s.device != nil && s.device.Bounds().Dx() == w && s.device.Bounds().Dy() == h {
		return
	}
	s.device = image.NewRGBA(image.Rect(0, 0, w, h))
	s.Redraw()
}

// Ready reports whether the background buffer has been captured. Propagation
// and composite export must not run before this.
func (s *Surface) Ready() bool { return s.ready }

// Background returns the original, untransformed pixel buffer.
func (s *Surface) Background() *image.RGBA { return s.background }

// Device returns the current rendered view raster.
func (s *Surface) Device() *image.RGBA { return s.device }

// Lines returns the fluid lines in drawing order.
func (s *Surface) Lines() []Line { return s.fluid }

// PixelLines returns the pixel lines in drawing order.
func (s *Surface) PixelLines() []Line { return s.pixel }

// Count returns the number of stored lines across both variants. The two
// variants coexist only transiently, while a propagated set replaces a drawn
// one.
func (s *Surface) Count() int { return len(s.fluid) + len(s.pixel) }

// EditMode reports whether the surface accepts new lines (vs. pan/zoom).
func (s *Surface) EditMode() bool { return s.editMode }

// SetEditMode toggles between drawing and pan/zoom. Edit mode cannot be
// re-entered once the surface holds a full set of lines; undo first.
func (s *Surface) SetEditMode(on bool) {
	if on && s.Count() >= s.cfg.MaxLines {
		return
	}
	s.editMode = on
}

// ZoomFactor returns the cumulative zoom applied since the baseline view.
func (s *Surface) ZoomFactor() float64 { return s.zoomFactor }

// Brightness returns the current brightness percentage.
func (s *Surface) Brightness() float64 { return s.brightness }

// Contrast returns the current contrast percentage.
func (s *Surface) Contrast() float64 { return s.contrast }

// SetBrightness clamps to [0,200] and redraws.
func (s *Surface) SetBrightness(percent float64) {
	s.brightness = math.Min(math.Max(percent, 0), 200)
	s.Redraw()
}

// SetContrast clamps to [0,1000] and redraws.
func (s *Surface) SetContrast(percent float64) {
	s.contrast = math.Min(math.Max(percent, 0), 1000)
	s.Redraw()
}

// AddLine draws a line immediately and, when persist is set, appends it to
// the surface state. Adding beyond MaxLines is a silent no-op: the operator
// simply has a full measurement set.
func (s *Surface) AddLine(l Line, persist bool) {
	if s.Count() >= s.cfg.MaxLines {
		return
	}
	s.drawLine(l)
	if !persist {
		return
	}
	switch l.Kind() {
	case Pixel:
		s.pixel = append(s.pixel, l)
	default:
		s.fluid = append(s.fluid, l)
	}
	s.lastKind = l.Kind()
	s.editMode = s.editMode && s.Count() < s.cfg.MaxLines
}

// UndoLast removes the most recently added line. The variant of the last
// addition decides which collection is popped, so undo stays correct while
// fluid and pixel lines coexist. No-op when that collection is empty.
func (s *Surface) UndoLast() {
	switch s.lastKind {
	case Pixel:
		if len(s.pixel) == 0 {
			return
		}
		s.pixel = s.pixel[:len(s.pixel)-1]
	default:
		if len(s.fluid) == 0 {
			return
		}
		s.fluid = s.fluid[:len(s.fluid)-1]
	}
	s.Redraw()
}

// UndoAll clears every line, re-enables edit mode, restores the transform to
// its saved baseline, and redraws the bare background. The baseline save is
// re-established so the next UndoAll stays balanced.
func (s *Surface) UndoAll() {
	s.fluid = nil
	s.pixel = nil
	s.editMode = true
	s.tracker.Restore()
	s.tracker.Save()
	s.zoomFactor = 1
	s.Redraw()
}

// ZoomAt zooms by scaleFactor^magnitude anchored at the given device-space
// pointer position. The per-step factor is clamped so the cumulative zoom
// factor never drops below the configured minimum.
func (s *Surface) ZoomAt(magnitude float64, device geometry.Point2D) {
	anchor := s.tracker.ToLogical(device)
	factor := math.Pow(s.cfg.ScaleFactor, magnitude)
	if s.zoomFactor*factor < s.cfg.MinZoom {
		factor = math.Max(s.cfg.MinZoom/s.zoomFactor, factor)
	}
	s.tracker.Translate(anchor.X, anchor.Y)
	s.tracker.Scale(factor, factor)
	s.tracker.Translate(-anchor.X, -anchor.Y)
	s.zoomFactor *= factor
	s.Redraw()
}

// Pan translates the view by the delta between two device-space pointer
// positions, expressed in logical coordinates.
func (s *Surface) Pan(fromDevice, toDevice geometry.Point2D) {
	prev := s.tracker.ToLogical(fromDevice)
	cur := s.tracker.ToLogical(toDevice)
	delta := cur.Sub(prev)
	s.tracker.Translate(delta.X, delta.Y)
	s.Redraw()
}

// Redraw re-renders the device raster: the full device rectangle is cleared
// (its logical extent found through the inverse transform, so the clear
// covers the current view at any zoom or pan), the background is drawn
// through the transform with the brightness/contrast filter applied, then
// every stored line is drawn in insertion order.
func (s *Surface) Redraw() {
	if s.device == nil {
		return
	}
	inv, invOK := s.tracker.Matrix().Inverse()
	bounds := s.device.Bounds()
	var bg image.Rectangle
	if s.background != nil {
		bg = s.background.Bounds()
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out := color.RGBA{A: 255}
			if s.ready && invOK {
				src := inv.Apply(geometry.Point2D{X: float64(x), Y: float64(y)})
				sx, sy := int(src.X), int(src.Y)
				if sx >= bg.Min.X && sx < bg.Max.X && sy >= bg.Min.Y && sy < bg.Max.Y {
					out = imaging.FilterRGBA(s.background.RGBAAt(sx, sy), s.brightness, s.contrast)
				}
			}
			s.device.SetRGBA(x, y, out)
		}
	}

	for _, l := range s.fluid {
		s.drawLine(l)
	}
	for _, l := range s.pixel {
		s.drawLine(l)
	}
}

// Composite renders the original, untransformed pixel buffer plus all stored
// lines at the baseline transform. Exported artifacts are therefore
// resolution-stable regardless of the operator's viewing zoom. Returns nil
// until the background capture has completed.
func (s *Surface) Composite() *image.RGBA {
	if !s.ready {
		return nil
	}
	b := s.background.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	copy(out.Pix, s.background.Pix)

	identity := geometry.Identity()
	for _, l := range s.fluid {
		drawLineRaster(out, l, identity, 1)
	}
	for _, l := range s.pixel {
		drawLineRaster(out, l, identity, 1)
	}
	return out
}

// drawLine renders a single line onto the device raster through the current
// transform.
func (s *Surface) drawLine(l Line) {
	if s.device == nil {
		return
	}
	scale := math.Max(1, s.zoomFactor)
	drawLineRaster(s.device, l, s.tracker.Matrix(), scale)
}

// drawLineRaster renders a line onto a raster under the given transform.
// Fluid lines stroke continuously between the transformed endpoints; pixel
// lines paint each walked pixel as a block scaled with the view.
func drawLineRaster(dst *image.RGBA, l Line, m geometry.AffineTransform, scale float64) {
	switch l.Kind() {
	case Pixel:
		block := int(math.Round(scale))
		if block < 1 {
			block = 1
		}
		for _, p := range l.Path() {
			d := m.Apply(p.ToFloat()).Round()
			fillBlock(dst, d.X, d.Y, block, pixelColor)
		}
	default:
		p1 := m.Apply(l.Start()).Round()
		p2 := m.Apply(l.End()).Round()
		strokeSegment(dst, p1.X, p1.Y, p2.X, p2.Y, fluidColor, 2)
	}
}

// fillBlock paints a block x block square centered on (x, y).
func fillBlock(dst *image.RGBA, x, y, block int, col color.RGBA) {
	bounds := dst.Bounds()
	for dy := -block / 2; dy <= block/2; dy++ {
		for dx := -block / 2; dx <= block/2; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				dst.SetRGBA(px, py, col)
			}
		}
	}
}

// strokeSegment draws a thick segment between two raster points using
// Bresenham's algorithm.
func strokeSegment(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := dst.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for u := -thickness / 2; u <= thickness/2; u++ {
				px, py := x1+u, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					dst.SetRGBA(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}
