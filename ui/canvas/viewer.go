// Package canvas provides the interactive viewer widget for one annotation
// surface: tap-tap line drawing in edit mode, drag pan, and wheel zoom.
package canvas

import (
	"image"

	"angio-caliper/internal/measure"
	"angio-caliper/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// SurfaceViewer renders a measurement surface and routes pointer events into
// it. All coordinate conversion happens inside the surface's transform
// tracker; the viewer only hands over device-space positions.
type SurfaceViewer struct {
	widget.BaseWidget

	surface *measure.Surface
	raster  *fynecanvas.Raster

	// First endpoint of an in-progress line, kept in logical coordinates so
	// a zoom between the two taps cannot skew the measurement.
	pending *geometry.Point2D

	onChange func()
}

// NewSurfaceViewer creates a viewer for the given surface.
func NewSurfaceViewer(s *measure.Surface) *SurfaceViewer {
	v := &SurfaceViewer{surface: s}
	v.raster = fynecanvas.NewRaster(v.draw)
	v.raster.ScaleMode = fynecanvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

// SetSurface rebinds the viewer to another surface (frame navigation).
func (v *SurfaceViewer) SetSurface(s *measure.Surface) {
	v.surface = s
	v.pending = nil
	v.Refresh()
}

// Surface returns the currently bound surface.
func (v *SurfaceViewer) Surface() *measure.Surface {
	return v.surface
}

// OnChange sets a callback fired after any interaction that mutates the
// surface, so the window can refresh its stenosis readout.
func (v *SurfaceViewer) OnChange(callback func()) {
	v.onChange = callback
}

func (v *SurfaceViewer) changed() {
	v.raster.Refresh()
	if v.onChange != nil {
		v.onChange()
	}
}

// draw is the raster drawing function.
func (v *SurfaceViewer) draw(w, h int) image.Image {
	if v.surface == nil {
		return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	}
	v.surface.SetViewport(w, h)
	if dev := v.surface.Device(); dev != nil {
		return dev
	}
	return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
}

// Tapped places line endpoints while the surface is in edit mode: the first
// tap anchors the line, the second commits it.
func (v *SurfaceViewer) Tapped(ev *fyne.PointEvent) {
	if v.surface == nil || !v.surface.EditMode() {
		return
	}
	device := geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))
	logical := v.surface.Tracker().ToLogical(device)

	if v.pending == nil {
		v.pending = &logical
		return
	}
	v.surface.AddLine(measure.NewFluidLine(*v.pending, logical), true)
	v.pending = nil
	v.changed()
}

// TappedSecondary cancels an in-progress line.
func (v *SurfaceViewer) TappedSecondary(_ *fyne.PointEvent) {
	v.pending = nil
}

// Dragged pans the view while the surface is in pan/zoom mode.
func (v *SurfaceViewer) Dragged(ev *fyne.DragEvent) {
	if v.surface == nil || v.surface.EditMode() {
		return
	}
	cur := geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))
	prev := geometry.NewPoint2D(
		float64(ev.Position.X-ev.Dragged.DX),
		float64(ev.Position.Y-ev.Dragged.DY),
	)
	v.surface.Pan(prev, cur)
	v.changed()
}

// DragEnd implements fyne.Draggable.
func (v *SurfaceViewer) DragEnd() {}

// Scrolled zooms around the pointer position.
func (v *SurfaceViewer) Scrolled(ev *fyne.ScrollEvent) {
	if v.surface == nil {
		return
	}
	magnitude := 1.0
	if ev.Scrolled.DY < 0 {
		magnitude = -1.0
	}
	device := geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))
	v.surface.ZoomAt(magnitude, device)
	v.changed()
}

// Refresh refreshes the raster.
func (v *SurfaceViewer) Refresh() {
	v.raster.Refresh()
	v.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (v *SurfaceViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}
