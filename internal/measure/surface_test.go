package measure

import (
	"image"
	"testing"

	"angio-caliper/pkg/geometry"
)

func testSurface() *Surface {
	s := NewSurface(DefaultConfig())
	buf := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := 3; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = 255
	}
	s.SetBackground(buf)
	return s
}

func fluidAt(i int) Line {
	f := float64(i)
	return NewFluidLine(geometry.NewPoint2D(f, f), geometry.NewPoint2D(f+5, f))
}

func TestAddLineBounds(t *testing.T) {
	s := testSurface()

	for i := 0; i < 3; i++ {
		s.AddLine(fluidAt(i), true)
	}
	if s.Count() != 3 {
		t.Fatalf("count = %d, want 3", s.Count())
	}
	if s.EditMode() {
		t.Error("edit mode still on with a full set")
	}

	// Beyond MaxLines: state unchanged.
	s.AddLine(fluidAt(9), true)
	if s.Count() != 3 {
		t.Errorf("count after rejected add = %d, want 3", s.Count())
	}
	if s.EditMode() {
		t.Error("edit mode changed by rejected add")
	}
}

func TestAddLineNonPersistent(t *testing.T) {
	s := testSurface()
	s.AddLine(fluidAt(0), false)
	if s.Count() != 0 {
		t.Errorf("non-persistent add stored a line")
	}
	if !s.EditMode() {
		t.Error("non-persistent add left edit mode")
	}
}

func TestEditModeTransitions(t *testing.T) {
	s := testSurface()
	s.SetEditMode(false)
	if s.EditMode() {
		t.Fatal("toggle off failed")
	}
	s.SetEditMode(true)
	if !s.EditMode() {
		t.Fatal("toggle on failed below capacity")
	}

	for i := 0; i < 3; i++ {
		s.AddLine(fluidAt(i), true)
	}
	s.SetEditMode(true)
	if s.EditMode() {
		t.Error("re-entered edit mode with a full set")
	}

	s.UndoLast()
	s.SetEditMode(true)
	if !s.EditMode() {
		t.Error("could not re-enter edit mode after undo")
	}
}

func TestUndoLastPopsMatchingVariant(t *testing.T) {
	s := testSurface()
	s.AddLine(fluidAt(0), true)
	s.AddLine(NewPixelLine(geometry.NewPoint2D(1, 1), geometry.NewPoint2D(8, 1)), true)

	s.UndoLast()
	if len(s.PixelLines()) != 0 {
		t.Error("undo did not pop the pixel line")
	}
	if len(s.Lines()) != 1 {
		t.Error("undo popped the wrong collection")
	}
}

func TestUndoAllResetsState(t *testing.T) {
	s := testSurface()
	for i := 0; i < 3; i++ {
		s.AddLine(fluidAt(i), true)
	}
	s.ZoomAt(3, geometry.NewPoint2D(16, 16))
	s.Pan(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(5, 5))

	s.UndoAll()
	if s.Count() != 0 {
		t.Errorf("count = %d after UndoAll", s.Count())
	}
	if !s.EditMode() {
		t.Error("edit mode not restored")
	}
	if s.Tracker().Matrix() != geometry.Identity() {
		t.Errorf("transform not restored to baseline: %+v", s.Tracker().Matrix())
	}
	if s.ZoomFactor() != 1 {
		t.Errorf("zoom factor = %v, want 1", s.ZoomFactor())
	}

	// Undo after a full reset is a no-op on an empty collection.
	s.UndoLast()
	if s.Count() != 0 {
		t.Error("UndoLast mutated an empty surface")
	}

	// The baseline save is re-established: a second reset still works.
	s.ZoomAt(2, geometry.NewPoint2D(0, 0))
	s.UndoAll()
	if s.Tracker().Matrix() != geometry.Identity() {
		t.Error("second UndoAll lost the baseline")
	}
}

func TestZoomClamp(t *testing.T) {
	s := testSurface()
	anchor := geometry.NewPoint2D(10, 10)

	for i := 0; i < 60; i++ {
		s.ZoomAt(-1, anchor)
		if s.ZoomFactor() < s.Config().MinZoom-1e-9 {
			t.Fatalf("zoom factor %v dropped below minimum %v", s.ZoomFactor(), s.Config().MinZoom)
		}
	}

	// Zooming back in works from the clamped floor.
	s.ZoomAt(1, anchor)
	if s.ZoomFactor() <= s.Config().MinZoom {
		t.Errorf("zoom-in from floor did not raise the factor: %v", s.ZoomFactor())
	}
}

func TestZoomAnchorStaysPut(t *testing.T) {
	s := testSurface()
	anchor := geometry.NewPoint2D(12, 7)
	logicalBefore := s.Tracker().ToLogical(anchor)
	s.ZoomAt(2, anchor)
	logicalAfter := s.Tracker().ToLogical(anchor)
	if !pointsClose(logicalBefore, logicalAfter, 1e-9) {
		t.Errorf("anchor moved: %v -> %v", logicalBefore, logicalAfter)
	}
}

func TestCompositeResolutionStable(t *testing.T) {
	s := testSurface()
	s.AddLine(fluidAt(4), true)
	s.ZoomAt(4, geometry.NewPoint2D(16, 16))

	out := s.Composite()
	if out == nil {
		t.Fatal("composite nil on a ready surface")
	}
	if got, want := out.Bounds(), s.Background().Bounds(); got != want {
		t.Errorf("composite bounds = %v, want %v", got, want)
	}

	// The stroke lands at its untransformed position regardless of zoom.
	c := out.RGBAAt(6, 4)
	if c != fluidColor {
		t.Errorf("pixel at (6,4) = %v, want stroke color %v", c, fluidColor)
	}
}

func TestCompositeRequiresReadyBuffer(t *testing.T) {
	s := NewSurface(DefaultConfig())
	if s.Composite() != nil {
		t.Error("composite produced output before background capture")
	}
	if s.Ready() {
		t.Error("surface ready without a background")
	}
}
