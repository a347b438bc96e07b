package measure

import (
	"math"
	"testing"

	"angio-caliper/pkg/geometry"
)

func pointsClose(a, b geometry.Point2D, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestTrackerRoundTrip(t *testing.T) {
	tr := NewTransformTracker()
	tr.Translate(40, -12)
	tr.Scale(2.5, 2.5)
	tr.Rotate(math.Pi / 6)
	tr.Translate(-7, 3)

	for _, p := range []geometry.Point2D{
		{X: 0, Y: 0}, {X: 100, Y: 50}, {X: -3.25, Y: 17.5},
	} {
		back := tr.ToLogical(tr.ToDevice(p))
		if !pointsClose(back, p, 1e-9) {
			t.Errorf("round trip of %v = %v", p, back)
		}
	}
}

func TestTrackerToLogical(t *testing.T) {
	// Scale by 2 then translate: device = 2*(logical + 10).
	tr := NewTransformTracker()
	tr.Scale(2, 2)
	tr.Translate(10, 10)

	got := tr.ToLogical(geometry.NewPoint2D(40, 40))
	want := geometry.NewPoint2D(10, 10)
	if !pointsClose(got, want, 1e-9) {
		t.Errorf("ToLogical = %v, want %v", got, want)
	}
}

func TestTrackerSaveRestore(t *testing.T) {
	tr := NewTransformTracker()
	tr.Save()
	base := tr.Matrix()

	tr.Translate(5, 5)
	tr.Save()
	tr.Scale(3, 3)
	if tr.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", tr.Depth())
	}

	tr.Restore()
	if tr.Matrix() != geometry.Identity().Compose(geometry.Translation(5, 5)) {
		t.Errorf("restore did not adopt the saved matrix: %+v", tr.Matrix())
	}

	tr.Restore()
	if tr.Matrix() != base {
		t.Errorf("restore did not return to baseline: %+v", tr.Matrix())
	}

	// Unbalanced restore leaves the matrix untouched.
	tr.Restore()
	if tr.Matrix() != base || tr.Depth() != 0 {
		t.Errorf("restore on empty stack changed state")
	}
}

func TestTrackerSingularFallback(t *testing.T) {
	tr := NewTransformTracker()
	tr.Scale(0, 0)
	p := geometry.NewPoint2D(3, 4)
	if got := tr.ToLogical(p); got != p {
		t.Errorf("singular ToLogical = %v, want input %v", got, p)
	}
}
