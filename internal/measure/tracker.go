package measure

import (
	"angio-caliper/pkg/geometry"
)

// TransformTracker accumulates every scale, rotate, and translate applied to
// a drawing surface into a running forward affine matrix, and exposes the
// inverse mapping from device (pointer) coordinates to logical drawing
// coordinates. It replaces the usual trick of intercepting the rendering
// context's transform calls: the tracker owns the matrix outright and the
// surface routes all transforms through it.
type TransformTracker struct {
	matrix geometry.AffineTransform
	stack  []geometry.AffineTransform
}

// NewTransformTracker creates a tracker holding the identity transform.
func NewTransformTracker() *TransformTracker {
	return &TransformTracker{matrix: geometry.Identity()}
}

// Matrix returns the current forward transform.
func (t *TransformTracker) Matrix() geometry.AffineTransform {
	return t.matrix
}

// SetMatrix replaces the current transform outright.
func (t *TransformTracker) SetMatrix(m geometry.AffineTransform) {
	t.matrix = m
}

// Translate post-multiplies a translation onto the current transform.
func (t *TransformTracker) Translate(dx, dy float64) {
	t.matrix = t.matrix.Compose(geometry.Translation(dx, dy))
}

// Scale post-multiplies a scaling onto the current transform.
func (t *TransformTracker) Scale(sx, sy float64) {
	t.matrix = t.matrix.Compose(geometry.Scaling(sx, sy))
}

// Rotate post-multiplies a rotation onto the current transform.
func (t *TransformTracker) Rotate(radians float64) {
	t.matrix = t.matrix.Compose(geometry.Rotation(radians))
}

// Save pushes a copy of the current transform onto the stack.
func (t *TransformTracker) Save() {
	t.stack = append(t.stack, t.matrix)
}

// Restore pops the stack and adopts that transform. Callers must keep saves
// and restores balanced; restoring with an empty stack leaves the current
// transform untouched.
func (t *TransformTracker) Restore() {
	if len(t.stack) == 0 {
		return
	}
	t.matrix = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
}

// Depth returns the number of saved transforms.
func (t *TransformTracker) Depth() int {
	return len(t.stack)
}

// ToLogical converts a device-space point (pointer position) into logical
// drawing coordinates through the inverse of the current transform. If the
// transform is singular the point is returned unchanged.
func (t *TransformTracker) ToLogical(device geometry.Point2D) geometry.Point2D {
	inv, ok := t.matrix.Inverse()
	if !ok {
		return device
	}
	return inv.Apply(device)
}

// ToDevice converts a logical point into device space through the forward
// transform.
func (t *TransformTracker) ToDevice(logical geometry.Point2D) geometry.Point2D {
	return t.matrix.Apply(logical)
}
