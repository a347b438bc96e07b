// Package frame pairs a raw angiographic image with its segmentation mask and
// carries the acquisition identity shared by the two.
package frame

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"angio-caliper/internal/measure"

	"github.com/google/uuid"
)

// namePattern matches image filenames of the form
// <patient>_<primary-angle>_<secondary-angle>_<frame>, with signed decimal
// angles in degrees.
var namePattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9-]*)_(-?\d+(?:\.\d+)?)_(-?\d+(?:\.\d+)?)_(\d+)$`)

// Identity is the acquisition metadata a frame derives from its image
// filename: patient id, the two gantry angles, and the cine frame number.
type Identity struct {
	Patient        string
	PrimaryAngle   float64
	SecondaryAngle float64
	Frame          int
}

func (id Identity) String() string {
	return fmt.Sprintf("%s %g/%g #%d", id.Patient, id.PrimaryAngle, id.SecondaryAngle, id.Frame)
}

// ParseIdentity derives the identity from an image path.
func ParseIdentity(path string) (Identity, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	m := namePattern.FindStringSubmatch(base)
	if m == nil {
		return Identity{}, fmt.Errorf("filename %q does not match <patient>_<angle>_<angle>_<frame>", base)
	}

	primary, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Identity{}, fmt.Errorf("bad primary angle in %q: %w", base, err)
	}
	secondary, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Identity{}, fmt.Errorf("bad secondary angle in %q: %w", base, err)
	}
	number, err := strconv.Atoi(m[4])
	if err != nil {
		return Identity{}, fmt.Errorf("bad frame number in %q: %w", base, err)
	}

	return Identity{
		Patient:        m[1],
		PrimaryAngle:   primary,
		SecondaryAngle: secondary,
		Frame:          number,
	}, nil
}

// MaskPath returns the path of the mask paired with an image: same directory
// and extension, base name extended with the suffix.
func MaskPath(imagePath, suffix string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + suffix + ext
}

// IsMaskPath reports whether a path names a mask rather than a raw image.
func IsMaskPath(path, suffix string) bool {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(base, suffix)
}

// Frame owns the paired image and mask surfaces for one acquisition. Frames
// are created when a file pair is uploaded and replaced wholesale with the
// upload set.
type Frame struct {
	ID       uuid.UUID
	Identity Identity

	Image *measure.Surface
	Mask  *measure.Surface
}

// New creates a frame with two fresh surfaces sharing the configuration.
func New(identity Identity, cfg measure.Config) *Frame {
	return &Frame{
		ID:       uuid.New(),
		Identity: identity,
		Image:    measure.NewSurface(cfg),
		Mask:     measure.NewSurface(cfg),
	}
}

// Set is the current upload set. Replacing it tears down every prior frame.
type Set struct {
	frames []*Frame
}

// Frames returns the frames in upload order.
func (s *Set) Frames() []*Frame { return s.frames }

// Replace swaps in a new upload set.
func (s *Set) Replace(frames []*Frame) {
	s.frames = frames
}

// Len returns the number of frames.
func (s *Set) Len() int { return len(s.frames) }
