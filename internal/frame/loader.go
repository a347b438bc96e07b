package frame

import (
	"fmt"
	"image"
	"log"

	"angio-caliper/internal/imaging"
	"angio-caliper/internal/measure"
)

// IdentityReader recovers the acquisition identity from the frame pixels
// themselves (the burned-in text strip) when the filename does not carry it.
type IdentityReader interface {
	ReadIdentity(img image.Image) (Identity, error)
}

// Loader builds frames from image/mask file pairs.
type Loader struct {
	cfg      measure.Config
	fallback IdentityReader // may be nil
}

// NewLoader creates a loader. The fallback reader is optional.
func NewLoader(cfg measure.Config, fallback IdentityReader) *Loader {
	return &Loader{cfg: cfg, fallback: fallback}
}

// Load builds a frame from an image path, locating the mask by the
// configured suffix. Both backgrounds are captured before the frame is
// returned, so the frame's surfaces are immediately ready for propagation
// and export.
func (ld *Loader) Load(imagePath string) (*Frame, error) {
	img, err := imaging.Load(imagePath)
	if err != nil {
		return nil, err
	}

	identity, err := ParseIdentity(imagePath)
	if err != nil {
		identity, err = ld.readFallback(imagePath, img, err)
		if err != nil {
			return nil, err
		}
	}

	maskPath := MaskPath(imagePath, ld.cfg.MaskSuffix)
	mask, err := imaging.BinarizeMaskFile(maskPath, imaging.DefaultMaskThreshold)
	if err != nil {
		return nil, fmt.Errorf("mask for %s: %w", imagePath, err)
	}

	f := New(identity, ld.cfg)
	f.Image.SetBackground(imaging.CaptureRGBA(img))
	f.Mask.SetBackground(mask)
	return f, nil
}

// LoadAll builds frames for every image path that is not itself a mask.
// Unloadable pairs are logged and skipped.
func (ld *Loader) LoadAll(paths []string) []*Frame {
	var frames []*Frame
	for _, p := range paths {
		if !imaging.IsSupportedFormat(p) || IsMaskPath(p, ld.cfg.MaskSuffix) {
			continue
		}
		f, err := ld.Load(p)
		if err != nil {
			log.Printf("skipping %s: %v", p, err)
			continue
		}
		frames = append(frames, f)
	}
	return frames
}

func (ld *Loader) readFallback(path string, img image.Image, parseErr error) (Identity, error) {
	if ld.fallback == nil {
		return Identity{}, parseErr
	}
	identity, err := ld.fallback.ReadIdentity(img)
	if err != nil {
		return Identity{}, fmt.Errorf("identity for %s: %w (filename: %v)", path, err, parseErr)
	}
	log.Printf("recovered identity for %s from burned-in text: %s", path, identity)
	return identity, nil
}
