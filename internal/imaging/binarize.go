package imaging

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// DefaultMaskThreshold separates vessel silhouette from background in
// segmentation masks that are not already strictly binary.
const DefaultMaskThreshold uint8 = 128

// BinarizeMaskFile loads a segmentation mask and thresholds it to strict
// opaque black/white, so every pixel is either (0,0,0,255) or
// (255,255,255,255) as the propagation classifier expects.
func BinarizeMaskFile(path string, threshold uint8) (*image.RGBA, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	if mat.Empty() {
		return nil, fmt.Errorf("failed to read mask %s", path)
	}
	defer mat.Close()

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(mat, &binary, float32(threshold), 255, gocv.ThresholdBinary)

	img, err := binary.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert mask: %w", err)
	}
	return forceBinary(CaptureRGBA(img), threshold), nil
}

// BinarizeMask thresholds an already-decoded mask buffer. This is the pure Go
// path used when the mask did not come from a file on disk.
func BinarizeMask(buf *image.RGBA, threshold uint8) *image.RGBA {
	return forceBinary(CaptureRGBA(buf), threshold)
}

// forceBinary snaps every pixel to opaque black or opaque white by luminance.
func forceBinary(buf *image.RGBA, threshold uint8) *image.RGBA {
	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		// Integer approximation of Rec. 601 luma.
		luma := (299*int(pix[i]) + 587*int(pix[i+1]) + 114*int(pix[i+2])) / 1000
		v := uint8(0)
		if luma >= int(threshold) {
			v = 255
		}
		pix[i] = v
		pix[i+1] = v
		pix[i+2] = v
		pix[i+3] = 255
	}
	return buf
}
