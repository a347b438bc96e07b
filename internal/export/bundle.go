package export

import (
	"archive/zip"
	"fmt"
	"image"
	"io"

	"angio-caliper/internal/frame"

	"golang.org/x/image/bmp"
)

// WriteBMP encodes a composite raster as a lossless bitmap.
func WriteBMP(w io.Writer, img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("no composite to encode")
	}
	return bmp.Encode(w, img)
}

// WriteBundle writes a zip archive holding per-frame composite bitmaps plus
// the measurement sheet. Entries are named by frame id so repeated uploads
// of the same patient never collide. Frames whose backgrounds are not yet
// captured are skipped.
func WriteBundle(w io.Writer, frames []*frame.Frame) error {
	zw := zip.NewWriter(w)

	for _, f := range frames {
		for _, part := range []struct {
			name string
			img  *image.RGBA
		}{
			{fmt.Sprintf("%s_image.bmp", f.ID), f.Image.Composite()},
			{fmt.Sprintf("%s_mask.bmp", f.ID), f.Mask.Composite()},
		} {
			if part.img == nil {
				continue
			}
			entry, err := zw.Create(part.name)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", part.name, err)
			}
			if err := WriteBMP(entry, part.img); err != nil {
				return fmt.Errorf("failed to encode %s: %w", part.name, err)
			}
		}
	}

	sheet, err := zw.Create("measurements.csv")
	if err != nil {
		return fmt.Errorf("failed to create measurement sheet: %w", err)
	}
	if err := WriteCSV(sheet, BuildRows(frames)); err != nil {
		return err
	}

	return zw.Close()
}
