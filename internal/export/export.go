// Package export writes measurement spreadsheets, composite bitmaps, zip
// bundles, and PDF reports for the current upload set.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"angio-caliper/internal/frame"
	"angio-caliper/internal/measure"
)

// Row is one spreadsheet line: the frame identity plus the measured triple
// and derived percentages for each surface that holds a complete set.
type Row struct {
	Identity frame.Identity

	ImageLengths []float64
	ImageResult  measure.Stenosis
	ImageOK      bool

	MaskLengths []float64
	MaskResult  measure.Stenosis
	MaskOK      bool
}

// BuildRow collects the measurements of one frame.
func BuildRow(f *frame.Frame) Row {
	r := Row{Identity: f.Identity}
	r.ImageLengths = surfaceLengths(f.Image)
	r.ImageResult, r.ImageOK = f.Image.Stenosis()
	r.MaskLengths = surfaceLengths(f.Mask)
	r.MaskResult, r.MaskOK = f.Mask.Stenosis()
	return r
}

// BuildRows collects measurements for every frame in the set.
func BuildRows(frames []*frame.Frame) []Row {
	rows := make([]Row, 0, len(frames))
	for _, f := range frames {
		rows = append(rows, BuildRow(f))
	}
	return rows
}

// surfaceLengths returns the lengths of the surface's complete line triple,
// preferring the pixel set, or nil when no complete set exists. Variants are
// never mixed into one triple.
func surfaceLengths(s *measure.Surface) []float64 {
	lines := s.PixelLines()
	if len(lines) != s.Config().MaxLines {
		lines = s.Lines()
	}
	if len(lines) != s.Config().MaxLines {
		return nil
	}
	out := make([]float64, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Length())
	}
	return out
}

// WriteCSV writes the measurement sheet. Percentages are rounded here for
// display only; the stored values keep full precision.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	header := []string{
		"patient", "primary_angle", "secondary_angle", "frame",
		"image_len_1", "image_len_2", "image_len_3", "image_diameter_pct", "image_area_pct",
		"mask_len_1", "mask_len_2", "mask_len_3", "mask_diameter_pct", "mask_area_pct",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.Identity.Patient,
			fmt.Sprintf("%g", r.Identity.PrimaryAngle),
			fmt.Sprintf("%g", r.Identity.SecondaryAngle),
			fmt.Sprintf("%d", r.Identity.Frame),
		}
		record = append(record, tripleCells(r.ImageLengths, r.ImageResult, r.ImageOK)...)
		record = append(record, tripleCells(r.MaskLengths, r.MaskResult, r.MaskOK)...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func tripleCells(lengths []float64, result measure.Stenosis, ok bool) []string {
	cells := make([]string, 5)
	for i := 0; i < 3; i++ {
		if i < len(lengths) {
			cells[i] = fmt.Sprintf("%.4f", lengths[i])
		}
	}
	if ok {
		cells[3] = fmt.Sprintf("%.2f", result.DiameterPct)
		cells[4] = fmt.Sprintf("%.2f", result.AreaPct)
	}
	return cells
}
