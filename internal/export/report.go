package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// WriteReport writes a one-page PDF summary of the upload set's
// measurements.
func WriteReport(path string, rows []Row) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	p.SetFont("Helvetica", "B", 14)
	p.Cell(0, 10, "Stenosis Measurement Report")
	p.Ln(12)

	p.SetFont("Helvetica", "B", 9)
	widths := []float64{28, 16, 16, 12, 22, 22, 22, 22}
	headers := []string{"Patient", "Prim", "Sec", "Frame", "Img Diam %", "Img Area %", "Mask Diam %", "Mask Area %"}
	for i, h := range headers {
		p.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	p.Ln(-1)

	p.SetFont("Helvetica", "", 9)
	for _, r := range rows {
		cells := []string{
			r.Identity.Patient,
			fmt.Sprintf("%g", r.Identity.PrimaryAngle),
			fmt.Sprintf("%g", r.Identity.SecondaryAngle),
			fmt.Sprintf("%d", r.Identity.Frame),
			pctCell(r.ImageResult.DiameterPct, r.ImageOK),
			pctCell(r.ImageResult.AreaPct, r.ImageOK),
			pctCell(r.MaskResult.DiameterPct, r.MaskOK),
			pctCell(r.MaskResult.AreaPct, r.MaskOK),
		}
		for i, c := range cells {
			p.CellFormat(widths[i], 6, c, "1", 0, "C", false, 0, "")
		}
		p.Ln(-1)
	}

	s := Summarize(rows)
	if s.Frames > 0 {
		p.Ln(6)
		p.SetFont("Helvetica", "", 10)
		p.Cell(0, 6, fmt.Sprintf("Mask diameter stenosis over %d frame(s): %.2f%% +/- %.2f",
			s.Frames, s.MeanDiameter, s.StdDiameter))
		p.Ln(6)
		p.Cell(0, 6, fmt.Sprintf("Mask area stenosis over %d frame(s): %.2f%% +/- %.2f",
			s.Frames, s.MeanArea, s.StdArea))
	}

	return p.OutputFileAndClose(path)
}

func pctCell(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
