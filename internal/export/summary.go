package export

import (
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates stenosis percentages across the upload set.
type Summary struct {
	Frames       int // frames with a computable mask triple
	MeanDiameter float64
	StdDiameter  float64
	MeanArea     float64
	StdArea      float64
}

// Summarize computes batch statistics over the mask-side stenosis results,
// which carry the propagated (pixel-exact) measurements. Frames without a
// complete triple are left out.
func Summarize(rows []Row) Summary {
	var diameters, areas []float64
	for _, r := range rows {
		if !r.MaskOK {
			continue
		}
		diameters = append(diameters, r.MaskResult.DiameterPct)
		areas = append(areas, r.MaskResult.AreaPct)
	}

	s := Summary{Frames: len(diameters)}
	if s.Frames == 0 {
		return s
	}
	s.MeanDiameter, s.StdDiameter = stat.MeanStdDev(diameters, nil)
	s.MeanArea, s.StdArea = stat.MeanStdDev(areas, nil)
	if s.Frames == 1 {
		s.StdDiameter, s.StdArea = 0, 0
	}
	return s
}
