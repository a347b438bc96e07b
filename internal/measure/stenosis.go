package measure

import (
	"math"
	"sort"
)

// Stenosis holds the two derived percentages for one measured triple. The
// narrowest of the three calibers is compared against the average of the
// other two, as a linear ratio and as an areal ratio. No rounding is applied
// here; presentation layers round for display only.
type Stenosis struct {
	DiameterPct float64
	AreaPct     float64
}

// ComputeStenosis derives the percentages from exactly three line lengths.
// Returns ok=false when the triple is incomplete or the reference calibers
// are degenerate.
func ComputeStenosis(lengths []float64) (Stenosis, bool) {
	if len(lengths) != 3 {
		return Stenosis{}, false
	}
	d := make([]float64, 3)
	copy(d, lengths)
	sort.Float64s(d)
	dMin, dA, dB := d[0], d[1], d[2]

	if dA+dB == 0 {
		return Stenosis{}, false
	}

	diameter := 2 * dMin / (dA + dB) * 100

	rMin, rA, rB := dMin/2, dA/2, dB/2
	area := 2 * math.Pi * rMin * rMin / (math.Pi*rA*rA + math.Pi*rB*rB) * 100

	return Stenosis{DiameterPct: diameter, AreaPct: area}, true
}

// Stenosis computes the percentages from the surface's full line triple.
// Variant collections are never mixed: the pixel set is used when complete,
// otherwise the fluid set. ok=false when neither holds a full triple.
func (s *Surface) Stenosis() (Stenosis, bool) {
	var lines []Line
	switch {
	case len(s.pixel) == s.cfg.MaxLines:
		lines = s.pixel
	case len(s.fluid) == s.cfg.MaxLines:
		lines = s.fluid
	default:
		return Stenosis{}, false
	}
	lengths := make([]float64, 0, len(lines))
	for _, l := range lines {
		lengths = append(lengths, l.Length())
	}
	return ComputeStenosis(lengths)
}
