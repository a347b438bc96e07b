package measure

import (
	"math"
	"testing"

	"angio-caliper/pkg/geometry"
)

func TestComputeStenosis(t *testing.T) {
	tests := []struct {
		name     string
		lengths  []float64
		wantDiam float64
		wantArea float64
		wantOK   bool
	}{
		{"uniform caliber", []float64{10, 10, 10}, 100, 100, true},
		{"tight lesion", []float64{4, 10, 10}, 40, 16, true},
		{"unsorted input", []float64{10, 4, 10}, 40, 16, true},
		{"two lines", []float64{4, 10}, 0, 0, false},
		{"no lines", nil, 0, 0, false},
		{"all zero", []float64{0, 0, 0}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeStenosis(tt.lengths)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got.DiameterPct-tt.wantDiam) > 1e-9 {
				t.Errorf("diameter = %v, want %v", got.DiameterPct, tt.wantDiam)
			}
			if math.Abs(got.AreaPct-tt.wantArea) > 1e-9 {
				t.Errorf("area = %v, want %v", got.AreaPct, tt.wantArea)
			}
		})
	}
}

func TestComputeStenosisDoesNotMutateInput(t *testing.T) {
	lengths := []float64{10, 4, 7}
	ComputeStenosis(lengths)
	if lengths[0] != 10 || lengths[1] != 4 || lengths[2] != 7 {
		t.Errorf("input mutated: %v", lengths)
	}
}

func TestSurfaceStenosis(t *testing.T) {
	s := NewSurface(DefaultConfig())

	if _, ok := s.Stenosis(); ok {
		t.Error("stenosis computable with no lines")
	}

	s.AddLine(NewFluidLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0)), true)
	s.AddLine(NewFluidLine(geometry.NewPoint2D(0, 1), geometry.NewPoint2D(10, 1)), true)
	if _, ok := s.Stenosis(); ok {
		t.Error("stenosis computable with a partial triple")
	}

	s.AddLine(NewFluidLine(geometry.NewPoint2D(0, 2), geometry.NewPoint2D(4, 2)), true)
	got, ok := s.Stenosis()
	if !ok {
		t.Fatal("stenosis not computable with a full triple")
	}
	if math.Abs(got.DiameterPct-40) > 1e-9 || math.Abs(got.AreaPct-16) > 1e-9 {
		t.Errorf("stenosis = %+v, want 40%%/16%%", got)
	}
}
