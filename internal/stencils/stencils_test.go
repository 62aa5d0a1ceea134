package stencils

import (
	"math"
	"testing"

	"github.com/voxel-lab/smokesim/internal/grid"
)

func newTestFields(n int) *grid.Fields {
	cfg := grid.Config{Nx: n, Ny: n, Nz: n, H: 1}
	return grid.NewFields(cfg, 273)
}

func TestBuoyancyUniform(t *testing.T) {
	f := newTestFields(8)
	f.Density.Fill(0.5)
	f.Temperature.Fill(273) // == ambient

	Buoyancy(f, 9.8, 1.0, 273)

	want := -9.8 * 0.5
	for i := 0; i < f.Fy.Len(); i++ {
		if got := f.Fy.Raw()[i]; math.Abs(got-want) > 1e-12 {
			t.Fatalf("fy = %v, want %v", got, want)
		}
	}
	for i := 0; i < f.Fx.Len(); i++ {
		if f.Fx.Raw()[i] != 0 || f.Fz.Raw()[i] != 0 {
			t.Fatalf("fx/fz should be zero")
		}
	}
}

func TestApplyForceZeroForceIsIdentity(t *testing.T) {
	f := newTestFields(6)
	for i := range f.U.Raw() {
		f.U.Raw()[i] = float64(i)
	}
	before := append([]float64{}, f.U.Raw()...)

	ApplyForce(f, 0.1) // Fx/Fy/Fz are all zero

	for i := range f.U.Raw() {
		if f.U.Raw()[i] != before[i] {
			t.Fatalf("u changed at %d: %v -> %v", i, before[i], f.U.Raw()[i])
		}
	}
}

func TestApplyForceCorrectedStencil(t *testing.T) {
	// v and w must read fy/fz, not fx, at every cell.
	f := newTestFields(4)
	for i := range f.Fx.Raw() {
		f.Fx.Raw()[i] = 100 // large decoy value
	}
	f.Fy.Set(0, 0, 0, 2)
	f.Fy.Set(0, 1, 0, 4)
	f.Fz.Set(0, 0, 0, 6)
	f.Fz.Set(0, 0, 1, 8)

	ApplyForce(f, 1.0)

	if got := f.V.At(0, 1, 0); got != 3 { // 0.5*(2+4)
		t.Fatalf("v = %v, want 3 (fy-derived)", got)
	}
	if got := f.W.At(0, 0, 1); got != 7 { // 0.5*(6+8)
		t.Fatalf("w = %v, want 7 (fz-derived)", got)
	}
}

func TestApplyPressureUniformIsIdentity(t *testing.T) {
	f := newTestFields(6)
	for i := range f.U.Raw() {
		f.U.Raw()[i] = float64(i) * 0.1
	}
	for i := range f.V.Raw() {
		f.V.Raw()[i] = float64(i) * 0.2
	}
	before := append([]float64{}, f.U.Raw()...)

	f.Pressure.Fill(42.0)
	ApplyPressureGradient(f, 0.1, 1.0)

	for i := range f.U.Raw() {
		if f.U.Raw()[i] != before[i] {
			t.Fatalf("u changed under uniform pressure at %d", i)
		}
	}
}

func TestApplyPressureBoundaryUntouched(t *testing.T) {
	f := newTestFields(6)
	f.Pressure.Fill(1.0)
	f.Pressure.Set(3, 3, 3, 5.0)
	ApplyPressureGradient(f, 0.1, 1.0)

	// the x-axis face 0 (u at i=0) is never written.
	for j := 0; j < 6; j++ {
		for k := 0; k < 6; k++ {
			if f.U.At(0, j, k) != 0 {
				t.Fatalf("u(0,%d,%d) written", j, k)
			}
		}
	}
}

func TestVorticityBoundaryUnchangedWhenZero(t *testing.T) {
	f := newTestFields(6)
	VorticityConfinement(f, 0.1, 1.0)
	if f.OmgX.At(0, 0, 0) != 0 {
		t.Fatalf("boundary omega should remain untouched (zero)")
	}
}
