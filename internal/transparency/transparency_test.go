package transparency

import (
	"testing"

	"github.com/voxel-lab/smokesim/internal/grid"
)

func TestAccumulateZeroDensityIsFullyTransparent(t *testing.T) {
	cfg := grid.Config{Nx: 6, Ny: 6, Nz: 6, H: 1}
	f := grid.NewFields(cfg, 273)

	Accumulate(f, Light{X: 0, Y: 1, Z: 0, Factor: 1})

	for i := 0; i < cfg.Cells(); i++ {
		if f.Transparency.Raw()[i] != 1 {
			t.Fatalf("cell %d transparency=%v, want 1 with zero density", i, f.Transparency.Raw()[i])
		}
	}
}

func TestAccumulateNonIncreasingAlongNegativeY(t *testing.T) {
	cfg := grid.Config{Nx: 4, Ny: 8, Nz: 4, H: 1}
	f := grid.NewFields(cfg, 273)
	for k := 0; k < cfg.Nz; k++ {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				f.Density.Set(i, j, k, 0.2)
			}
		}
	}

	Accumulate(f, Light{X: 0, Y: 1, Z: 0, Factor: 1})

	for k := 0; k < cfg.Nz; k++ {
		for i := 0; i < cfg.Nx; i++ {
			prev := f.Transparency.At(i, cfg.Ny-1, k)
			for j := cfg.Ny - 2; j >= 0; j-- {
				cur := f.Transparency.At(i, j, k)
				if cur > prev+1e-12 {
					t.Fatalf("transparency increased moving toward -y at (%d,%d,%d): %v -> %v", i, j, k, prev, cur)
				}
				prev = cur
			}
		}
	}
}

func TestAccumulateDominantAxisSelection(t *testing.T) {
	axis, sign := dominantAxis(Light{X: -2, Y: 1, Z: 0.5})
	if axis != 0 || sign != -1 {
		t.Fatalf("got axis=%d sign=%v, want axis=0 sign=-1", axis, sign)
	}
}
