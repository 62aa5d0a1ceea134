package emit

import (
	"math/rand"
	"testing"

	"github.com/voxel-lab/smokesim/internal/grid"
)

func TestEmitTopFillsOnlySourceBox(t *testing.T) {
	cfg := grid.Config{Nx: 10, Ny: 10, Nz: 10, H: 1}
	f := grid.NewFields(cfg, 273)
	src := Source{
		Pos: Top, SizeX: 2, SizeY: 2, SizeZ: 2, YMargin: 1,
		InitDensity: 0.7, InitVelocity: 3,
	}
	rng := rand.New(rand.NewSource(1))

	Emit(f, src, rng)

	jLo, jHi := sourceRange(cfg.Ny, src)
	x0, x1 := centeredRange(cfg.Nx, src.SizeX)
	z0, z1 := centeredRange(cfg.Nz, src.SizeZ)

	inBox := func(i, j, k int) bool {
		return i >= x0 && i < x1 && j >= jLo && j < jHi && k >= z0 && k < z1
	}

	for k := 0; k < cfg.Nz; k++ {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				d := f.Density.At(i, j, k)
				if inBox(i, j, k) {
					if d != src.InitDensity {
						t.Fatalf("cell (%d,%d,%d) inside box got density %v, want %v", i, j, k, d, src.InitDensity)
					}
					if v := f.V.At(i, j, k); v < 0 || v > src.InitVelocity {
						t.Fatalf("cell (%d,%d,%d) v=%v out of [0,%v]", i, j, k, v, src.InitVelocity)
					}
				} else if d != 0 {
					t.Fatalf("cell (%d,%d,%d) outside box got nonzero density %v", i, j, k, d)
				}
			}
		}
	}
}

func TestEmitBottomVelocityIsNegative(t *testing.T) {
	cfg := grid.Config{Nx: 6, Ny: 6, Nz: 6, H: 1}
	f := grid.NewFields(cfg, 273)
	src := Source{
		Pos: Bottom, SizeX: 2, SizeY: 1, SizeZ: 2, YMargin: 1,
		InitDensity: 0.5, InitVelocity: 2,
	}
	rng := rand.New(rand.NewSource(2))

	Emit(f, src, rng)

	jLo, jHi := sourceRange(cfg.Ny, src)
	x0, x1 := centeredRange(cfg.Nx, src.SizeX)
	z0, z1 := centeredRange(cfg.Nz, src.SizeZ)
	for k := z0; k < z1; k++ {
		for j := jLo; j < jHi; j++ {
			for i := x0; i < x1; i++ {
				if v := f.V.At(i, j, k); v != -src.InitVelocity {
					t.Fatalf("bottom emitter v=%v, want %v", v, -src.InitVelocity)
				}
			}
		}
	}
}

func TestFixOccupancyZeroesOnlyOccupiedCells(t *testing.T) {
	cfg := grid.Config{Nx: 4, Ny: 4, Nz: 4, H: 1}
	f := grid.NewFields(cfg, 273)

	for k := 0; k < cfg.Nz; k++ {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				f.U.Set(i, j, k, 1)
				f.V.Set(i, j, k, 1)
				f.W.Set(i, j, k, 1)
				f.Density.Set(i, j, k, 0.8)
				f.Temperature.Set(i, j, k, 900)
			}
		}
	}
	f.Occupied.Set(1, 1, 1, true)

	FixOccupancy(f, 273)

	if f.Density.At(1, 1, 1) != 0 || f.Temperature.At(1, 1, 1) != 273 {
		t.Fatalf("occupied cell not reset")
	}
	if f.U.At(1, 1, 1) != 0 || f.V.At(1, 1, 1) != 0 || f.W.At(1, 1, 1) != 0 {
		t.Fatalf("occupied cell velocity not zeroed")
	}
	if f.Density.At(2, 2, 2) != 0.8 || f.Temperature.At(2, 2, 2) != 900 {
		t.Fatalf("unoccupied cell was modified")
	}
}
