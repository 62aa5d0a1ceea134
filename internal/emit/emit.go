package emit

import (
	"math/rand"

	"github.com/voxel-lab/smokesim/internal/grid"
)

// Position selects which face of the grid an emitter's source box sits
// against.
type Position int

const (
	Top Position = iota
	Bottom
)

// Source describes a box of cells re-seeded every emitting step.
type Source struct {
	Pos          Position
	SizeX        int
	SizeY        int
	SizeZ        int
	YMargin      int
	InitDensity  float64
	InitVelocity float64
}

// Emit reseeds every cell inside the source box with density, a
// temperature drawn uniformly from [800,1000), and a v-face velocity
// of InitVelocity*U(0,1) for a Top emitter or -InitVelocity for a
// Bottom one. u and w are left untouched. rng supplies the draws so
// callers can make emission reproducible.
func Emit(f *grid.Fields, src Source, rng *rand.Rand) {
	cfg := f.Cfg

	jLo, jHi := sourceRange(cfg.Ny, src)
	x0, x1 := centeredRange(cfg.Nx, src.SizeX)
	z0, z1 := centeredRange(cfg.Nz, src.SizeZ)

	for k := z0; k < z1; k++ {
		for j := jLo; j < jHi; j++ {
			for i := x0; i < x1; i++ {
				f.Density.Set(i, j, k, src.InitDensity)
				f.Temperature.Set(i, j, k, 800+rng.Float64()*200)

				var v float64
				if src.Pos == Top {
					v = src.InitVelocity * rng.Float64()
				} else {
					v = -src.InitVelocity
				}
				f.V.Set(i, j, k, v)
			}
		}
	}
}

// sourceRange returns the half-open [lo,hi) range of j the source box
// occupies for the configured emitter position and vertical margin.
func sourceRange(ny int, src Source) (int, int) {
	if src.Pos == Top {
		lo := src.YMargin
		return lo, lo + src.SizeY
	}
	hi := ny - src.YMargin
	return hi - src.SizeY, hi
}

// centeredRange returns the half-open range of size centered within n.
func centeredRange(n, size int) (int, int) {
	lo := (n - size) / 2
	if lo < 0 {
		lo = 0
	}
	hi := lo + size
	if hi > n {
		hi = n
	}
	return lo, hi
}

// FixOccupancy forces every occupied cell to rest: u, v, w at (i,j,k)
// are zeroed (the -x/-y/-z faces of the cell under the staggered
// storage convention; the +x/+y/+z faces belong to the neighboring
// cell's indices and are untouched here), density is zeroed, and
// temperature is reset to ambient. Occupancy is a static obstacle mask
// the core never mutates.
func FixOccupancy(f *grid.Fields, tAmbient float64) {
	cfg := f.Cfg
	cfg.ForEachK(2, func(k int) {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				if !f.Occupied.At(i, j, k) {
					continue
				}
				f.U.Set(i, j, k, 0)
				f.V.Set(i, j, k, 0)
				f.W.Set(i, j, k, 0)
				f.Density.Set(i, j, k, 0)
				f.Temperature.Set(i, j, k, tAmbient)
			}
		}
	})
}
