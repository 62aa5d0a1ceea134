package transparency

import (
	"math"

	"github.com/voxel-lab/smokesim/internal/grid"
)

// Light describes the direction pointing toward the light source and
// the extinction factor applied to accumulated density.
type Light struct {
	X, Y, Z float64
	Factor  float64
}

// Accumulate sweeps the grid front-to-back along whichever axis the
// light direction is most aligned with, accumulating optical depth
// (density integrated along the ray) and writing
// transparency = exp(-factor*depth) at every cell. The sweep starts at
// the face nearest the light (depth 0) and advances away from it, so
// transparency is non-increasing as depth grows, so cells shadowed by
// denser smoke closer to the light are always at least as dark as
// their occluders.
func Accumulate(f *grid.Fields, light Light) {
	cfg := f.Cfg
	axis, sign := dominantAxis(light)

	switch axis {
	case 0:
		sweepX(f, cfg, sign, light.Factor)
	case 1:
		sweepY(f, cfg, sign, light.Factor)
	default:
		sweepZ(f, cfg, sign, light.Factor)
	}
}

// dominantAxis returns which of x/y/z the light direction is most
// aligned with (0,1,2) and the sign of that component: +1 means the
// light sits on the high-index side of that axis, -1 the low-index
// side.
func dominantAxis(l Light) (axis int, sign float64) {
	ax, ay, az := math.Abs(l.X), math.Abs(l.Y), math.Abs(l.Z)
	switch {
	case ax >= ay && ax >= az:
		return 0, signOf(l.X)
	case ay >= ax && ay >= az:
		return 1, signOf(l.Y)
	default:
		return 2, signOf(l.Z)
	}
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func sweepX(f *grid.Fields, cfg grid.Config, sign, factor float64) {
	h := cfg.H
	cfg.ForEachK(2, func(k int) {
		for j := 0; j < cfg.Ny; j++ {
			depth := 0.0
			if sign > 0 {
				for i := cfg.Nx - 1; i >= 0; i-- {
					depth += f.Density.At(i, j, k) * h
					f.Transparency.Set(i, j, k, math.Exp(-factor*depth))
				}
			} else {
				for i := 0; i < cfg.Nx; i++ {
					depth += f.Density.At(i, j, k) * h
					f.Transparency.Set(i, j, k, math.Exp(-factor*depth))
				}
			}
		}
	})
}

func sweepY(f *grid.Fields, cfg grid.Config, sign, factor float64) {
	h := cfg.H
	grid.ParallelFor(cfg.Nx, 2, func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			for k := 0; k < cfg.Nz; k++ {
				depth := 0.0
				if sign > 0 {
					for j := cfg.Ny - 1; j >= 0; j-- {
						depth += f.Density.At(i, j, k) * h
						f.Transparency.Set(i, j, k, math.Exp(-factor*depth))
					}
				} else {
					for j := 0; j < cfg.Ny; j++ {
						depth += f.Density.At(i, j, k) * h
						f.Transparency.Set(i, j, k, math.Exp(-factor*depth))
					}
				}
			}
		}
	})
}

func sweepZ(f *grid.Fields, cfg grid.Config, sign, factor float64) {
	h := cfg.H
	grid.ParallelFor(cfg.Nx, 2, func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			for j := 0; j < cfg.Ny; j++ {
				depth := 0.0
				if sign > 0 {
					for k := cfg.Nz - 1; k >= 0; k-- {
						depth += f.Density.At(i, j, k) * h
						f.Transparency.Set(i, j, k, math.Exp(-factor*depth))
					}
				} else {
					for k := 0; k < cfg.Nz; k++ {
						depth += f.Density.At(i, j, k) * h
						f.Transparency.Set(i, j, k, math.Exp(-factor*depth))
					}
				}
			}
		}
	})
}
