package stencils

import (
	"math"

	"github.com/voxel-lab/smokesim/internal/grid"
)

// VorticityConfinement derotates the staggered velocity into cell
// centers, differentiates it into a vorticity vector, and feeds the
// vorticity magnitude's gradient back as a confinement body force
// accumulated into Fx/Fy/Fz. eps scales the confinement strength; h is
// the voxel spacing.
//
// Only interior cells (1 <= i <= Nx-2, and similarly for j,k) get a
// fresh vorticity value; boundary cells retain whatever they held
// before this call (zero, the first time it runs). Callers must not
// rely on boundary omega.
func VorticityConfinement(f *grid.Fields, eps, h float64) {
	averageVelocity(f)
	computeVorticity(f, h)
	confinementForce(f, eps, h)
}

func averageVelocity(f *grid.Fields) {
	cfg := f.Cfg
	cfg.ForEachK(2, func(k int) {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx-1; i++ {
				f.AvgU.Set(i, j, k, 0.5*(f.U.At(i, j, k)+f.U.At(i+1, j, k)))
			}
		}
	})
	cfg.ForEachK(2, func(k int) {
		for j := 0; j < cfg.Ny-1; j++ {
			for i := 0; i < cfg.Nx; i++ {
				f.AvgV.Set(i, j, k, 0.5*(f.V.At(i, j, k)+f.V.At(i, j+1, k)))
			}
		}
	})
	for k := 0; k < cfg.Nz-1; k++ {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				f.AvgW.Set(i, j, k, 0.5*(f.W.At(i, j, k)+f.W.At(i, j, k+1)))
			}
		}
	}
}

func computeVorticity(f *grid.Fields, h float64) {
	cfg := f.Cfg
	if cfg.Nx < 3 || cfg.Ny < 3 || cfg.Nz < 3 {
		return
	}
	inv2h := 1.0 / (2 * h)
	for k := 1; k < cfg.Nz-1; k++ {
		for j := 1; j < cfg.Ny-1; j++ {
			for i := 1; i < cfg.Nx-1; i++ {
				dWdy := (f.AvgW.At(i, j+1, k) - f.AvgW.At(i, j-1, k)) * inv2h
				dVdz := (f.AvgV.At(i, j, k+1) - f.AvgV.At(i, j, k-1)) * inv2h
				dUdz := (f.AvgU.At(i, j, k+1) - f.AvgU.At(i, j, k-1)) * inv2h
				dWdx := (f.AvgW.At(i+1, j, k) - f.AvgW.At(i-1, j, k)) * inv2h
				dVdx := (f.AvgV.At(i+1, j, k) - f.AvgV.At(i-1, j, k)) * inv2h
				dUdy := (f.AvgU.At(i, j+1, k) - f.AvgU.At(i, j-1, k)) * inv2h

				f.OmgX.Set(i, j, k, dWdy-dVdz)
				f.OmgY.Set(i, j, k, dUdz-dWdx)
				f.OmgZ.Set(i, j, k, dVdx-dUdy)
			}
		}
	}
}

func confinementForce(f *grid.Fields, eps, h float64) {
	cfg := f.Cfg
	if cfg.Nx < 3 || cfg.Ny < 3 || cfg.Nz < 3 {
		return
	}

	mag := f.VortMag
	for k := 1; k < cfg.Nz-1; k++ {
		for j := 1; j < cfg.Ny-1; j++ {
			for i := 1; i < cfg.Nx-1; i++ {
				ox, oy, oz := f.OmgX.At(i, j, k), f.OmgY.At(i, j, k), f.OmgZ.At(i, j, k)
				mag.Set(i, j, k, math.Sqrt(ox*ox+oy*oy+oz*oz))
			}
		}
	}

	inv2h := 1.0 / (2 * h)
	for k := 1; k < cfg.Nz-1; k++ {
		for j := 1; j < cfg.Ny-1; j++ {
			for i := 1; i < cfg.Nx-1; i++ {
				gx := inv2h * (mag.At(i+1, j, k) - mag.At(i-1, j, k))
				gy := inv2h * (mag.At(i, j+1, k) - mag.At(i, j-1, k))
				gz := inv2h * (mag.At(i, j, k+1) - mag.At(i, j, k-1))

				glen := math.Sqrt(gx*gx + gy*gy + gz*gz)
				var nx, ny, nz float64
				if glen != 0 {
					nx, ny, nz = gx/glen, gy/glen, gz/glen
				}

				ox, oy, oz := f.OmgX.At(i, j, k), f.OmgY.At(i, j, k), f.OmgZ.At(i, j, k)
				// f_conf = eps * h * (omega x N)
				cx := eps * h * (oy*nz - oz*ny)
				cy := eps * h * (oz*nx - ox*nz)
				cz := eps * h * (ox*ny - oy*nx)

				f.Fx.Add(i, j, k, cx)
				f.Fy.Add(i, j, k, cy)
				f.Fz.Add(i, j, k, cz)
				f.Vort.Set(i, j, k, math.Sqrt(cx*cx+cy*cy+cz*cz))
			}
		}
	}
}
