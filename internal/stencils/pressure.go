package stencils

import "github.com/voxel-lab/smokesim/internal/grid"

// ApplyPressureGradient subtracts the pressure gradient from velocity,
// making the field discretely divergence-free:
//
//	u(i+1,j,k) -= dt * (pressure(i+1,j,k)-pressure(i,j,k)) / h
//
// and analogously for v, w. Boundary faces are untouched, matching the
// Neumann boundary condition used by the pressure solve.
func ApplyPressureGradient(f *grid.Fields, dt, h float64) {
	cfg := f.Cfg
	scale := dt / h

	cfg.ForEachK(2, func(k int) {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx-1; i++ {
				grad := f.Pressure.At(i+1, j, k) - f.Pressure.At(i, j, k)
				f.U.Add(i+1, j, k, -scale*grad)
			}
		}
	})

	cfg.ForEachK(2, func(k int) {
		for j := 0; j < cfg.Ny-1; j++ {
			for i := 0; i < cfg.Nx; i++ {
				grad := f.Pressure.At(i, j+1, k) - f.Pressure.At(i, j, k)
				f.V.Add(i, j+1, k, -scale*grad)
			}
		}
	})

	for k := 0; k < cfg.Nz-1; k++ {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				grad := f.Pressure.At(i, j, k+1) - f.Pressure.At(i, j, k)
				f.W.Add(i, j, k+1, -scale*grad)
			}
		}
	}
}
