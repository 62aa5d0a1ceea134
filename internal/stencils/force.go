package stencils

import "github.com/voxel-lab/smokesim/internal/grid"

// ApplyForce pushes the assembled Fx/Fy/Fz into the staggered velocity
// faces:
//
//	u(i+1,j,k) += dt * 0.5*(fx(i,j,k)+fx(i+1,j,k))   for i < Nx-1
//	v(i,j+1,k) += dt * 0.5*(fy(i,j,k)+fy(i,j+1,k))   for j < Ny-1
//	w(i,j,k+1) += dt * 0.5*(fz(i,j,k)+fz(i,j,k+1))   for k < Nz-1
//
// v and w each read their own component (fy, fz); boundary faces
// (index 0 and index N) are never written here and stay at whatever
// the previous stage left them.
func ApplyForce(f *grid.Fields, dt float64) {
	cfg := f.Cfg

	cfg.ForEachK(2, func(k int) {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx-1; i++ {
				avg := 0.5 * (f.Fx.At(i, j, k) + f.Fx.At(i+1, j, k))
				f.U.Add(i+1, j, k, dt*avg)
			}
		}
	})

	cfg.ForEachK(2, func(k int) {
		for j := 0; j < cfg.Ny-1; j++ {
			for i := 0; i < cfg.Nx; i++ {
				avg := 0.5 * (f.Fy.At(i, j, k) + f.Fy.At(i, j+1, k))
				f.V.Add(i, j+1, k, dt*avg)
			}
		}
	})

	for k := 0; k < cfg.Nz-1; k++ {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				avg := 0.5 * (f.Fz.At(i, j, k) + f.Fz.At(i, j, k+1))
				f.W.Add(i, j, k+1, dt*avg)
			}
		}
	}
}
