package stencils

import "github.com/voxel-lab/smokesim/internal/grid"

// Buoyancy assembles the external-force field from density and
// temperature:
//
//	fx = 0
//	fy = -alpha*density + beta*(temperature - tAmbient)
//	fz = 0
//
// alpha (smoke weight) and beta (thermal buoyancy) must both be
// positive: denser smoke settles (negative fy), warmer-than-ambient
// smoke rises (positive fy). Fx and Fz are cleared so
// VorticityConfinement can accumulate into them before ApplyForce
// reads them.
func Buoyancy(f *grid.Fields, alpha, beta, tAmbient float64) {
	cfg := f.Cfg
	cfg.ForEachK(2, func(k int) {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				d := f.Density.At(i, j, k)
				t := f.Temperature.At(i, j, k)
				f.Fx.Set(i, j, k, 0)
				f.Fy.Set(i, j, k, -alpha*d+beta*(t-tAmbient))
				f.Fz.Set(i, j, k, 0)
			}
		}
	})
}
