package advect

import "github.com/voxel-lab/smokesim/internal/grid"

// Scalar performs semi-Lagrangian advection of density and
// temperature using the just-projected velocity. It snapshots (u,v,w)
// into (u0,v0,w0) and density/temperature into density0/temperature0,
// then for every cell center traces back through the snapshot
// velocity and resamples both scalars there.
func Scalar(f *grid.Fields, dt float64) {
	f.U0.CopyFrom(f.U)
	f.V0.CopyFrom(f.V)
	f.W0.CopyFrom(f.W)
	f.Density0.CopyFrom(f.Density)
	f.Temperature0.CopyFrom(f.Temperature)

	cfg := f.Cfg
	h := cfg.H

	cfg.ForEachK(2, func(k int) {
		z := (float64(k) + 0.5) * h
		for j := 0; j < cfg.Ny; j++ {
			y := (float64(j) + 0.5) * h
			for i := 0; i < cfg.Nx; i++ {
				x := (float64(i) + 0.5) * h

				u := Sample(f.U0, cfg, UOffset, x, y, z)
				v := Sample(f.V0, cfg, VOffset, x, y, z)
				w := Sample(f.W0, cfg, WOffset, x, y, z)

				px, py, pz := x-dt*u, y-dt*v, z-dt*w

				f.Density.Set(i, j, k, Sample(f.Density0, cfg, CenterOffset, px, py, pz))
				f.Temperature.Set(i, j, k, Sample(f.Temperature0, cfg, CenterOffset, px, py, pz))
			}
		}
	})
}
