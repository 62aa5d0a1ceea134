package advect

import "github.com/voxel-lab/smokesim/internal/grid"

// Velocity performs semi-Lagrangian self-advection of the staggered
// velocity field. It first snapshots (u,v,w) into (u0,v0,w0), then for
// every face traces the characteristic back through the snapshot
// velocity and resamples the matching prior component there.
//
// Running this with a zero velocity field is the identity: every face
// position back-traces to itself (dt*0 == 0) and every prior component
// it resamples is zero.
func Velocity(f *grid.Fields, dt float64) {
	f.U0.CopyFrom(f.U)
	f.V0.CopyFrom(f.V)
	f.W0.CopyFrom(f.W)

	cfg := f.Cfg
	h := cfg.H

	cfg.ForEachK(2, func(k int) {
		z := (float64(k) + 0.5) * h
		for j := 0; j < cfg.Ny; j++ {
			y := (float64(j) + 0.5) * h
			for i := 0; i < cfg.Nx; i++ {
				x := float64(i) * h
				f.U.Set(i, j, k, backtraceSample(f, h, dt, x, y, z, UOffset))
			}
		}
	})

	cfg.ForEachK(2, func(k int) {
		z := (float64(k) + 0.5) * h
		for j := 0; j < cfg.Ny; j++ {
			y := float64(j) * h
			for i := 0; i < cfg.Nx; i++ {
				x := (float64(i) + 0.5) * h
				f.V.Set(i, j, k, backtraceSample(f, h, dt, x, y, z, VOffset))
			}
		}
	})

	for k := 0; k < cfg.Nz; k++ {
		z := float64(k) * h
		for j := 0; j < cfg.Ny; j++ {
			y := (float64(j) + 0.5) * h
			for i := 0; i < cfg.Nx; i++ {
				x := (float64(i) + 0.5) * h
				f.W.Set(i, j, k, backtraceSample(f, h, dt, x, y, z, WOffset))
			}
		}
	}
}

// backtraceSample samples the previous-step velocity at (x,y,z) to
// find the characteristic's origin, then resamples the field named by
// off (u0, v0, or w0) at that origin.
func backtraceSample(f *grid.Fields, h, dt, x, y, z float64, off Offset) float64 {
	cfg := f.Cfg
	u := Sample(f.U0, cfg, UOffset, x, y, z)
	v := Sample(f.V0, cfg, VOffset, x, y, z)
	w := Sample(f.W0, cfg, WOffset, x, y, z)

	px, py, pz := x-dt*u, y-dt*v, z-dt*w

	switch off {
	case UOffset:
		return Sample(f.U0, cfg, UOffset, px, py, pz)
	case VOffset:
		return Sample(f.V0, cfg, VOffset, px, py, pz)
	default:
		return Sample(f.W0, cfg, WOffset, px, py, pz)
	}
}
