package solver

import "github.com/voxel-lab/smokesim/internal/grid"

// Project assembles the divergence right-hand side, solves -L*x = -b
// with the cached Laplacian l, and writes pressure = x*(h/dt).
// Pressure0 is snapshotted before the new pressure overwrites it.
func Project(l *Laplacian, f *grid.Fields, dt float64, tol float64, maxIter int) Result {
	cfg := f.Cfg
	n := cfg.Cells()

	f.Pressure0.CopyFrom(f.Pressure)

	b := l.scratchB[:n]
	assembleDivergence(f, b)

	negB := l.scratchNegB[:n]
	for i := range b {
		negB[i] = -b[i]
	}

	x := l.scratchX[:n]
	copy(x, f.Pressure.Raw())

	res := Solve(l, negB, x, tol, maxIter)

	scale := cfg.H / dt
	for i := 0; i < n; i++ {
		f.Pressure.Raw()[i] = x[i] * scale
	}

	return res
}

// assembleDivergence computes the discrete divergence b(i,j,k) of the
// face-centered velocity, omitting any face that falls outside the
// grid rather than treating it as zero:
//
//	[u(i+1,j,k)*1{i<Nx-1} - u(i,j,k)*1{i>0}] +
//	[v(i,j+1,k)*1{j<Ny-1} - v(i,j,k)*1{j>0}] +
//	[w(i,j,k+1)*1{k<Nz-1} - w(i,j,k)*1{k>0}]
func assembleDivergence(f *grid.Fields, b []float64) {
	cfg := f.Cfg
	grid.ParallelFor(cfg.Nz, 2, func(k0, k1 int) {
		for k := k0; k < k1; k++ {
			for j := 0; j < cfg.Ny; j++ {
				for i := 0; i < cfg.Nx; i++ {
					div := 0.0
					if i < cfg.Nx-1 {
						div += f.U.At(i+1, j, k)
					}
					if i > 0 {
						div -= f.U.At(i, j, k)
					}
					if j < cfg.Ny-1 {
						div += f.V.At(i, j+1, k)
					}
					if j > 0 {
						div -= f.V.At(i, j, k)
					}
					if k < cfg.Nz-1 {
						div += f.W.At(i, j, k+1)
					}
					if k > 0 {
						div -= f.W.At(i, j, k)
					}
					b[cfg.Index(i, j, k)] = div
				}
			}
		}
	})
}
