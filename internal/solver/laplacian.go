package solver

import (
	"github.com/voxel-lab/smokesim/internal/compute"
	"github.com/voxel-lab/smokesim/internal/grid"
)

// Laplacian is the Nx*Ny*Nz 7-point 3-D discrete Laplacian with
// Neumann boundaries: diagonal coefficient -(number of interior
// neighbors), +1 for each existing neighbor. It is symmetric, built
// once, and shared read-only across every subsequent solve.
//
// The operator is applied matrix-free from the cached degree per cell;
// the conjugate-gradient solver in this package works against the
// equivalent positive semi-definite operator -L (ApplySPD), since CG
// requires a positive (semi-)definite system and -L has exactly the
// same solution set for L*x=b as the sign-flipped system -L*x=-b.
type Laplacian struct {
	cfg    grid.Config
	degree []int32

	// Scratch buffers for Project and Solve, sized once here so
	// neither stage allocates per call.
	scratchB    []float64
	scratchNegB []float64
	scratchX    []float64
	scratchR    []float64
	scratchAx   []float64
	scratchZ    []float64
	scratchP    []float64
	scratchAp   []float64
}

// NewLaplacian caches the degree (number of existing neighbors) of
// every cell against cfg, and preallocates every scratch buffer the
// pressure solve needs.
func NewLaplacian(cfg grid.Config) *Laplacian {
	n := cfg.Cells()
	l := &Laplacian{
		cfg:         cfg,
		degree:      make([]int32, n),
		scratchB:    make([]float64, n),
		scratchNegB: make([]float64, n),
		scratchX:    make([]float64, n),
		scratchR:    make([]float64, n),
		scratchAx:   make([]float64, n),
		scratchZ:    make([]float64, n),
		scratchP:    make([]float64, n),
		scratchAp:   make([]float64, n),
	}
	for k := 0; k < cfg.Nz; k++ {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				d := int32(0)
				if i > 0 {
					d++
				}
				if i < cfg.Nx-1 {
					d++
				}
				if j > 0 {
					d++
				}
				if j < cfg.Ny-1 {
					d++
				}
				if k > 0 {
					d++
				}
				if k < cfg.Nz-1 {
					d++
				}
				l.degree[cfg.Index(i, j, k)] = d
			}
		}
	}
	return l
}

// ApplySPD computes out = -L*x = diag(degree)*x - (sum of neighbors),
// the symmetric positive semi-definite form the CG solve runs
// against. The actual sweep runs on whichever compute.Backend is
// active, so this is the one kernel in the solve that can move to an
// accelerator without changing anything else in this package.
func (l *Laplacian) ApplySPD(x, out []float64) {
	compute.GetBackend().ApplySPD(l.cfg, l.degree, x, out)
}

// Degree returns the cached neighbor count for cell index idx, used by
// the Jacobi preconditioner.
func (l *Laplacian) Degree(idx int) int32 { return l.degree[idx] }
