package compute

import (
	"runtime"
	"sync"

	"github.com/voxel-lab/smokesim/internal/grid"
)

// CPUBackend applies the Laplacian stencil in parallel over Nz planes
// using a worker per available core, mirroring how every other stage
// in this core splits work across runtime.GOMAXPROCS goroutines.
type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{workers: runtime.NumCPU()}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) ApplySPD(cfg grid.Config, degree []int32, x, out []float64) {
	if cfg.Nz < 2*c.workers {
		c.applySerial(cfg, degree, x, out)
		return
	}
	c.applyParallel(cfg, degree, x, out)
}

func (c *CPUBackend) applySerial(cfg grid.Config, degree []int32, x, out []float64) {
	applyRange(cfg, degree, x, out, 0, cfg.Nz)
}

func (c *CPUBackend) applyParallel(cfg grid.Config, degree []int32, x, out []float64) {
	var wg sync.WaitGroup
	chunk := (cfg.Nz + c.workers - 1) / c.workers
	for start := 0; start < cfg.Nz; start += chunk {
		end := start + chunk
		if end > cfg.Nz {
			end = cfg.Nz
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			applyRange(cfg, degree, x, out, start, end)
		}(start, end)
	}
	wg.Wait()
}

func applyRange(cfg grid.Config, degree []int32, x, out []float64, k0, k1 int) {
	for k := k0; k < k1; k++ {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				idx := cfg.Index(i, j, k)
				sum := float64(degree[idx]) * x[idx]
				if i > 0 {
					sum -= x[cfg.Index(i-1, j, k)]
				}
				if i < cfg.Nx-1 {
					sum -= x[cfg.Index(i+1, j, k)]
				}
				if j > 0 {
					sum -= x[cfg.Index(i, j-1, k)]
				}
				if j < cfg.Ny-1 {
					sum -= x[cfg.Index(i, j+1, k)]
				}
				if k > 0 {
					sum -= x[cfg.Index(i, j, k-1)]
				}
				if k < cfg.Nz-1 {
					sum -= x[cfg.Index(i, j, k+1)]
				}
				out[idx] = sum
			}
		}
	}
}
