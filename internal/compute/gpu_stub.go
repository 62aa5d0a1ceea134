//go:build !gpu

package compute

import "github.com/voxel-lab/smokesim/internal/grid"

// GPUBackend is the no-device stub compiled by default; it reports
// itself unavailable and routes every call to the CPU backend.
type GPUBackend struct{}

func NewGPUBackend() *GPUBackend { return &GPUBackend{} }

func (g *GPUBackend) Name() string    { return "gpu (not available)" }
func (g *GPUBackend) Available() bool { return false }
func (g *GPUBackend) Cleanup()        {}

func (g *GPUBackend) ApplySPD(cfg grid.Config, degree []int32, x, out []float64) {
	NewCPUBackend().ApplySPD(cfg, degree, x, out)
}
