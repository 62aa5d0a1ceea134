// Package compute provides the device-backend capability set a
// pressure-solve matvec kernel runs against: upload is implicit (the
// backend reads the caller's slices directly), run is ApplySPD, and
// download is implicit (results land in the caller's out slice). A
// GPU backend is selected automatically when built with the gpu tag
// and available at runtime; otherwise every call falls back to the
// CPU backend.
package compute

import "github.com/voxel-lab/smokesim/internal/grid"

// Backend applies the cached 7-point Laplacian's SPD form
// (out = -L*x) against a dense vector, the sole kernel in the
// pressure solve expensive enough to warrant an accelerator path.
type Backend interface {
	Name() string
	Available() bool
	ApplySPD(cfg grid.Config, degree []int32, x, out []float64)
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

// SetBackend installs b as the active backend, cleaning up whatever
// backend was active before.
func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

// GetBackend returns the currently active backend.
func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend prefers the GPU backend when it reports itself
// available, falling back to CPU otherwise.
func AutoSelectBackend() Backend {
	gpu := NewGPUBackend()
	if gpu.Available() {
		return gpu
	}
	return NewCPUBackend()
}
