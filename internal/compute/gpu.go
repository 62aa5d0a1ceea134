//go:build gpu

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lkernels -lstdc++
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern void laplacian_apply_gpu(float* x, int* degree, float* out, int nx, int ny, int nz);
*/
import "C"
import "unsafe"

import "github.com/voxel-lab/smokesim/internal/grid"

// GPUBackend uploads x and the cached degree array, runs the matvec
// kernel on the device, and downloads out. The upload/run/download
// contract is the whole of this type's surface; there is no partial
// or lazy synchronization between calls.
type GPUBackend struct {
	available  bool
	deviceName string
}

func NewGPUBackend() *GPUBackend {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &GPUBackend{available: count > 0, deviceName: name}
}

func (g *GPUBackend) Name() string {
	if g.available {
		return "gpu (" + g.deviceName + ")"
	}
	return "gpu (not available)"
}

func (g *GPUBackend) Available() bool { return g.available }
func (g *GPUBackend) Cleanup()        {}

func (g *GPUBackend) ApplySPD(cfg grid.Config, degree []int32, x, out []float64) {
	if !g.available {
		NewCPUBackend().ApplySPD(cfg, degree, x, out)
		return
	}

	n := cfg.Cells()
	xF := make([]float32, n)
	degI := make([]int32, n)
	outF := make([]float32, n)
	for i := 0; i < n; i++ {
		xF[i] = float32(x[i])
		degI[i] = degree[i]
	}

	C.laplacian_apply_gpu(
		(*C.float)(unsafe.Pointer(&xF[0])),
		(*C.int)(unsafe.Pointer(&degI[0])),
		(*C.float)(unsafe.Pointer(&outF[0])),
		C.int(cfg.Nx), C.int(cfg.Ny), C.int(cfg.Nz),
	)

	for i := 0; i < n; i++ {
		out[i] = float64(outF[i])
	}
}
