// Package compute selects between a CPU and an optional GPU backend
// for the pressure solve's matvec kernel.
//
// Build with GPU support:
//
//	go build -tags gpu ./...
//
// Without the tag, GPUBackend.Available always reports false and
// every ApplySPD call runs on the CPU backend.
package compute
