// Package stencils implements the per-cell finite-difference kernels
// that assemble forces and apply them to the staggered grid: buoyancy,
// vorticity confinement, force application to velocity faces, and the
// pressure-gradient subtraction that projects velocity onto a
// divergence-free field.
//
// Every kernel here reads one generation of fields and writes another;
// none of them allocate, and none of them are safe to call out of the
// per-step order the [github.com/voxel-lab/smokesim/internal/simcore]
// stepper enforces.
package stencils
