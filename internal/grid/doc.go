// Package grid provides the staggered finite-difference grid underlying
// the smoke simulator: the voxel-count/spacing configuration, the dense
// field containers it hands out, and the index convention every stencil,
// advection routine, and solver in this module builds on.
//
//   - [Config]: grid dimensions and voxel size
//   - [Field]: a dense Nx*Ny*Nz scalar buffer with uniform (i,j,k) access
//   - [Config.Index]: the row-major flattening shared by every package here
//
// # Layout
//
// Velocity components are conceptually face-centered but stored as
// dense Nx*Ny*Nz buffers; u(i,j,k) is the face between cells (i-1,j,k)
// and (i,j,k). Scalars (density, temperature, pressure) are
// cell-centered. See [Config.Index] for the exact flattening.
package grid
