// Package solver implements the pressure projection's linear system:
// the cached 7-point discrete Laplacian with Neumann boundaries, and a
// preconditioned conjugate-gradient solve against it.
//
// The matrix is never materialized as a dense or CSR structure; its
// per-cell degree, cached once at construction, is enough to apply it
// matrix-free, which is the cheapest representation for a regular
// grid.
package solver
