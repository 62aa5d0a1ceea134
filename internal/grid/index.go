package grid

// Config describes the fixed geometry of a staggered simulation grid:
// voxel counts along each axis and the uniform voxel spacing. It never
// changes after construction; every Field sized against it keeps that
// size for its lifetime.
type Config struct {
	Nx, Ny, Nz int
	H          float64
}

// Cells returns the total number of cells Nx*Ny*Nz.
func (c Config) Cells() int { return c.Nx * c.Ny * c.Nz }

// Valid reports whether the geometry is usable: positive voxel counts
// and positive spacing.
func (c Config) Valid() bool {
	return c.Nx > 0 && c.Ny > 0 && c.Nz > 0 && c.H > 0
}

// Index flattens a 3-D cell coordinate to the offset into a dense
// Nx*Ny*Nz buffer: idx(i,j,k) = (k*Ny+j)*Nx+i. Every field in this
// module shares this convention; code that walks a raw slice sees the
// same row-major layout no matter which field it came from.
func (c Config) Index(i, j, k int) int {
	return (k*c.Ny+j)*c.Nx + i
}

// InBounds reports whether (i,j,k) addresses an existing cell.
func (c Config) InBounds(i, j, k int) bool {
	return i >= 0 && i < c.Nx && j >= 0 && j < c.Ny && k >= 0 && k < c.Nz
}
