package advect

import (
	"math"

	"github.com/voxel-lab/smokesim/internal/grid"
)

// Offset describes where within a cell a field's samples live, in
// units of h: (0.5,0.5,0.5) for cell-centered scalars, (0,0.5,0.5) for
// the x-face (u), (0.5,0,0.5) for the y-face (v), (0.5,0.5,0) for the
// z-face (w).
type Offset struct{ DX, DY, DZ float64 }

var (
	CenterOffset = Offset{0.5, 0.5, 0.5}
	UOffset      = Offset{0, 0.5, 0.5}
	VOffset      = Offset{0.5, 0, 0.5}
	WOffset      = Offset{0.5, 0.5, 0}
)

// Sample trilinearly interpolates field at world position (x,y,z),
// treating the field's samples as living at off within each cell.
// Coordinates are clamped to the cell-center domain
// [0.5h, (N-0.5)h] per axis, so an out-of-domain trace snaps to the
// nearest in-domain sample instead of reading outside the grid.
func Sample(field *grid.Field, cfg grid.Config, off Offset, x, y, z float64) float64 {
	h := cfg.H
	invh := 1.0 / h

	gx := (clamp(x, 0.5*h, (float64(cfg.Nx)-0.5)*h) - off.DX*h) * invh
	gy := (clamp(y, 0.5*h, (float64(cfg.Ny)-0.5)*h) - off.DY*h) * invh
	gz := (clamp(z, 0.5*h, (float64(cfg.Nz)-0.5)*h) - off.DZ*h) * invh

	i0, tx := split(gx, cfg.Nx)
	j0, ty := split(gy, cfg.Ny)
	k0, tz := split(gz, cfg.Nz)

	i1, j1, k1 := minInt(i0+1, cfg.Nx-1), minInt(j0+1, cfg.Ny-1), minInt(k0+1, cfg.Nz-1)

	sx, sy, sz := 1-tx, 1-ty, 1-tz

	c000 := field.At(i0, j0, k0)
	c100 := field.At(i1, j0, k0)
	c010 := field.At(i0, j1, k0)
	c110 := field.At(i1, j1, k0)
	c001 := field.At(i0, j0, k1)
	c101 := field.At(i1, j0, k1)
	c011 := field.At(i0, j1, k1)
	c111 := field.At(i1, j1, k1)

	c00 := sx*c000 + tx*c100
	c10 := sx*c010 + tx*c110
	c01 := sx*c001 + tx*c101
	c11 := sx*c011 + tx*c111

	c0 := sy*c00 + ty*c10
	c1 := sy*c01 + ty*c11

	return sz*c0 + tz*c1
}

// split decomposes a grid-unit coordinate into a base index clamped to
// [0, n-1] and a fractional interpolation weight in [0,1].
func split(g float64, n int) (int, float64) {
	i0 := int(math.Floor(g))
	t := g - float64(i0)
	if i0 < 0 {
		i0, t = 0, 0
	}
	if i0 > n-1 {
		i0, t = n-1, 0
	}
	return i0, t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
