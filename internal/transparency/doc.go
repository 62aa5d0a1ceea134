// Package transparency accumulates per-cell optical depth along a
// light direction into a transparency map, reusing the grid and field
// containers the rest of the simulation core is built on.
package transparency
