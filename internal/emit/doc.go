// Package emit reseeds a source box with density, temperature, and
// initial velocity, and enforces the occupancy fix-up that forces
// fluid quantities to rest inside solid cells.
package emit
