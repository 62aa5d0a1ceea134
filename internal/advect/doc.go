// Package advect implements semi-Lagrangian advection of the velocity
// and scalar fields, and the trilinear sampler both depend on: trace a
// cell or face location backward along the velocity field for one
// timestep, then read the prior field at that traced-back position.
package advect
