// Package tui renders a horizontal slice of the simulation core's
// density or transparency field as an ASCII intensity ramp, both as a
// plain terminal stream (Renderer) and as an interactive bubbletea
// program (RunInteractive). It is a caller-side diagnostic view over
// the fields the core already exposes read-only, not a replacement for
// a real volumetric renderer.
package tui
