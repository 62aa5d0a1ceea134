package tui

import (
	"fmt"
	"strings"
	"time"
)

const (
	clearScreen = "\033[2J\033[H"
)

// Field names which of the core's two exposed scalar fields a
// Renderer draws.
type Field int

const (
	FieldDensity Field = iota
	FieldTransparency
)

// Source is the subset of *simcore.Simulator a Renderer needs: the
// two read-only field accessors and the grid shape that indexes them.
type Source interface {
	Dims() (nx, ny, nz int)
	Density() []float64
	Transparency() []float64
	Time() float64
}

// Renderer prints a k=const horizontal slice of a Source's density or
// transparency field to stdout as an ASCII intensity ramp, throttled
// to at most frameRate frames per second the way the lab's live
// renderer throttles its canvas redraws.
type Renderer struct {
	field     Field
	slice     int
	frameRate int
	lastFrame time.Time
}

// NewRenderer builds a Renderer over the given field, sampling the
// k=slice horizontal plane at up to frameRate frames per second.
func NewRenderer(f Field, slice, frameRate int) *Renderer {
	return &Renderer{field: f, slice: slice, frameRate: frameRate}
}

// OnStep redraws the slice if enough wall-clock time has passed since
// the last frame; otherwise it does nothing, the same throttle the
// lab's OnStep hook applies before touching its canvas.
func (r *Renderer) OnStep(src Source) {
	elapsed := time.Since(r.lastFrame)
	if r.frameRate > 0 && elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	fmt.Print(r.Render(src))
}

// Render returns one frame of the slice view without printing it. It
// does not apply the frame-rate throttle; only OnStep does.
func (r *Renderer) Render(src Source) string {
	nx, ny, nz := src.Dims()
	k := r.slice
	if k < 0 || k >= nz {
		k = nz / 2
	}

	var raw []float64
	label := "density"
	if r.field == FieldTransparency {
		raw = src.Transparency()
		label = "transparency"
	} else {
		raw = src.Density()
	}

	rows := sliceValues(raw, nx, ny, k)
	flat := make([]float64, 0, nx*ny)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	lines := renderRamp(rows, maxOf(flat))

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s slice k=%d  t=%.2fs\n", label, k, src.Time()))
	b.WriteString("  " + strings.Repeat("-", nx) + "\n")
	for _, line := range lines {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("  " + strings.Repeat("-", nx) + "\n")
	return b.String()
}
