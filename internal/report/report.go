// Package report renders the simulation core's performance report: a
// stage-timing table and a sparkline of recent solver residuals.
package report

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
)

// StageTiming records how long one pipeline stage took during the
// most recently completed step.
type StageTiming struct {
	Name     string
	Duration time.Duration
}

// SolverSample records one pressure-solve's outcome, kept in a rolling
// history so the report can plot a residual trend instead of a single
// number.
type SolverSample struct {
	Step       int
	Iterations int
	Residual   float64
	Converged  bool
}

// Build renders stepCount, the last step's stage timings, and a
// residual-history sparkline into the free-form text the simulator
// exposes as its performance report.
func Build(stepCount int, timings []StageTiming, history []SolverSample) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "steps: %d\n\n", stepCount)

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tDURATION")
	for _, t := range timings {
		fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Duration)
	}
	w.Flush()

	if len(history) == 0 {
		return buf.String()
	}

	last := history[len(history)-1]
	fmt.Fprintf(&buf, "\nlast solve: iterations=%d residual=%.3e converged=%v\n",
		last.Iterations, last.Residual, last.Converged)

	if len(history) < 2 {
		return buf.String()
	}

	residuals := make([]float64, len(history))
	for i, s := range history {
		residuals[i] = s.Residual
	}
	graph := asciigraph.Plot(residuals,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption("pressure solve residual"),
	)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, graph)

	return buf.String()
}
