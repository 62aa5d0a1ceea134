// Package simcore owns the Simulator: the fixed-step pipeline that
// advances velocity, pressure, temperature, and density on a staggered
// grid, wired together from the grid, stencils, advect, solver, emit,
// and transparency packages.
package simcore

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/voxel-lab/smokesim/internal/advect"
	"github.com/voxel-lab/smokesim/internal/config"
	"github.com/voxel-lab/smokesim/internal/emit"
	"github.com/voxel-lab/smokesim/internal/grid"
	"github.com/voxel-lab/smokesim/internal/report"
	"github.com/voxel-lab/smokesim/internal/solver"
	"github.com/voxel-lab/smokesim/internal/stencils"
	"github.com/voxel-lab/smokesim/internal/transparency"
)

// Sentinel errors a caller can match with errors.Is.
var (
	// ErrInvalidConfig is wrapped into the error New returns when the
	// configuration fails validation.
	ErrInvalidConfig = errors.New("simcore: invalid configuration")

	// ErrSolverStalled is wrapped into HealthError once the pressure
	// solve has failed to converge for several steps in a row. Step
	// itself never returns it; non-convergence is recorded, not fatal.
	ErrSolverStalled = errors.New("simcore: pressure solver failed to converge repeatedly")
)

// StepError adds step index and simulation time to a wrapped error,
// the same way the lab this core's stepper conventions are drawn from
// annotates per-step failures.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// maxResidualHistory bounds how many solver samples the performance
// report keeps; older samples are dropped.
const maxResidualHistory = 50

// stallThreshold is how many consecutive non-converged solves trigger
// HealthError.
const stallThreshold = 5

// EmitterFunc re-seeds a source box; callers can override it via
// SetEmitterFunc, for example to make emission deterministic in tests
// or drive it from a different distribution.
type EmitterFunc func(f *grid.Fields, src emit.Source, rng *rand.Rand)

// Simulator is the fixed-grid smoke/fluid core. It owns every field
// buffer, the cached pressure-projection Laplacian, and a reference to
// the caller's simulation clock.
type Simulator struct {
	cfg   config.Config
	clock *float64

	fields    *grid.Fields
	laplacian *solver.Laplacian
	rng       *rand.Rand
	emitterFn EmitterFunc

	stepCount         int
	consecutiveStalls int

	lastTimings []report.StageTiming
	history     []report.SolverSample
}

// New constructs a Simulator against cfg, failing if the configuration
// is invalid. clock is the caller's mutable simulation-time reference;
// if nil, the Simulator owns its own private clock starting at 0.
// Construction runs the initial emission pass the same way every
// subsequent step does, so a fresh Simulator and a Reset Simulator end
// up in the same state.
func New(cfg config.Config, clock *float64) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if clock == nil {
		clock = new(float64)
	}

	gridCfg := grid.Config{Nx: cfg.Nx, Ny: cfg.Ny, Nz: cfg.Nz, H: cfg.H}
	s := &Simulator{
		cfg:       cfg,
		clock:     clock,
		fields:    grid.NewFields(gridCfg, cfg.TAmbient),
		laplacian: solver.NewLaplacian(gridCfg),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		emitterFn: emit.Emit,
	}
	s.emitIfDue()
	return s, nil
}

// Step advances the simulation by one dt, running the ten-stage
// pipeline in the fixed order: buoyancy, vorticity confinement, force
// apply, velocity self-advection, pressure projection, pressure-
// gradient subtraction, scalar advection, occupancy fix-up,
// transparency accumulation, and (while due) emission. If the
// simulation clock is already at or past FinishTime, Step is a no-op
// and returns the zero Result.
func (s *Simulator) Step() solver.Result {
	if *s.clock >= s.cfg.FinishTime {
		return solver.Result{}
	}

	f := s.fields
	h := f.Cfg.H
	dt := s.cfg.Dt
	timings := make([]report.StageTiming, 0, 9)

	run := func(name string, fn func()) {
		start := time.Now()
		fn()
		timings = append(timings, report.StageTiming{Name: name, Duration: time.Since(start)})
	}

	run("buoyancy", func() { stencils.Buoyancy(f, s.cfg.Alpha, s.cfg.Beta, s.cfg.TAmbient) })
	run("vorticity-confinement", func() { stencils.VorticityConfinement(f, s.cfg.VortEps, h) })
	run("force-apply", func() { stencils.ApplyForce(f, dt) })
	run("velocity-advect", func() { advect.Velocity(f, dt) })

	var res solver.Result
	run("pressure-project", func() {
		res = solver.Project(s.laplacian, f, dt, s.cfg.Tolerance, s.cfg.MaxIter)
	})

	run("pressure-apply", func() { stencils.ApplyPressureGradient(f, dt, h) })
	run("scalar-advect", func() { advect.Scalar(f, dt) })
	run("occupancy-fixup", func() { emit.FixOccupancy(f, s.cfg.TAmbient) })
	run("transparency", func() {
		transparency.Accumulate(f, transparency.Light{
			X: s.cfg.LightX, Y: s.cfg.LightY, Z: s.cfg.LightZ, Factor: s.cfg.LightFactor,
		})
	})

	if s.cfg.DecayFactor > 0 {
		run("decay", func() { s.applyDecay() })
	}

	*s.clock += dt
	s.emitIfDue()

	s.recordResult(res)
	s.lastTimings = timings
	s.stepCount++
	return res
}

// emitIfDue re-seeds the source box when the simulation clock is still
// inside the emission window.
func (s *Simulator) emitIfDue() {
	if *s.clock < s.cfg.EmitDuration {
		s.emitterFn(s.fields, s.cfg.Source(), s.rng)
	}
}

// applyDecay scales density and temperature's deviation from ambient
// by (1-DecayFactor) in place.
func (s *Simulator) applyDecay() {
	decay := 1 - s.cfg.DecayFactor
	density := s.fields.Density.Raw()
	for i := range density {
		density[i] *= decay
	}
	tAmbient := s.cfg.TAmbient
	temperature := s.fields.Temperature.Raw()
	for i := range temperature {
		temperature[i] = tAmbient + (temperature[i]-tAmbient)*decay
	}
}

func (s *Simulator) recordResult(res solver.Result) {
	if res.Converged {
		s.consecutiveStalls = 0
	} else {
		s.consecutiveStalls++
	}

	s.history = append(s.history, report.SolverSample{
		Step: s.stepCount, Iterations: res.Iterations, Residual: res.Residual, Converged: res.Converged,
	})
	if len(s.history) > maxResidualHistory {
		s.history = s.history[len(s.history)-maxResidualHistory:]
	}
}

// HealthError reports ErrSolverStalled, wrapped in a StepError naming
// the current step count and simulation time, once the pressure solve
// has failed to converge for stallThreshold consecutive steps. It
// returns nil otherwise; callers that want non-convergence treated as
// fatal check this explicitly instead of Step returning an error.
func (s *Simulator) HealthError() error {
	if s.consecutiveStalls < stallThreshold {
		return nil
	}
	return &StepError{Step: s.stepCount, Time: *s.clock, Err: ErrSolverStalled}
}

// Reset zeroes every field, restores temperature to the configured
// ambient, sets the simulation clock to 0, re-seeds the emission rng
// from the configured seed, and clears step/solver history, landing
// the Simulator back in the same state New leaves it in, including
// the initial emission pass drawing the same temperatures and
// velocities New's did. The occupancy mask set by SetOccupancy is kept.
func (s *Simulator) Reset() {
	s.fields.Reset(s.cfg.TAmbient)
	*s.clock = 0
	s.stepCount = 0
	s.consecutiveStalls = 0
	s.lastTimings = nil
	s.history = nil
	s.rng = rand.New(rand.NewSource(s.cfg.Seed))
	s.emitIfDue()
}

// Time returns the current simulation clock value.
func (s *Simulator) Time() float64 { return *s.clock }

// StepCount returns how many completed (non-no-op) steps have run
// since construction or the last Reset.
func (s *Simulator) StepCount() int { return s.stepCount }

// Dims returns the grid's voxel counts along x, y, and z, the shape
// that indexes every slice Density and Transparency return.
func (s *Simulator) Dims() (nx, ny, nz int) {
	return s.fields.Cfg.Nx, s.fields.Cfg.Ny, s.fields.Cfg.Nz
}

// Density exposes the cell-centered density field as a read-only
// slice in row-major (k*Ny+j)*Nx+i order. Callers must not mutate it.
func (s *Simulator) Density() []float64 { return s.fields.Density.Raw() }

// Transparency exposes the cell-centered transparency field the same
// way Density does.
func (s *Simulator) Transparency() []float64 { return s.fields.Transparency.Raw() }

// MaxVelocityMagnitude returns the largest |component| across every
// staggered velocity face. It is a derived diagnostic, not a raw
// field; the core exposes no other way to observe velocity from
// outside the package.
func (s *Simulator) MaxVelocityMagnitude() float64 {
	max := 0.0
	for _, field := range []*grid.Field{s.fields.U, s.fields.V, s.fields.W} {
		for _, v := range field.Raw() {
			if a := math.Abs(v); a > max {
				max = a
			}
		}
	}
	return max
}

// PerformanceReport renders the last step's stage timings and a
// sparkline of recent pressure-solve residuals into free-form text.
func (s *Simulator) PerformanceReport() string {
	return report.Build(s.stepCount, s.lastTimings, s.history)
}

// SetOccupancy replaces the occupancy mask. mask must have exactly
// Nx*Ny*Nz entries in row-major order.
func (s *Simulator) SetOccupancy(mask []bool) error {
	if len(mask) != s.fields.Cfg.Cells() {
		return fmt.Errorf("simcore: occupancy mask length %d, want %d", len(mask), s.fields.Cfg.Cells())
	}
	s.fields.Occupied.SetAll(mask)
	return nil
}

// SetAmbientTemperature updates the ambient temperature used by
// buoyancy and occupancy fix-up on every subsequent step.
func (s *Simulator) SetAmbientTemperature(t float64) { s.cfg.TAmbient = t }

// SetAlpha updates the smoke-weight buoyancy coefficient.
func (s *Simulator) SetAlpha(alpha float64) { s.cfg.Alpha = alpha }

// Alpha returns the current smoke-weight buoyancy coefficient.
func (s *Simulator) Alpha() float64 { return s.cfg.Alpha }

// SetBeta updates the thermal-buoyancy coefficient.
func (s *Simulator) SetBeta(beta float64) { s.cfg.Beta = beta }

// Beta returns the current thermal-buoyancy coefficient.
func (s *Simulator) Beta() float64 { return s.cfg.Beta }

// SetVortEps updates the vorticity-confinement strength.
func (s *Simulator) SetVortEps(eps float64) { s.cfg.VortEps = eps }

// VortEps returns the current vorticity-confinement strength.
func (s *Simulator) VortEps() float64 { return s.cfg.VortEps }

// SetDecayFactor updates the per-step exponential decay applied to
// density and temperature deviation from ambient. 0 (the default)
// disables decay entirely, leaving every field governed solely by the
// pipeline stages.
func (s *Simulator) SetDecayFactor(decay float64) { s.cfg.DecayFactor = decay }

// SetDt updates the timestep used by every stage on subsequent steps.
func (s *Simulator) SetDt(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, dt)
	}
	s.cfg.Dt = dt
	return nil
}

// SetEmitterFunc overrides how the source box is re-seeded.
func (s *Simulator) SetEmitterFunc(fn EmitterFunc) { s.emitterFn = fn }
