package simcore

import (
	"math"
	"math/rand"
	"testing"

	"github.com/voxel-lab/smokesim/internal/config"
	"github.com/voxel-lab/smokesim/internal/emit"
	"github.com/voxel-lab/smokesim/internal/grid"
)

func baseConfig() config.Config {
	return config.Config{
		Nx: 16, Ny: 16, Nz: 16, H: 1, Dt: 0.1,
		TAmbient: 273, Alpha: 9.8, Beta: 1.0, VortEps: 0.1,
		InitDensity: 1.0, InitVelocity: 2.0,
		EmitDuration: 0, FinishTime: 1000,
		EmitterPos: "top", SourceSizeX: 4, SourceSizeY: 2, SourceSizeZ: 4, SourceYMargin: 1,
		Tolerance: 1e-6, MaxIter: 200,
		LightX: 0, LightY: 1, LightZ: 0, LightFactor: 1,
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.Nx = 0
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for invalid config")
	}
}

// Scenario 1: zero-everything, no occupancy, no emission, 10 steps.
func TestZeroEverythingStaysZero(t *testing.T) {
	cfg := baseConfig()
	sim, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var lastRes = sim.Step()
	for i := 0; i < 9; i++ {
		lastRes = sim.Step()
	}

	for _, v := range sim.Density() {
		if v != 0 {
			t.Fatalf("density should remain 0, got %v", v)
		}
	}
	if lastRes.Residual != 0 {
		t.Fatalf("residual should be 0, got %v", lastRes.Residual)
	}
}

// Scenario 2: constant ambient temperature, uniform density 0.5, one step.
func TestUniformDensityProjectsToLowDivergence(t *testing.T) {
	cfg := baseConfig()
	sim, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := range sim.fields.Density.Raw() {
		sim.fields.Density.Raw()[i] = 0.5
	}

	sim.Step()

	b := make([]float64, sim.fields.Cfg.Cells())
	assembleDivergenceForTest(sim.fields, b)
	sum := 0.0
	for _, v := range b {
		sum += v * v
	}
	if sum >= 1e-8 {
		t.Fatalf("divergence too large after projection: %v", sum)
	}
}

// assembleDivergenceForTest mirrors solver.assembleDivergence without
// exporting it from the solver package.
func assembleDivergenceForTest(f *grid.Fields, b []float64) {
	cfg := f.Cfg
	for k := 0; k < cfg.Nz; k++ {
		for j := 0; j < cfg.Ny; j++ {
			for i := 0; i < cfg.Nx; i++ {
				div := 0.0
				if i < cfg.Nx-1 {
					div += f.U.At(i+1, j, k)
				}
				if i > 0 {
					div -= f.U.At(i, j, k)
				}
				if j < cfg.Ny-1 {
					div += f.V.At(i, j+1, k)
				}
				if j > 0 {
					div -= f.V.At(i, j, k)
				}
				if k < cfg.Nz-1 {
					div += f.W.At(i, j, k+1)
				}
				if k > 0 {
					div -= f.W.At(i, j, k)
				}
				b[cfg.Index(i, j, k)] = div
			}
		}
	}
}

// Scenario 3: top emitter, 5 steps with EmitDuration=10*dt; density
// should strictly increase and velocity stays within what the emitted
// temperatures can actually drive through buoyancy.
func TestEmittingStepsIncreaseDensity(t *testing.T) {
	cfg := baseConfig()
	cfg.EmitDuration = 10 * cfg.Dt
	sim, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	totalDensity := func() float64 {
		sum := 0.0
		for _, v := range sim.Density() {
			sum += v
		}
		return sum
	}

	// Emitted source-box temperature is drawn from [800,1000); the
	// resulting buoyancy acceleration tops out at
	// beta*(1000-TAmbient) - alpha*InitDensity per cell. Bound the
	// velocity this test tolerates by that per-step acceleration
	// compounded additively over every step, which is already far
	// looser than the damping advection and projection actually apply.
	const steps = 5
	maxForce := cfg.Beta*(1000-cfg.TAmbient) - cfg.Alpha*cfg.InitDensity
	bound := cfg.InitVelocity + float64(steps)*cfg.Dt*maxForce

	prev := totalDensity()
	for i := 0; i < steps; i++ {
		sim.Step()
		cur := totalDensity()
		if cur <= prev {
			t.Fatalf("step %d: density did not increase (%v -> %v)", i, prev, cur)
		}
		prev = cur

		maxV := 0.0
		for _, v := range sim.fields.U.Raw() {
			maxV = math.Max(maxV, math.Abs(v))
		}
		for _, v := range sim.fields.V.Raw() {
			maxV = math.Max(maxV, math.Abs(v))
		}
		for _, v := range sim.fields.W.Raw() {
			maxV = math.Max(maxV, math.Abs(v))
		}
		if maxV > bound {
			t.Fatalf("step %d: velocity magnitude %v exceeds bound %v", i, maxV, bound)
		}
	}
}

// Scenario 4: solid block at the center stays empty and at ambient
// temperature through every step.
func TestOccupiedBlockStaysEmpty(t *testing.T) {
	cfg := baseConfig()
	cfg.EmitDuration = 1000
	sim, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	mask := make([]bool, cfg.Nx*cfg.Ny*cfg.Nz)
	gridCfg := grid.Config{Nx: cfg.Nx, Ny: cfg.Ny, Nz: cfg.Nz, H: cfg.H}
	for k := 6; k < 10; k++ {
		for j := 6; j < 10; j++ {
			for i := 6; i < 10; i++ {
				mask[gridCfg.Index(i, j, k)] = true
			}
		}
	}
	if err := sim.SetOccupancy(mask); err != nil {
		t.Fatalf("SetOccupancy failed: %v", err)
	}

	for step := 0; step < 20; step++ {
		sim.Step()
		for k := 6; k < 10; k++ {
			for j := 6; j < 10; j++ {
				for i := 6; i < 10; i++ {
					idx := gridCfg.Index(i, j, k)
					if d := sim.Density()[idx]; d != 0 {
						t.Fatalf("step %d: occupied cell (%d,%d,%d) density=%v, want 0", step, i, j, k, d)
					}
					if temp := sim.fields.Temperature.At(i, j, k); temp != cfg.TAmbient {
						t.Fatalf("step %d: occupied cell (%d,%d,%d) temperature=%v, want %v", step, i, j, k, temp, cfg.TAmbient)
					}
				}
			}
		}
	}
}

// Scenario 6: reset after arbitrary simulation returns every field to
// its initial value.
func TestResetRestoresInitialState(t *testing.T) {
	cfg := baseConfig()
	cfg.EmitDuration = 10 * cfg.Dt

	simA, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	simB, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := 0; i < 7; i++ {
		simA.Step()
	}
	simA.Reset()

	if simA.Time() != 0 {
		t.Fatalf("time not reset, got %v", simA.Time())
	}
	for i, v := range simA.Density() {
		if v != simB.Density()[i] {
			t.Fatalf("density mismatch at %d after reset: %v vs fresh %v", i, v, simB.Density()[i])
		}
	}
	for i, v := range simA.fields.Temperature.Raw() {
		if v != simB.fields.Temperature.Raw()[i] {
			t.Fatalf("temperature mismatch at %d after reset: %v vs fresh %v", i, v, simB.fields.Temperature.Raw()[i])
		}
	}
	for i, v := range simA.fields.V.Raw() {
		if v != simB.fields.V.Raw()[i] {
			t.Fatalf("v-velocity mismatch at %d after reset: %v vs fresh %v", i, v, simB.fields.V.Raw()[i])
		}
	}
}

func TestFinishTimeIsNoOp(t *testing.T) {
	cfg := baseConfig()
	cfg.FinishTime = 0
	sim, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res := sim.Step()
	if res.Iterations != 0 || sim.StepCount() != 0 {
		t.Fatalf("expected no-op step past FinishTime, got res=%+v stepCount=%d", res, sim.StepCount())
	}
}

func TestHealthErrorTriggersAfterRepeatedStalls(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxIter = 0 // forces immediate non-convergence on every solve with nonzero divergence
	sim, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	gridCfg := grid.Config{Nx: cfg.Nx, Ny: cfg.Ny, Nz: cfg.Nz, H: cfg.H}
	for k := 0; k < gridCfg.Nz; k++ {
		for j := 0; j < gridCfg.Ny; j++ {
			for i := 0; i < gridCfg.Nx; i++ {
				sim.fields.U.Set(i, j, k, float64(i))
			}
		}
	}

	for i := 0; i < stallThreshold; i++ {
		sim.Step()
	}

	if err := sim.HealthError(); err == nil {
		t.Fatalf("expected HealthError after %d stalled steps", stallThreshold)
	}
}

func TestSetEmitterFuncOverridesReseeding(t *testing.T) {
	cfg := baseConfig()
	cfg.EmitDuration = 10 * cfg.Dt
	sim, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	called := false
	sim.SetEmitterFunc(func(f *grid.Fields, src emit.Source, rng *rand.Rand) {
		called = true
	})
	sim.Step()

	if !called {
		t.Fatalf("custom emitter function was not invoked")
	}
}
