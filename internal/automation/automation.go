// Package automation drives the simulation core from the outside:
// parameter sweeps across a single constant, and a small grid search
// over two constants against a caller-chosen scalar objective.
package automation

import (
	"context"
	"fmt"
	"math"

	"github.com/voxel-lab/smokesim/internal/config"
	"github.com/voxel-lab/smokesim/internal/simcore"
)

// SweepParam names which constant a Sweep varies.
type SweepParam int

const (
	SweepAlpha SweepParam = iota
	SweepBeta
	SweepVortEps
)

// SweepResult records one run's outcome in a parameter sweep.
type SweepResult struct {
	ParamValue    float64
	TotalDensity  float64
	MaxVelocity   float64
	FinalResidual float64
}

// Sweep runs cfg across numSteps evenly spaced values of the chosen
// parameter between min and max (inclusive), running the core for
// steps update steps at each value and recording total emitted
// density and the peak velocity magnitude seen across those steps.
func Sweep(ctx context.Context, cfg config.Config, param SweepParam, min, max float64, numSteps, steps int) ([]SweepResult, error) {
	if numSteps < 2 {
		return nil, fmt.Errorf("automation: numSteps must be at least 2, got %d", numSteps)
	}

	results := make([]SweepResult, 0, numSteps)
	paramStep := (max - min) / float64(numSteps-1)

	for i := 0; i < numSteps; i++ {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		val := min + float64(i)*paramStep
		runCfg := cfg
		switch param {
		case SweepAlpha:
			runCfg.Alpha = val
		case SweepBeta:
			runCfg.Beta = val
		case SweepVortEps:
			runCfg.VortEps = val
		}

		res, err := runOnce(runCfg, steps)
		if err != nil {
			return results, fmt.Errorf("sweep value %v: %w", val, err)
		}
		res.ParamValue = val
		results = append(results, res)
	}

	return results, nil
}

func runOnce(cfg config.Config, steps int) (SweepResult, error) {
	sim, err := simcore.New(cfg, nil)
	if err != nil {
		return SweepResult{}, err
	}

	var lastResidual float64
	maxVel := 0.0
	for i := 0; i < steps; i++ {
		res := sim.Step()
		lastResidual = res.Residual
		maxVel = math.Max(maxVel, sim.MaxVelocityMagnitude())
	}

	total := 0.0
	for _, d := range sim.Density() {
		total += d
	}

	return SweepResult{TotalDensity: total, MaxVelocity: maxVel, FinalResidual: lastResidual}, nil
}

// GridSearchResult is the best (alpha, beta) pair a GridSearch found
// and the objective value it achieved.
type GridSearchResult struct {
	Alpha     float64
	Beta      float64
	Objective float64
}

// GridSearch runs cfg for steps update steps at every (alpha, beta)
// pair in the cartesian product of alphas and betas, scoring each run
// with objective (lower is better, e.g. time-to-first-dense-cell), and
// returns the best pair found.
func GridSearch(ctx context.Context, cfg config.Config, alphas, betas []float64, steps int, objective func(*simcore.Simulator) float64) (GridSearchResult, error) {
	best := math.Inf(1)
	var bestResult GridSearchResult
	found := false

	for _, a := range alphas {
		for _, b := range betas {
			select {
			case <-ctx.Done():
				return bestResult, ctx.Err()
			default:
			}

			runCfg := cfg
			runCfg.Alpha = a
			runCfg.Beta = b

			sim, err := simcore.New(runCfg, nil)
			if err != nil {
				return bestResult, fmt.Errorf("grid search (alpha=%v, beta=%v): %w", a, b, err)
			}
			for i := 0; i < steps; i++ {
				sim.Step()
			}

			val := objective(sim)
			if val < best {
				best = val
				bestResult = GridSearchResult{Alpha: a, Beta: b, Objective: val}
				found = true
			}
		}
	}

	if !found {
		return bestResult, fmt.Errorf("automation: grid search had no candidates")
	}
	return bestResult, nil
}
