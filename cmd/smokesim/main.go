package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxel-lab/smokesim/internal/automation"
	"github.com/voxel-lab/smokesim/internal/config"
	"github.com/voxel-lab/smokesim/internal/simcore"
	"github.com/voxel-lab/smokesim/internal/tui"
)

var (
	configFile string
	presetName string
	steps      int
	outFile    string

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepN     int

	gridSteps int

	liveFPS   int
	liveField string
	liveSlice int
)

// main is the entry point for the smokesim CLI: it registers every
// subcommand and executes the root command, exiting the process with
// status 1 if execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "smokesim",
		Short: "grid-based smoke and fluid simulator",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "use a named preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation headless and print a performance report",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&steps, "steps", 200, "number of steps to run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation printing an ASCII slice view to the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&steps, "steps", 200, "number of steps to run")
	liveCmd.Flags().IntVar(&liveFPS, "fps", 15, "frame rate for the slice view")
	liveCmd.Flags().StringVar(&liveField, "field", "density", "field to show: density or transparency")
	liveCmd.Flags().IntVar(&liveSlice, "slice", -1, "k index of the horizontal slice to show (defaults to the grid's middle)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in an interactive full-screen terminal view",
		RunE:  runTUI,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one constant across a range and report outcomes",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "alpha", "parameter to sweep: alpha, beta, or vort_eps")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "minimum parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "maximum parameter value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 5, "number of values to sample")
	sweepCmd.Flags().IntVar(&steps, "steps", 100, "steps to run at each value")

	gridSearchCmd := &cobra.Command{
		Use:   "gridsearch",
		Short: "grid-search alpha and beta for the highest final total density",
		RunE:  runGridSearch,
	}
	gridSearchCmd.Flags().IntVar(&gridSteps, "steps", 100, "steps to run at each (alpha, beta) pair")

	rootCmd.AddCommand(runCmd, liveCmd, tuiCmd, presetsCmd, initConfigCmd, sweepCmd, gridSearchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the active configuration from, in order of
// precedence, --config, --preset, or the compiled-in default.
func loadConfig() (config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return config.Config{}, err
		}
		return *cfg, nil
	}
	if presetName != "" {
		cfg := config.GetPreset(presetName)
		if cfg == nil {
			return config.Config{}, fmt.Errorf("unknown preset: %s", presetName)
		}
		return *cfg, nil
	}
	return *config.DefaultConfig(), nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sim, err := simcore.New(cfg, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < steps; i++ {
		sim.Step()
	}
	fmt.Printf("ran %d steps in %s\n\n", steps, time.Since(start))
	fmt.Println(sim.PerformanceReport())

	if err := sim.HealthError(); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sim, err := simcore.New(cfg, nil)
	if err != nil {
		return err
	}

	field := tui.FieldDensity
	if liveField == "transparency" {
		field = tui.FieldTransparency
	}
	renderer := tui.NewRenderer(field, liveSlice, liveFPS)

	for i := 0; i < steps; i++ {
		sim.Step()
		renderer.OnStep(sim)
	}
	fmt.Println(sim.PerformanceReport())
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return tui.RunInteractive(cfg)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	param, err := parseSweepParam(sweepParam)
	if err != nil {
		return err
	}

	results, err := automation.Sweep(context.Background(), cfg, param, sweepMin, sweepMax, sweepN, steps)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %-14s %-14s %-14s\n", "value", "total_density", "max_velocity", "final_residual")
	for _, r := range results {
		fmt.Printf("%-12.4f %-14.4f %-14.4f %-14.6f\n", r.ParamValue, r.TotalDensity, r.MaxVelocity, r.FinalResidual)
	}
	return nil
}

func parseSweepParam(name string) (automation.SweepParam, error) {
	switch name {
	case "alpha":
		return automation.SweepAlpha, nil
	case "beta":
		return automation.SweepBeta, nil
	case "vort_eps":
		return automation.SweepVortEps, nil
	default:
		return 0, fmt.Errorf("unknown sweep param: %s", name)
	}
}

func runGridSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	alphas := []float64{cfg.Alpha * 0.5, cfg.Alpha, cfg.Alpha * 1.5}
	betas := []float64{cfg.Beta * 0.5, cfg.Beta, cfg.Beta * 1.5}

	objective := func(sim *simcore.Simulator) float64 {
		total := 0.0
		for _, d := range sim.Density() {
			total += d
		}
		return -total
	}

	best, err := automation.GridSearch(context.Background(), cfg, alphas, betas, gridSteps, objective)
	if err != nil {
		return err
	}
	fmt.Printf("best alpha=%.4f beta=%.4f objective=%.4f\n", best.Alpha, best.Beta, best.Objective)
	return nil
}
