package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voxel-lab/smokesim/internal/emit"
)

const (
	DefaultNx           = 32
	DefaultNy           = 48
	DefaultNz           = 32
	DefaultH            = 1.0
	DefaultDt           = 0.1
	DefaultTAmbient     = 273.0
	DefaultAlpha        = 9.8
	DefaultBeta         = 1.0
	DefaultVortEps      = 0.1
	DefaultInitDensity  = 1.0
	DefaultInitVelocity = 2.0
	DefaultEmitDuration = 5.0
	DefaultFinishTime   = 60.0
	DefaultSourceSizeX  = 6
	DefaultSourceSizeY  = 2
	DefaultSourceSizeZ  = 6
	DefaultSourceMargin = 1
	DefaultTolerance    = 1e-6
	DefaultMaxIter      = 200
	DefaultLightFactor  = 1.0
)

// Config bundles every construction-time constant the simulation core
// needs: grid geometry, physical constants, solver tuning, the
// emitter's source box, and the light used for the transparency pass.
type Config struct {
	Nx int     `yaml:"nx"`
	Ny int     `yaml:"ny"`
	Nz int     `yaml:"nz"`
	H  float64 `yaml:"h"`
	Dt float64 `yaml:"dt"`

	TAmbient float64 `yaml:"t_ambient"`
	Alpha    float64 `yaml:"alpha"`
	Beta     float64 `yaml:"beta"`
	VortEps  float64 `yaml:"vort_eps"`

	InitDensity  float64 `yaml:"init_density"`
	InitVelocity float64 `yaml:"init_velocity"`
	EmitDuration float64 `yaml:"emit_duration"`
	FinishTime   float64 `yaml:"finish_time"`

	EmitterPos    string `yaml:"emitter_pos"` // "top" or "bottom"
	SourceSizeX   int    `yaml:"source_size_x"`
	SourceSizeY   int    `yaml:"source_size_y"`
	SourceSizeZ   int    `yaml:"source_size_z"`
	SourceYMargin int    `yaml:"source_y_margin"`

	Tolerance float64 `yaml:"tolerance"`
	MaxIter   int     `yaml:"max_iter"`

	LightX      float64 `yaml:"light_x"`
	LightY      float64 `yaml:"light_y"`
	LightZ      float64 `yaml:"light_z"`
	LightFactor float64 `yaml:"light_factor"`

	// DecayFactor, when nonzero, applies a per-step exponential decay
	// to density and to temperature's deviation from ambient. It
	// defaults to 0 (no decay).
	DecayFactor float64 `yaml:"decay_factor"`

	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns a config with a usable grid size and a top
// emitter, good enough to run without further tuning.
func DefaultConfig() *Config {
	return &Config{
		Nx: DefaultNx, Ny: DefaultNy, Nz: DefaultNz, H: DefaultH, Dt: DefaultDt,
		TAmbient: DefaultTAmbient, Alpha: DefaultAlpha, Beta: DefaultBeta, VortEps: DefaultVortEps,
		InitDensity: DefaultInitDensity, InitVelocity: DefaultInitVelocity,
		EmitDuration: DefaultEmitDuration, FinishTime: DefaultFinishTime,
		EmitterPos:    "top",
		SourceSizeX:   DefaultSourceSizeX,
		SourceSizeY:   DefaultSourceSizeY,
		SourceSizeZ:   DefaultSourceSizeZ,
		SourceYMargin: DefaultSourceMargin,
		Tolerance:     DefaultTolerance,
		MaxIter:       DefaultMaxIter,
		LightX:        0, LightY: 1, LightZ: 0, LightFactor: DefaultLightFactor,
	}
}

// Validate reports the construction-time configuration errors: every
// grid dimension must be positive, the voxel spacing and timestep must
// be positive, and the emitter position must name a known side.
func (c *Config) Validate() error {
	if c.Nx <= 0 || c.Ny <= 0 || c.Nz <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got (%d,%d,%d)", c.Nx, c.Ny, c.Nz)
	}
	if c.H <= 0 {
		return fmt.Errorf("h must be positive, got %v", c.H)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	}
	switch c.EmitterPos {
	case "top", "bottom":
	default:
		return fmt.Errorf("emitter_pos must be %q or %q, got %q", "top", "bottom", c.EmitterPos)
	}
	return nil
}

// EmitterPosition converts the YAML-friendly string form into the
// emit package's Position enum.
func (c *Config) EmitterPosition() emit.Position {
	if c.EmitterPos == "bottom" {
		return emit.Bottom
	}
	return emit.Top
}

// Source builds the emitter source box emit.Emit expects from this
// configuration.
func (c *Config) Source() emit.Source {
	return emit.Source{
		Pos:          c.EmitterPosition(),
		SizeX:        c.SourceSizeX,
		SizeY:        c.SourceSizeY,
		SizeZ:        c.SourceSizeZ,
		YMargin:      c.SourceYMargin,
		InitDensity:  c.InitDensity,
		InitVelocity: c.InitVelocity,
	}
}

// Load reads a YAML config from path, starting from DefaultConfig so
// any field the file omits keeps its default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
