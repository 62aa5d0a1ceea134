package config

// Presets bundles named emitter profiles: grid size, physical
// constants, source-box geometry, and initial density and velocity
// under a short name a caller can select instead of hand-tuning every
// field. The emitted temperature range is not part of a preset.
var Presets = map[string]*Config{
	"incense": {
		Nx: 24, Ny: 40, Nz: 24, H: 1, Dt: 0.08,
		TAmbient: DefaultTAmbient, Alpha: 6.0, Beta: 0.6, VortEps: 0.05,
		InitDensity: 0.4, InitVelocity: 0.8,
		EmitDuration: 8.0, FinishTime: 60.0,
		EmitterPos: "bottom", SourceSizeX: 2, SourceSizeY: 1, SourceSizeZ: 2, SourceYMargin: 1,
		Tolerance: DefaultTolerance, MaxIter: DefaultMaxIter,
		LightX: 0, LightY: 1, LightZ: 0, LightFactor: 1.5,
	},
	"campfire": {
		Nx: 32, Ny: 48, Nz: 32, H: 1, Dt: 0.1,
		TAmbient: DefaultTAmbient, Alpha: 9.8, Beta: 2.5, VortEps: 0.2,
		InitDensity: 1.0, InitVelocity: 3.0,
		EmitDuration: 10.0, FinishTime: 90.0,
		EmitterPos: "bottom", SourceSizeX: 8, SourceSizeY: 2, SourceSizeZ: 8, SourceYMargin: 1,
		Tolerance: DefaultTolerance, MaxIter: DefaultMaxIter,
		LightX: 0, LightY: 1, LightZ: 0, LightFactor: 0.8,
	},
	"chimney": {
		Nx: 24, Ny: 64, Nz: 24, H: 1, Dt: 0.12,
		TAmbient: DefaultTAmbient, Alpha: 9.8, Beta: 1.5, VortEps: 0.15,
		InitDensity: 0.8, InitVelocity: 2.5,
		EmitDuration: 15.0, FinishTime: 120.0,
		EmitterPos: "bottom", SourceSizeX: 4, SourceSizeY: 1, SourceSizeZ: 4, SourceYMargin: 1,
		Tolerance: DefaultTolerance, MaxIter: DefaultMaxIter,
		LightX: 1, LightY: 1, LightZ: 0, LightFactor: 1.0,
	},
}

// GetPreset looks up a named preset, returning nil when it is unknown.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns every known preset name.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
