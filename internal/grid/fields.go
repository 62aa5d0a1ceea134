package grid

// Fields bundles every per-cell buffer the simulation needs, all sized
// against the same [Config] and allocated once. Nothing here is ever
// reallocated after construction; stepper stages mutate in place.
type Fields struct {
	Cfg Config

	// Staggered velocity (stored dense; u(i,j,k) is the -x face of cell i,j,k).
	U, V, W       *Field
	U0, V0, W0    *Field // previous-step velocity, advection source

	// Cell-centered scalars.
	Density, Density0         *Field
	Temperature, Temperature0 *Field
	Pressure, Pressure0       *Field

	// Recomputed-per-step scratch.
	Fx, Fy, Fz             *Field
	OmgX, OmgY, OmgZ       *Field
	AvgU, AvgV, AvgW       *Field
	Vort                   *Field // |f_conf| diagnostic
	VortMag                *Field // |omega| scratch for confinement's gradient pass
	Transparency           *Field

	Occupied *BoolField
}

// NewFields allocates every buffer, zero-initialized except
// Temperature/Temperature0 which start at ambient.
func NewFields(cfg Config, tAmbient float64) *Fields {
	f := &Fields{
		Cfg:           cfg,
		U:             NewField(cfg),
		V:             NewField(cfg),
		W:             NewField(cfg),
		U0:            NewField(cfg),
		V0:            NewField(cfg),
		W0:            NewField(cfg),
		Density:       NewField(cfg),
		Density0:      NewField(cfg),
		Temperature:   NewField(cfg),
		Temperature0:  NewField(cfg),
		Pressure:      NewField(cfg),
		Pressure0:     NewField(cfg),
		Fx:            NewField(cfg),
		Fy:            NewField(cfg),
		Fz:            NewField(cfg),
		OmgX:          NewField(cfg),
		OmgY:          NewField(cfg),
		OmgZ:          NewField(cfg),
		AvgU:          NewField(cfg),
		AvgV:          NewField(cfg),
		AvgW:          NewField(cfg),
		Vort:          NewField(cfg),
		VortMag:       NewField(cfg),
		Transparency:  NewField(cfg),
		Occupied:      NewBoolField(cfg),
	}
	f.Temperature.Fill(tAmbient)
	f.Temperature0.Fill(tAmbient)
	return f
}

// Reset zeroes every float field and restores temperature to envTemp.
// The Occupied mask is left unchanged.
func (f *Fields) Reset(envTemp float64) {
	for _, fl := range []*Field{
		f.U, f.V, f.W, f.U0, f.V0, f.W0,
		f.Density, f.Density0, f.Pressure, f.Pressure0,
		f.Fx, f.Fy, f.Fz, f.OmgX, f.OmgY, f.OmgZ,
		f.AvgU, f.AvgV, f.AvgW, f.Vort, f.VortMag, f.Transparency,
	} {
		fl.Zero()
	}
	f.Temperature.Fill(envTemp)
	f.Temperature0.Fill(envTemp)
}
