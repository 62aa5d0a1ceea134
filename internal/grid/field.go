package grid

// Field is a dense Nx*Ny*Nz scalar buffer. Whether a given Field is
// treated as cell-centered or face-centered is a convention of the
// stencil that reads it (see package doc); the container itself is
// shape-agnostic.
type Field struct {
	cfg  Config
	data []float64
}

// NewField allocates a zero-initialized field sized to cfg.
func NewField(cfg Config) *Field {
	return &Field{cfg: cfg, data: make([]float64, cfg.Cells())}
}

// At returns the value at (i,j,k). No bounds checking is performed on
// this hot path; callers must stay within the grid.
func (f *Field) At(i, j, k int) float64 {
	return f.data[f.cfg.Index(i, j, k)]
}

// Set writes the value at (i,j,k).
func (f *Field) Set(i, j, k int, v float64) {
	f.data[f.cfg.Index(i, j, k)] = v
}

// Add accumulates a value at (i,j,k).
func (f *Field) Add(i, j, k int, v float64) {
	f.data[f.cfg.Index(i, j, k)] += v
}

// Raw exposes the backing slice in the fixed row-major layout, for
// callers (accessors, device upload) that need direct access.
func (f *Field) Raw() []float64 { return f.data }

// Len returns the number of cells.
func (f *Field) Len() int { return len(f.data) }

// Fill sets every cell to v.
func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Zero sets every cell to 0; equivalent to Fill(0) but documents intent
// at call sites that reset a field between steps.
func (f *Field) Zero() { f.Fill(0) }

// CopyFrom snapshots src into f. Both fields must share the same
// Config; this is the operation the *0 "previous step" buffers in the
// data model are refreshed with before each advection stage.
func (f *Field) CopyFrom(src *Field) {
	copy(f.data, src.data)
}

// BoolField is the dense Nx*Ny*Nz occupancy mask: true marks a solid
// (obstacle) voxel.
type BoolField struct {
	cfg  Config
	data []bool
}

// NewBoolField allocates an all-false mask sized to cfg.
func NewBoolField(cfg Config) *BoolField {
	return &BoolField{cfg: cfg, data: make([]bool, cfg.Cells())}
}

func (b *BoolField) At(i, j, k int) bool { return b.data[b.cfg.Index(i, j, k)] }

func (b *BoolField) Set(i, j, k int, v bool) { b.data[b.cfg.Index(i, j, k)] = v }

// SetAll replaces the entire mask; len(mask) must equal Nx*Ny*Nz.
func (b *BoolField) SetAll(mask []bool) {
	copy(b.data, mask)
}

func (b *BoolField) Clear() {
	for i := range b.data {
		b.data[i] = false
	}
}
