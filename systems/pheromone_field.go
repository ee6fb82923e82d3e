package systems

import (
	"math"

	"github.com/pthm-cable/antfarm/components"
)

// PheromoneField is a dense W x H grid of trail intensity, one cell per world unit.
// Cells only ever grow: there is no decay, diffusion or cap, so long runs
// drift toward uniform trail weights.
type PheromoneField struct {
	W, H int

	// Cells is row-major: index y*W + x.
	Cells []uint32

	deposit uint32
}

// NewPheromoneField creates an empty field covering a w x h surface.
// deposit is the amount added per Deposit call.
func NewPheromoneField(w, h int, deposit uint32) *PheromoneField {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &PheromoneField{
		W:       w,
		H:       h,
		Cells:   make([]uint32, w*h),
		deposit: deposit,
	}
}

// cellIndex returns the grid index of the cell containing pos.
// ok is false when pos lies outside the field.
func (f *PheromoneField) cellIndex(pos components.Position) (int, bool) {
	fx := math.Floor(float64(pos.X))
	fy := math.Floor(float64(pos.Y))
	// NaN fails every comparison and is rejected here too
	if !(fx >= 0 && fx < float64(f.W) && fy >= 0 && fy < float64(f.H)) {
		return 0, false
	}
	return int(fy)*f.W + int(fx), true
}

// Deposit adds one deposit unit to the cell under pos.
// Out-of-bounds positions are ignored.
func (f *PheromoneField) Deposit(pos components.Position) {
	i, ok := f.cellIndex(pos)
	if !ok {
		return
	}
	// Saturate instead of wrapping so cells stay monotonic
	if f.Cells[i] > math.MaxUint32-f.deposit {
		f.Cells[i] = math.MaxUint32
		return
	}
	f.Cells[i] += f.deposit
}

// ConcentrationAt returns the cell value under pos, or 0 outside the field.
func (f *PheromoneField) ConcentrationAt(pos components.Position) float64 {
	i, ok := f.cellIndex(pos)
	if !ok {
		return 0
	}
	return float64(f.Cells[i])
}

// GridSize returns the grid dimensions.
func (f *PheromoneField) GridSize() (int, int) {
	return f.W, f.H
}

// Data returns the raw grid for visualization.
func (f *PheromoneField) Data() []uint32 {
	return f.Cells
}

// Totals returns the summed concentration, the largest cell and the number of marked cells.
func (f *PheromoneField) Totals() (total float64, maxCell uint32, covered int) {
	for _, c := range f.Cells {
		if c == 0 {
			continue
		}
		total += float64(c)
		covered++
		if c > maxCell {
			maxCell = c
		}
	}
	return total, maxCell, covered
}
