package terrain

import "math"

// Sampler maps geographic coordinates onto a DEM grid and bilinearly
// interpolates elevation between the four nearest cells.
type Sampler struct {
	grid   *Grid
	bounds Bounds
}

// NewSampler creates a sampler over an already-decoded grid
func NewSampler(grid *Grid, bounds Bounds) *Sampler {
	return &Sampler{grid: grid, bounds: bounds}
}

// Elevation returns the interpolated elevation in meters at (lat, lng),
// or ok=false when any contributing cell is nodata. Coordinates outside
// the DEM rectangle are clamped to the nearest edge rather than
// rejected: a map tap can land a fraction of a pixel outside the
// nominal bounds through floating-point arithmetic.
func (s *Sampler) Elevation(lat, lng float64) (float64, bool) {
	b := s.bounds
	width := s.grid.Width()
	height := s.grid.Height()

	// Continuous grid coordinates; row 0 is the north edge.
	col := (lng - b.MinLng) / (b.MaxLng - b.MinLng) * float64(width-1)
	row := (b.MaxLat - lat) / (b.MaxLat - b.MinLat) * float64(height-1)

	col = clampF(col, 0, float64(width-1))
	row = clampF(row, 0, float64(height-1))

	col0 := int(math.Floor(col))
	row0 := int(math.Floor(row))
	col1 := col0 + 1
	if col1 > width-1 {
		col1 = width - 1
	}
	row1 := row0 + 1
	if row1 > height-1 {
		row1 = height - 1
	}
	fx := col - float64(col0)
	fy := row - float64(row0)

	v00, ok00 := s.grid.Cell(row0, col0)
	v10, ok10 := s.grid.Cell(row0, col1)
	v01, ok01 := s.grid.Cell(row1, col0)
	v11, ok11 := s.grid.Cell(row1, col1)

	// Interpolating across a data/nodata boundary would fabricate
	// elevation at the edge of coverage, so any nodata corner poisons
	// the whole sample.
	if !ok00 || !ok10 || !ok01 || !ok11 {
		return 0, false
	}

	h := (1-fx)*(1-fy)*v00 + fx*(1-fy)*v10 + (1-fx)*fy*v01 + fx*fy*v11
	return h, true
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
