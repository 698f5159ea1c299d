package terrain

import (
	"encoding/binary"
	"fmt"
)

// Bounds is the geographic rectangle a DEM grid covers
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether the point lies inside the rectangle
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// Metadata describes a DEM grid buffer: dimensions, cell encoding and
// the geographic rectangle it covers. Cells are signed 16-bit
// little-endian whole meters; row 0 is the north edge, column 0 the
// west edge.
type Metadata struct {
	Format   string `json:"format"`   // "grid"
	Width    int    `json:"width"`    // columns
	Height   int    `json:"height"`   // rows
	Encoding string `json:"encoding"` // "int16"
	Nodata   int    `json:"nodata"`   // sentinel cell value, -32768
	Units    string `json:"units"`    // "m"
	Bounds   Bounds `json:"bounds"`
}

// NodataValue is the cell sentinel meaning "elevation unknown"
const NodataValue = -32768

// Validate checks the metadata against the raw buffer length
func (m Metadata) Validate(bufLen int) error {
	if m.Width < 2 || m.Height < 2 {
		return fmt.Errorf("invalid grid dimensions %dx%d: need at least 2x2 cells", m.Width, m.Height)
	}
	if m.Bounds.MinLat >= m.Bounds.MaxLat || m.Bounds.MinLng >= m.Bounds.MaxLng {
		return fmt.Errorf("invalid bounds: min must be strictly less than max")
	}
	if want := m.Width * m.Height * 2; bufLen != want {
		return fmt.Errorf("buffer size mismatch: got %d bytes, want %d (%dx%d int16 cells)",
			bufLen, want, m.Width, m.Height)
	}
	return nil
}

// Grid is an immutable row-major elevation grid decoded once from a
// raw byte buffer. The nodata sentinel never escapes this type: Cell
// reports it as ok=false.
type Grid struct {
	cells  []int16
	width  int
	height int
	nodata int16
}

// decodeGrid decodes the whole buffer eagerly so lookups never touch
// raw bytes again.
func decodeGrid(meta Metadata, buf []byte) (*Grid, error) {
	if err := meta.Validate(len(buf)); err != nil {
		return nil, fmt.Errorf("failed to decode DEM grid: %w", err)
	}

	cells := make([]int16, meta.Width*meta.Height)
	for i := range cells {
		cells[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}

	nodata := int16(NodataValue)
	if meta.Nodata != 0 {
		nodata = int16(meta.Nodata)
	}

	return &Grid{
		cells:  cells,
		width:  meta.Width,
		height: meta.Height,
		nodata: nodata,
	}, nil
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Cell returns the elevation at (row, col) in meters, or ok=false for
// a nodata cell. Indices must already be clamped by the caller;
// out-of-range access is a programming error and panics.
func (g *Grid) Cell(row, col int) (float64, bool) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		panic(fmt.Sprintf("terrain: grid cell (%d,%d) out of range %dx%d", row, col, g.width, g.height))
	}
	v := g.cells[row*g.width+col]
	if v == g.nodata {
		return 0, false
	}
	return float64(v), true
}
