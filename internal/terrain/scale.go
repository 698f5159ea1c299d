package terrain

import (
	"github.com/trailmap/terrain-backend-go/internal/spatial"
)

// resolution holds the grid-resolution parameters derived once per
// service instance. Immutable after construction.
type resolution struct {
	degPerCellLat float64 // latitude degrees covered by one cell
	degPerCellLng float64 // longitude degrees covered by one cell
	centerLat     float64
	cellSizeM     float64 // native cell size in meters (coarser axis)
}

func deriveResolution(meta Metadata) resolution {
	b := meta.Bounds
	r := resolution{
		degPerCellLat: (b.MaxLat - b.MinLat) / float64(meta.Height-1),
		degPerCellLng: (b.MaxLng - b.MinLng) / float64(meta.Width-1),
		centerLat:     (b.MinLat + b.MaxLat) / 2,
	}

	cellLatM := r.degPerCellLat * spatial.MetersPerDegreeLat
	cellLngM := r.degPerCellLng * spatial.MetersPerDegreeLng(r.centerLat)
	// The coarser axis drives the sample distance so slope probes never
	// land inside a single cell.
	r.cellSizeM = cellLatM
	if cellLngM > r.cellSizeM {
		r.cellSizeM = cellLngM
	}
	return r
}
