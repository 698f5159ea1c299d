// Package terrain implements the offline terrain engine: a DEM grid
// decoder and the point-elevation, slope and highest-point operations
// built on top of it. All math uses a local planar approximation valid
// at city/region scale; grids are decoded once and never mutated, so a
// Service is safe for concurrent readers.
package terrain

// Service exposes the terrain operations over a single decoded DEM.
// Construction decodes the grid and derives the resolution parameters
// exactly once; every call afterwards is a pure function of grid and
// coordinates.
type Service struct {
	meta        Metadata
	sampler     *Sampler
	res         resolution
	sampleDistM float64
}

// New decodes the raw DEM buffer against its metadata and builds the
// terrain service. A size mismatch between the declared dimensions and
// the buffer is a construction failure; no service is created that
// could read out of bounds later.
func New(meta Metadata, buf []byte) (*Service, error) {
	grid, err := decodeGrid(meta, buf)
	if err != nil {
		return nil, err
	}
	res := deriveResolution(meta)
	return &Service{
		meta:        meta,
		sampler:     NewSampler(grid, meta.Bounds),
		res:         res,
		sampleDistM: slopeSampleDistance(res),
	}, nil
}

// Bounds returns the geographic rectangle the DEM covers
func (t *Service) Bounds() Bounds { return t.meta.Bounds }

// SampleDistanceM returns the derived slope probe distance in meters
func (t *Service) SampleDistanceM() float64 { return t.sampleDistM }

// Elevation returns the interpolated elevation in meters at (lat, lng),
// or ok=false where the DEM has no data.
func (t *Service) Elevation(lat, lng float64) (float64, bool) {
	return t.sampler.Elevation(lat, lng)
}

// FindHighestPointWithin searches for the highest point within
// opts.RadiusMeters of (lat, lng), bound to this service's own
// elevation sampler and the DEM's own bounds.
func (t *Service) FindHighestPointWithin(lat, lng float64, opts SearchOptions) *HighestPoint {
	return FindHighestPointInRadius(t.Elevation, lat, lng, opts, t.meta.Bounds)
}
