package terrain

import (
	"math"

	"github.com/trailmap/terrain-backend-go/internal/spatial"
)

// Search defaults
const (
	DefaultStepMeters = 50.0
	DefaultMaxSamples = 4000
)

// ElevationFunc yields the elevation at a point, or ok=false where no
// data exists. The highest-point search is written against this
// contract rather than a concrete grid so it can run over any
// elevation source, synthetic surfaces included.
type ElevationFunc func(lat, lng float64) (float64, bool)

// SearchOptions controls a highest-point search
type SearchOptions struct {
	RadiusMeters float64 `json:"radius_meters"` // required, must be > 0
	StepMeters   float64 `json:"step_meters"`   // sampling pitch, defaulted when <= 0
	MaxSamples   int     `json:"max_samples"`   // hard probe cap, defaulted when <= 0
}

// HighestPoint is a found peak
type HighestPoint struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ElevationM float64 `json:"elevation_m"`
}

// FindHighestPointInRadius scans a regular lattice over the circle of
// radiusMeters around the center and returns the sample of maximum
// elevation, or nil when the region holds no valid sample. Candidates
// outside the circle or outside bounds are rejected before the
// elevation function is consulted. The total number of elevation
// probes never exceeds the sample cap: the step is coarsened up front
// when the requested lattice would be too dense.
func FindHighestPointInRadius(elev ElevationFunc, centerLat, centerLng float64, opts SearchOptions, bounds Bounds) *HighestPoint {
	radius := opts.RadiusMeters
	if radius <= 0 {
		// Caller error, but the UI treats "no region" and "no peak"
		// the same, so signal absence instead of failing.
		return nil
	}

	step := opts.StepMeters
	if step <= 0 {
		step = DefaultStepMeters
	}
	maxSamples := opts.MaxSamples
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}

	// Coarsen the step so the bounding-square lattice stays under the
	// cap. Closed-form, not a retry loop: one scale factor from the
	// estimated probe count.
	perAxis := 2*radius/step + 1
	if est := perAxis * perAxis; est > float64(maxSamples) {
		step *= math.Sqrt(est / float64(maxSamples))
	}

	mPerDegLng := spatial.MetersPerDegreeLng(centerLat)
	radiusDegLat := radius / spatial.MetersPerDegreeLat
	radiusDegLng := radius / mPerDegLng
	stepDegLat := step / spatial.MetersPerDegreeLat
	stepDegLng := step / mPerDegLng

	var best *HighestPoint
	probes := 0

	// Deterministic scan: south to north, west to east, so equal-height
	// ties keep the first-found sample.
	for lat := centerLat - radiusDegLat; lat <= centerLat+radiusDegLat; lat += stepDegLat {
		for lng := centerLng - radiusDegLng; lng <= centerLng+radiusDegLng; lng += stepDegLng {
			if spatial.PlanarDistance(centerLat, centerLng, lat, lng) > radius {
				continue
			}
			if !bounds.Contains(lat, lng) {
				continue
			}
			if probes >= maxSamples {
				return best
			}
			probes++
			h, ok := elev(lat, lng)
			if !ok {
				continue
			}
			if best == nil || h > best.ElevationM {
				best = &HighestPoint{Lat: lat, Lng: lng, ElevationM: h}
			}
		}
	}
	return best
}
