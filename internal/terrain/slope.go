package terrain

import (
	"math"

	"github.com/trailmap/terrain-backend-go/internal/spatial"
)

// Slope sample distances below 30m drown in interpolation noise;
// above 200m the slope is over-smoothed. These bounds are calibrated
// constants; keep them in sync with the tests.
const (
	minSlopeSampleM = 30.0
	maxSlopeSampleM = 200.0
)

// slopeSampleDistance derives the probe offset for slope estimation
// from the grid's native cell size, clamped to [30, 200] meters.
func slopeSampleDistance(res resolution) float64 {
	return clampF(res.cellSizeM, minSlopeSampleM, maxSlopeSampleM)
}

// Slope returns the local slope at (lat, lng) as percent grade, or
// ok=false when any of the four probe points has no elevation data.
// Flat terrain yields 0.
func (t *Service) Slope(lat, lng float64) (float64, bool) {
	d := t.sampleDistM
	dLat := d / spatial.MetersPerDegreeLat
	dLng := d / spatial.MetersPerDegreeLng(lat)

	north, okN := t.sampler.Elevation(lat+dLat, lng)
	south, okS := t.sampler.Elevation(lat-dLat, lng)
	east, okE := t.sampler.Elevation(lat, lng+dLng)
	west, okW := t.sampler.Elevation(lat, lng-dLng)
	if !okN || !okS || !okE || !okW {
		return 0, false
	}

	dzdy := (north - south) / (2 * d)
	dzdx := (east - west) / (2 * d)
	return math.Sqrt(dzdx*dzdx+dzdy*dzdy) * 100, true
}
