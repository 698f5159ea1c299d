package service

import (
	"github.com/trailmap/terrain-backend-go/internal/models"
	"github.com/trailmap/terrain-backend-go/internal/spatial"
	"github.com/trailmap/terrain-backend-go/internal/terrain"
)

// TerrainQueryService answers the UI-facing terrain queries against
// whatever offline region covers the queried point. "No region" and
// "no data" both surface as null results, never as faults; only
// infrastructure problems (DEM unreadable, database down) are errors.
type TerrainQueryService struct {
	regions *RegionService

	// search defaults applied when the caller passes none
	defaultStepM      float64
	defaultMaxSamples int
}

// NewTerrainQueryService creates a new terrain query service
func NewTerrainQueryService(regions *RegionService, defaultStepM float64, defaultMaxSamples int) *TerrainQueryService {
	if defaultStepM <= 0 {
		defaultStepM = terrain.DefaultStepMeters
	}
	if defaultMaxSamples <= 0 {
		defaultMaxSamples = terrain.DefaultMaxSamples
	}
	return &TerrainQueryService{
		regions:           regions,
		defaultStepM:      defaultStepM,
		defaultMaxSamples: defaultMaxSamples,
	}
}

// ElevationAt returns the interpolated elevation at the point, with a
// null value when no region covers it or the DEM has no data there
func (s *TerrainQueryService) ElevationAt(lat, lng float64) (models.ElevationResult, error) {
	result := models.ElevationResult{Lat: lat, Lng: lng}

	eng, _, err := s.regions.TerrainForPoint(lat, lng)
	if err != nil {
		return result, err
	}
	if eng == nil {
		return result, nil
	}
	if h, ok := eng.Elevation(lat, lng); ok {
		result.ElevationM = &h
	}
	return result, nil
}

// SlopeAt returns the local percent slope at the point, with a null
// value when no region covers it or any probe lacks data
func (s *TerrainQueryService) SlopeAt(lat, lng float64) (models.SlopeResult, error) {
	result := models.SlopeResult{Lat: lat, Lng: lng}

	eng, _, err := s.regions.TerrainForPoint(lat, lng)
	if err != nil {
		return result, err
	}
	if eng == nil {
		return result, nil
	}
	if g, ok := eng.Slope(lat, lng); ok {
		result.SlopePercent = &g
	}
	return result, nil
}

// HighestPointWithin searches for the highest point within radiusM of
// the center and reports the peak with its great-circle distance from
// the center. A nil result means no region covers the center or no
// valid sample existed in the search circle.
func (s *TerrainQueryService) HighestPointWithin(lat, lng, radiusM, stepM float64) (*models.HighestPointResult, error) {
	eng, _, err := s.regions.TerrainForPoint(lat, lng)
	if err != nil {
		return nil, err
	}
	if eng == nil {
		return nil, nil
	}

	if stepM <= 0 {
		stepM = s.defaultStepM
	}
	peak := eng.FindHighestPointWithin(lat, lng, terrain.SearchOptions{
		RadiusMeters: radiusM,
		StepMeters:   stepM,
		MaxSamples:   s.defaultMaxSamples,
	})
	if peak == nil {
		return nil, nil
	}
	return &models.HighestPointResult{
		Lat:        peak.Lat,
		Lng:        peak.Lng,
		ElevationM: peak.ElevationM,
		DistanceM:  spatial.HaversineDistance(lat, lng, peak.Lat, peak.Lng),
	}, nil
}

// InspectAt is the tap inspector: elevation and slope in one call,
// tagged with the region that answered
func (s *TerrainQueryService) InspectAt(lat, lng float64) (models.InspectResult, error) {
	result := models.InspectResult{Lat: lat, Lng: lng}

	eng, region, err := s.regions.TerrainForPoint(lat, lng)
	if err != nil {
		return result, err
	}
	if eng == nil {
		return result, nil
	}
	result.RegionID = region.ID
	result.RegionName = region.Name

	if h, ok := eng.Elevation(lat, lng); ok {
		result.ElevationM = &h
	}
	if g, ok := eng.Slope(lat, lng); ok {
		result.SlopePercent = &g
	}
	return result, nil
}
