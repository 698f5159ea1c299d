package models

// PointQuery binds the lat/lng query parameters shared by the terrain
// endpoints. Pointers distinguish "missing" from a legitimate zero
// (the equator and the prime meridian are valid coordinates).
type PointQuery struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lng *float64 `form:"lng" binding:"required"`
}

// HighestPointQuery binds the highest-point search parameters
type HighestPointQuery struct {
	Lat     *float64 `form:"lat" binding:"required"`
	Lng     *float64 `form:"lng" binding:"required"`
	RadiusM *float64 `form:"radius_m" binding:"required"`
	StepM   float64  `form:"step_m"`
}

// ElevationResult is the elevation at a point; ElevationM is null when
// the DEM has no data there.
type ElevationResult struct {
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	ElevationM *float64 `json:"elevation_m"`
}

// SlopeResult is the local slope at a point as percent grade;
// SlopePercent is null when any probe point lacks data.
type SlopeResult struct {
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	SlopePercent *float64 `json:"slope_percent"`
}

// HighestPointResult is a found peak, tagged with its great-circle
// distance from the query center
type HighestPointResult struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ElevationM float64 `json:"elevation_m"`
	DistanceM  float64 `json:"distance_m"`
}

// InspectResult is the combined tap-inspector sample
type InspectResult struct {
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	ElevationM   *float64 `json:"elevation_m"`
	SlopePercent *float64 `json:"slope_percent"`
	RegionID     int64    `json:"region_id"`
	RegionName   string   `json:"region_name"`
}
