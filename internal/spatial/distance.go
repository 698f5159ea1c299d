package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters

	// MetersPerDegreeLat is the planar scale of one degree of latitude.
	// One degree of longitude is this times cos(lat).
	MetersPerDegreeLat = 111320.0
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// MetersPerDegreeLng returns the planar meters-per-degree-longitude
// scale at the given latitude. Longitude degrees shrink toward the
// poles with the cosine of the latitude.
func MetersPerDegreeLng(lat float64) float64 {
	return MetersPerDegreeLat * math.Cos(lat*math.Pi/180)
}

// PlanarDistance calculates the distance in meters between two points
// using a local planar approximation centered at the first point.
// Valid at city/region scale; cheaper than the haversine formula.
func PlanarDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dy := (lat2 - lat1) * MetersPerDegreeLat
	dx := (lng2 - lng1) * MetersPerDegreeLng(lat1)
	return math.Sqrt(dx*dx + dy*dy)
}
