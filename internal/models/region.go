package models

import "time"

// Region represents an offline map region: a named geographic
// rectangle with the tile-pack files holding its DEM on disk. At most
// one region is active at a time; the terrain endpoints operate on the
// active region's DEM.
type Region struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Bounding box
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MinLng float64 `json:"min_lng" db:"min_lng"`
	MaxLng float64 `json:"max_lng" db:"max_lng"`

	// Tile pack
	DemPath     string `json:"dem_path" db:"dem_path"`           // raw int16 grid buffer
	DemMetaPath string `json:"dem_meta_path" db:"dem_meta_path"` // JSON metadata sidecar

	Active bool `json:"active" db:"active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Contains reports whether the point lies inside the region's
// bounding box
func (r *Region) Contains(lat, lng float64) bool {
	return lat >= r.MinLat && lat <= r.MaxLat && lng >= r.MinLng && lng <= r.MaxLng
}

// CreateRegionRequest is the payload for registering a new offline
// region
type CreateRegionRequest struct {
	Name        string  `json:"name" binding:"required"`
	MinLat      float64 `json:"min_lat"`
	MaxLat      float64 `json:"max_lat"`
	MinLng      float64 `json:"min_lng"`
	MaxLng      float64 `json:"max_lng"`
	DemPath     string  `json:"dem_path" binding:"required"`
	DemMetaPath string  `json:"dem_meta_path"`
	Active      bool    `json:"active"`
}
