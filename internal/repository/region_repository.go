package repository

import (
	"database/sql"
	"fmt"

	"github.com/trailmap/terrain-backend-go/internal/database"
	"github.com/trailmap/terrain-backend-go/internal/models"
)

// RegionRepository handles database operations for offline map regions
type RegionRepository struct {
	db *sql.DB
}

// NewRegionRepository creates a new region repository
func NewRegionRepository(db *sql.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

const regionColumns = `id, name, min_lat, max_lat, min_lng, max_lng,
	dem_path, dem_meta_path, active, created_at, updated_at`

func scanRegion(row interface{ Scan(...interface{}) error }) (*models.Region, error) {
	var r models.Region
	err := row.Scan(
		&r.ID, &r.Name, &r.MinLat, &r.MaxLat, &r.MinLng, &r.MaxLng,
		&r.DemPath, &r.DemMetaPath, &r.Active, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetActiveRegion returns the currently active region, or nil when no
// region is active
func (r *RegionRepository) GetActiveRegion() (*models.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions WHERE active = 1 LIMIT 1`

	region, err := scanRegion(r.db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active region: %w", err)
	}
	return region, nil
}

// GetRegionByID returns a region by id, or nil when it does not exist
func (r *RegionRepository) GetRegionByID(id int64) (*models.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions WHERE id = ?`

	region, err := scanRegion(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get region %d: %w", id, err)
	}
	return region, nil
}

// GetRegionContaining returns a region whose bounding box contains the
// point, preferring the active one, or nil when no region covers it
func (r *RegionRepository) GetRegionContaining(lat, lng float64) (*models.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions
		WHERE min_lat <= ? AND max_lat >= ? AND min_lng <= ? AND max_lng >= ?
		ORDER BY active DESC, id ASC LIMIT 1`

	region, err := scanRegion(r.db.QueryRow(query, lat, lat, lng, lng))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find region containing (%f, %f): %w", lat, lng, err)
	}
	return region, nil
}

// ListRegions returns all regions ordered by name
func (r *RegionRepository) ListRegions() ([]models.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query regions: %w", err)
	}
	defer rows.Close()

	var regions []models.Region
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, *region)
	}
	return regions, rows.Err()
}

// CreateRegion inserts a new region and returns it with its id set.
// When active is requested the previously active region is
// deactivated in the same transaction.
func (r *RegionRepository) CreateRegion(region *models.Region) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if region.Active {
			if _, err := tx.Exec("UPDATE regions SET active = 0, updated_at = CURRENT_TIMESTAMP WHERE active = 1"); err != nil {
				return fmt.Errorf("failed to deactivate regions: %w", err)
			}
		}

		res, err := tx.Exec(`INSERT INTO regions
			(name, min_lat, max_lat, min_lng, max_lng, dem_path, dem_meta_path, active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			region.Name, region.MinLat, region.MaxLat, region.MinLng, region.MaxLng,
			region.DemPath, region.DemMetaPath, region.Active,
		)
		if err != nil {
			return fmt.Errorf("failed to insert region: %w", err)
		}

		region.ID, err = res.LastInsertId()
		return err
	})
}

// SetActiveRegion marks the given region active and deactivates any
// other, atomically
func (r *RegionRepository) SetActiveRegion(id int64) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("UPDATE regions SET active = 0, updated_at = CURRENT_TIMESTAMP WHERE active = 1"); err != nil {
			return fmt.Errorf("failed to deactivate regions: %w", err)
		}

		res, err := tx.Exec("UPDATE regions SET active = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to activate region %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("region %d not found", id)
		}
		return nil
	})
}

// DeleteRegion removes a region by id
func (r *RegionRepository) DeleteRegion(id int64) error {
	res, err := r.db.Exec("DELETE FROM regions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete region %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("region %d not found", id)
	}
	return nil
}
