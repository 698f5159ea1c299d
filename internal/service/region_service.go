package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/trailmap/terrain-backend-go/internal/models"
	"github.com/trailmap/terrain-backend-go/internal/repository"
	"github.com/trailmap/terrain-backend-go/internal/terrain"
)

// RegionService manages offline map regions and the terrain engine
// built from the active region's DEM. The decoded terrain service is
// cached per region id; switching regions invalidates it.
type RegionService struct {
	repo   *repository.RegionRepository
	demDir string // base directory for relative DEM paths

	mu             sync.Mutex
	cachedRegionID int64
	cachedTerrain  *terrain.Service
}

// NewRegionService creates a new region service. Relative DEM paths
// in region records are resolved against demDir; absolute paths are
// used as-is.
func NewRegionService(repo *repository.RegionRepository, demDir string) *RegionService {
	return &RegionService{repo: repo, demDir: demDir}
}

// GetActiveRegion returns the active region, or nil when none is set
func (s *RegionService) GetActiveRegion() (*models.Region, error) {
	return s.repo.GetActiveRegion()
}

// ListRegions returns all registered regions
func (s *RegionService) ListRegions() ([]models.Region, error) {
	return s.repo.ListRegions()
}

// GetRegionContaining returns a region covering the point, or nil
func (s *RegionService) GetRegionContaining(lat, lng float64) (*models.Region, error) {
	return s.repo.GetRegionContaining(lat, lng)
}

// CreateRegion validates and registers a new offline region. The DEM
// is decoded once up front so a malformed tile pack is rejected at
// registration instead of at first query.
func (s *RegionService) CreateRegion(req models.CreateRegionRequest) (*models.Region, error) {
	if req.MinLat >= req.MaxLat || req.MinLng >= req.MaxLng {
		return nil, fmt.Errorf("invalid region bounds: min must be strictly less than max")
	}

	metaPath := req.DemMetaPath
	if metaPath == "" {
		metaPath = req.DemPath + ".json"
	}

	region := &models.Region{
		Name:        req.Name,
		MinLat:      req.MinLat,
		MaxLat:      req.MaxLat,
		MinLng:      req.MinLng,
		MaxLng:      req.MaxLng,
		DemPath:     req.DemPath,
		DemMetaPath: metaPath,
		Active:      req.Active,
	}

	if _, err := loadTerrain(region, s.demDir); err != nil {
		return nil, fmt.Errorf("region tile pack rejected: %w", err)
	}

	if err := s.repo.CreateRegion(region); err != nil {
		return nil, err
	}
	if region.Active {
		s.invalidate()
	}
	log.Printf("[RegionService] Registered region %d (%s)", region.ID, region.Name)
	return region, nil
}

// SetActiveRegion switches the active region and drops the cached
// terrain engine
func (s *RegionService) SetActiveRegion(id int64) error {
	if err := s.repo.SetActiveRegion(id); err != nil {
		return err
	}
	s.invalidate()
	log.Printf("[RegionService] Activated region %d", id)
	return nil
}

// DeleteRegion removes a region
func (s *RegionService) DeleteRegion(id int64) error {
	if err := s.repo.DeleteRegion(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// TerrainForActiveRegion returns the terrain engine for the active
// region, building and caching it on first use. Returns a nil service
// when no region is active.
func (s *RegionService) TerrainForActiveRegion() (*terrain.Service, *models.Region, error) {
	region, err := s.repo.GetActiveRegion()
	if err != nil {
		return nil, nil, err
	}
	if region == nil {
		return nil, nil, nil
	}
	svc, err := s.terrainFor(region)
	if err != nil {
		return nil, nil, err
	}
	return svc, region, nil
}

// TerrainForPoint resolves the terrain engine covering the point: the
// active region when it contains it, otherwise any registered region
// that does. Returns a nil service when no region covers the point.
func (s *RegionService) TerrainForPoint(lat, lng float64) (*terrain.Service, *models.Region, error) {
	region, err := s.repo.GetActiveRegion()
	if err != nil {
		return nil, nil, err
	}
	if region == nil || !region.Contains(lat, lng) {
		region, err = s.repo.GetRegionContaining(lat, lng)
		if err != nil {
			return nil, nil, err
		}
		if region == nil {
			return nil, nil, nil
		}
	}
	svc, err := s.terrainFor(region)
	if err != nil {
		return nil, nil, err
	}
	return svc, region, nil
}

func (s *RegionService) terrainFor(region *models.Region) (*terrain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachedTerrain != nil && s.cachedRegionID == region.ID {
		return s.cachedTerrain, nil
	}

	svc, err := loadTerrain(region, s.demDir)
	if err != nil {
		return nil, err
	}
	s.cachedRegionID = region.ID
	s.cachedTerrain = svc
	log.Printf("[RegionService] Decoded DEM for region %d (%s)", region.ID, region.Name)
	return svc, nil
}

func (s *RegionService) invalidate() {
	s.mu.Lock()
	s.cachedTerrain = nil
	s.cachedRegionID = 0
	s.mu.Unlock()
}

// loadTerrain reads a region's DEM buffer and metadata sidecar from
// disk and constructs the terrain engine. Relative paths are resolved
// against demDir.
func loadTerrain(region *models.Region, demDir string) (*terrain.Service, error) {
	metaRaw, err := os.ReadFile(resolvePath(demDir, region.DemMetaPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read DEM metadata: %w", err)
	}

	var meta terrain.Metadata
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse DEM metadata: %w", err)
	}
	if meta.Format != "grid" {
		return nil, fmt.Errorf("unsupported DEM format %q", meta.Format)
	}
	// Decoding assumes little-endian int16 cells; a sidecar declaring
	// anything else must not be decoded as if it were.
	if meta.Encoding != "" && meta.Encoding != "int16" {
		return nil, fmt.Errorf("unsupported DEM encoding %q", meta.Encoding)
	}

	buf, err := os.ReadFile(resolvePath(demDir, region.DemPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read DEM buffer: %w", err)
	}

	return terrain.New(meta, buf)
}

func resolvePath(demDir, path string) string {
	if demDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(demDir, path)
}
