package service_test

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/trailmap/terrain-backend-go/internal/database"
	"github.com/trailmap/terrain-backend-go/internal/models"
	"github.com/trailmap/terrain-backend-go/internal/repository"
	"github.com/trailmap/terrain-backend-go/internal/service"
	"github.com/trailmap/terrain-backend-go/internal/spatial"
	"github.com/trailmap/terrain-backend-go/internal/terrain"
)

// writeDEM writes a DEM tile pack (raw buffer + metadata sidecar) for
// a grid filled with value, returning the buffer path.
func writeDEM(t *testing.T, dir, name string, width, height int, value int16, bounds terrain.Bounds) string {
	t.Helper()

	buf := make([]byte, width*height*2)
	for i := 0; i < width*height; i++ {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(value))
	}
	demPath := filepath.Join(dir, name+".dem")
	assert.NoError(t, os.WriteFile(demPath, buf, 0o644))

	meta := terrain.Metadata{
		Format:   "grid",
		Width:    width,
		Height:   height,
		Encoding: "int16",
		Nodata:   terrain.NodataValue,
		Units:    "m",
		Bounds:   bounds,
	}
	metaRaw, err := json.Marshal(meta)
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(demPath+".json", metaRaw, 0o644))

	return demPath
}

func newRegionService(t *testing.T) *service.RegionService {
	return newRegionServiceWithDemDir(t, "")
}

func newRegionServiceWithDemDir(t *testing.T, demDir string) *service.RegionService {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "regions.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	assert.NoError(t, database.Migrate(db))

	return service.NewRegionService(repository.NewRegionRepository(db), demDir)
}

func TestCreateRegionRejectsMalformedTilePack(t *testing.T) {
	svc := newRegionService(t)
	dir := t.TempDir()

	// Buffer shorter than the declared dimensions.
	demPath := filepath.Join(dir, "broken.dem")
	assert.NoError(t, os.WriteFile(demPath, make([]byte, 10), 0o644))
	meta := terrain.Metadata{
		Format: "grid", Width: 4, Height: 4, Encoding: "int16",
		Nodata: terrain.NodataValue, Units: "m",
		Bounds: terrain.Bounds{MinLat: 47, MinLng: 8, MaxLat: 47.1, MaxLng: 8.1},
	}
	metaRaw, _ := json.Marshal(meta)
	assert.NoError(t, os.WriteFile(demPath+".json", metaRaw, 0o644))

	_, err := svc.CreateRegion(models.CreateRegionRequest{
		Name:   "broken",
		MinLat: 47, MaxLat: 47.1, MinLng: 8, MaxLng: 8.1,
		DemPath: demPath,
	})
	assert.Error(t, err)

	// Missing sidecar.
	_, err = svc.CreateRegion(models.CreateRegionRequest{
		Name:   "missing",
		MinLat: 47, MaxLat: 47.1, MinLng: 8, MaxLng: 8.1,
		DemPath: filepath.Join(dir, "does-not-exist.dem"),
	})
	assert.Error(t, err)

	// Inverted bounds.
	_, err = svc.CreateRegion(models.CreateRegionRequest{
		Name:   "inverted",
		MinLat: 47.1, MaxLat: 47, MinLng: 8, MaxLng: 8.1,
		DemPath: demPath,
	})
	assert.Error(t, err)

	// A sidecar declaring a foreign cell encoding must not be decoded
	// as little-endian int16.
	floatDEM := filepath.Join(dir, "float.dem")
	assert.NoError(t, os.WriteFile(floatDEM, make([]byte, 4*4*2), 0o644))
	meta.Encoding = "float32"
	metaRaw, _ = json.Marshal(meta)
	assert.NoError(t, os.WriteFile(floatDEM+".json", metaRaw, 0o644))

	_, err = svc.CreateRegion(models.CreateRegionRequest{
		Name:   "float",
		MinLat: 47, MaxLat: 47.1, MinLng: 8, MaxLng: 8.1,
		DemPath: floatDEM,
	})
	assert.Error(t, err)
}

func TestCreateRegionResolvesRelativePaths(t *testing.T) {
	demDir := t.TempDir()
	svc := newRegionServiceWithDemDir(t, demDir)

	bounds := terrain.Bounds{MinLat: 47, MinLng: 8, MaxLat: 47.1, MaxLng: 8.1}
	writeDEM(t, demDir, "zurich", 8, 8, 555, bounds)

	// The region stores paths relative to the DEM directory.
	_, err := svc.CreateRegion(models.CreateRegionRequest{
		Name:   "zurich",
		MinLat: bounds.MinLat, MaxLat: bounds.MaxLat,
		MinLng: bounds.MinLng, MaxLng: bounds.MaxLng,
		DemPath: "zurich.dem",
		Active:  true,
	})
	assert.NoError(t, err)

	eng, _, err := svc.TerrainForActiveRegion()
	assert.NoError(t, err)
	h, ok := eng.Elevation(47.05, 8.05)
	assert.True(t, ok)
	assert.Equal(t, 555.0, h)
}

func TestTerrainForActiveRegion(t *testing.T) {
	svc := newRegionService(t)
	bounds := terrain.Bounds{MinLat: 47, MinLng: 8, MaxLat: 47.1, MaxLng: 8.1}
	demPath := writeDEM(t, t.TempDir(), "zurich", 8, 8, 555, bounds)

	_, err := svc.CreateRegion(models.CreateRegionRequest{
		Name:   "zurich",
		MinLat: bounds.MinLat, MaxLat: bounds.MaxLat,
		MinLng: bounds.MinLng, MaxLng: bounds.MaxLng,
		DemPath: demPath,
		Active:  true,
	})
	assert.NoError(t, err)

	eng, region, err := svc.TerrainForActiveRegion()
	assert.NoError(t, err)
	assert.NotZero(t, region)
	assert.Equal(t, "zurich", region.Name)

	h, ok := eng.Elevation(47.05, 8.05)
	assert.True(t, ok)
	assert.Equal(t, 555.0, h)

	// Second call hits the cached engine for the same region.
	eng2, _, err := svc.TerrainForActiveRegion()
	assert.NoError(t, err)
	assert.Equal(t, eng, eng2)
}

func TestTerrainForActiveRegionNoneActive(t *testing.T) {
	svc := newRegionService(t)

	eng, region, err := svc.TerrainForActiveRegion()
	assert.NoError(t, err)
	assert.Zero(t, eng)
	assert.Zero(t, region)
}

func TestTerrainForPointFallsBackToCoveringRegion(t *testing.T) {
	svc := newRegionService(t)
	dir := t.TempDir()

	zurichBounds := terrain.Bounds{MinLat: 47, MinLng: 8, MaxLat: 47.1, MaxLng: 8.1}
	bernBounds := terrain.Bounds{MinLat: 46.9, MinLng: 7.4, MaxLat: 47.0, MaxLng: 7.5}

	zurichDEM := writeDEM(t, dir, "zurich", 8, 8, 400, zurichBounds)
	bernDEM := writeDEM(t, dir, "bern", 8, 8, 540, bernBounds)

	_, err := svc.CreateRegion(models.CreateRegionRequest{
		Name:   "zurich",
		MinLat: zurichBounds.MinLat, MaxLat: zurichBounds.MaxLat,
		MinLng: zurichBounds.MinLng, MaxLng: zurichBounds.MaxLng,
		DemPath: zurichDEM,
		Active:  true,
	})
	assert.NoError(t, err)
	_, err = svc.CreateRegion(models.CreateRegionRequest{
		Name:   "bern",
		MinLat: bernBounds.MinLat, MaxLat: bernBounds.MaxLat,
		MinLng: bernBounds.MinLng, MaxLng: bernBounds.MaxLng,
		DemPath: bernDEM,
	})
	assert.NoError(t, err)

	// Point inside the active region: answered by it.
	eng, region, err := svc.TerrainForPoint(47.05, 8.05)
	assert.NoError(t, err)
	assert.Equal(t, "zurich", region.Name)
	h, ok := eng.Elevation(47.05, 8.05)
	assert.True(t, ok)
	assert.Equal(t, 400.0, h)

	// Point outside the active region but inside another: fall back.
	eng, region, err = svc.TerrainForPoint(46.95, 7.45)
	assert.NoError(t, err)
	assert.Equal(t, "bern", region.Name)
	h, ok = eng.Elevation(46.95, 7.45)
	assert.True(t, ok)
	assert.Equal(t, 540.0, h)

	// Point nobody covers.
	eng, region, err = svc.TerrainForPoint(0, 0)
	assert.NoError(t, err)
	assert.Zero(t, eng)
	assert.Zero(t, region)
}

func TestTerrainQueryServiceNullResults(t *testing.T) {
	regions := newRegionService(t)
	queries := service.NewTerrainQueryService(regions, 50, 4000)

	// No regions registered at all: null results, not errors.
	elev, err := queries.ElevationAt(47.05, 8.05)
	assert.NoError(t, err)
	assert.Zero(t, elev.ElevationM)

	slope, err := queries.SlopeAt(47.05, 8.05)
	assert.NoError(t, err)
	assert.Zero(t, slope.SlopePercent)

	peak, err := queries.HighestPointWithin(47.05, 8.05, 500, 50)
	assert.NoError(t, err)
	assert.Zero(t, peak)

	inspect, err := queries.InspectAt(47.05, 8.05)
	assert.NoError(t, err)
	assert.Zero(t, inspect.ElevationM)
	assert.Equal(t, int64(0), inspect.RegionID)
}

func TestTerrainQueryServiceAgainstRealDEM(t *testing.T) {
	regions := newRegionService(t)
	queries := service.NewTerrainQueryService(regions, 50, 4000)

	bounds := terrain.Bounds{MinLat: 47, MinLng: 8, MaxLat: 47.1, MaxLng: 8.1}
	demPath := writeDEM(t, t.TempDir(), "zurich", 8, 8, 700, bounds)
	_, err := regions.CreateRegion(models.CreateRegionRequest{
		Name:   "zurich",
		MinLat: bounds.MinLat, MaxLat: bounds.MaxLat,
		MinLng: bounds.MinLng, MaxLng: bounds.MaxLng,
		DemPath: demPath,
		Active:  true,
	})
	assert.NoError(t, err)

	elev, err := queries.ElevationAt(47.05, 8.05)
	assert.NoError(t, err)
	assert.NotZero(t, elev.ElevationM)
	assert.Equal(t, 700.0, *elev.ElevationM)

	slope, err := queries.SlopeAt(47.05, 8.05)
	assert.NoError(t, err)
	assert.NotZero(t, slope.SlopePercent)
	assert.Equal(t, 0.0, *slope.SlopePercent)

	peak, err := queries.HighestPointWithin(47.05, 8.05, 300, 0) // step defaulted
	assert.NoError(t, err)
	assert.NotZero(t, peak)
	assert.Equal(t, 700.0, peak.ElevationM)

	// The reported distance is the great-circle distance from the
	// query center to the peak, and stays inside the search radius.
	assert.Equal(t, spatial.HaversineDistance(47.05, 8.05, peak.Lat, peak.Lng), peak.DistanceM)
	assert.True(t, peak.DistanceM >= 0 && peak.DistanceM <= 301)

	inspect, err := queries.InspectAt(47.05, 8.05)
	assert.NoError(t, err)
	assert.Equal(t, "zurich", inspect.RegionName)
	assert.NotZero(t, inspect.ElevationM)
}
