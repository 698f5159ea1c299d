package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/trailmap/terrain-backend-go/internal/models"
	"github.com/trailmap/terrain-backend-go/internal/service"
	"github.com/trailmap/terrain-backend-go/pkg/response"
)

// TerrainHandler handles HTTP requests for terrain queries
type TerrainHandler struct {
	service *service.TerrainQueryService
}

// NewTerrainHandler creates a new terrain handler
func NewTerrainHandler(service *service.TerrainQueryService) *TerrainHandler {
	return &TerrainHandler{service: service}
}

// GetElevation handles GET /api/v1/terrain/elevation
func (h *TerrainHandler) GetElevation(c *gin.Context) {
	var q models.PointQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: lat and lng are required", err)
		return
	}

	result, err := h.service.ElevationAt(*q.Lat, *q.Lng)
	if err != nil {
		response.InternalError(c, "Failed to query elevation", err)
		return
	}
	response.Success(c, result)
}

// GetSlope handles GET /api/v1/terrain/slope
func (h *TerrainHandler) GetSlope(c *gin.Context) {
	var q models.PointQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: lat and lng are required", err)
		return
	}

	result, err := h.service.SlopeAt(*q.Lat, *q.Lng)
	if err != nil {
		response.InternalError(c, "Failed to query slope", err)
		return
	}
	response.Success(c, result)
}

// GetHighestPoint handles GET /api/v1/terrain/highest-point
func (h *TerrainHandler) GetHighestPoint(c *gin.Context) {
	var q models.HighestPointQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: lat, lng and radius_m are required", err)
		return
	}

	// A non-positive radius yields a null result inside the engine;
	// no parameter is a fault here.
	result, err := h.service.HighestPointWithin(*q.Lat, *q.Lng, *q.RadiusM, q.StepM)
	if err != nil {
		response.InternalError(c, "Failed to search highest point", err)
		return
	}
	response.Success(c, gin.H{"highest_point": result})
}

// Inspect handles GET /api/v1/terrain/inspect
func (h *TerrainHandler) Inspect(c *gin.Context) {
	var q models.PointQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: lat and lng are required", err)
		return
	}

	result, err := h.service.InspectAt(*q.Lat, *q.Lng)
	if err != nil {
		response.InternalError(c, "Failed to inspect point", err)
		return
	}
	response.Success(c, result)
}
