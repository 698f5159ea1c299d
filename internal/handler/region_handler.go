package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trailmap/terrain-backend-go/internal/models"
	"github.com/trailmap/terrain-backend-go/internal/service"
	"github.com/trailmap/terrain-backend-go/pkg/response"
)

// RegionHandler handles HTTP requests for offline map regions
type RegionHandler struct {
	service *service.RegionService
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(service *service.RegionService) *RegionHandler {
	return &RegionHandler{service: service}
}

// ListRegions handles GET /api/v1/regions
func (h *RegionHandler) ListRegions(c *gin.Context) {
	regions, err := h.service.ListRegions()
	if err != nil {
		response.InternalError(c, "Failed to list regions", err)
		return
	}
	response.Success(c, gin.H{
		"data":  regions,
		"count": len(regions),
	})
}

// GetActiveRegion handles GET /api/v1/regions/active
func (h *RegionHandler) GetActiveRegion(c *gin.Context) {
	region, err := h.service.GetActiveRegion()
	if err != nil {
		response.InternalError(c, "Failed to get active region", err)
		return
	}
	if region == nil {
		response.NotFound(c, "No active region")
		return
	}
	response.Success(c, region)
}

// GetRegionContaining handles GET /api/v1/regions/containing
func (h *RegionHandler) GetRegionContaining(c *gin.Context) {
	var q models.PointQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: lat and lng are required", err)
		return
	}

	region, err := h.service.GetRegionContaining(*q.Lat, *q.Lng)
	if err != nil {
		response.InternalError(c, "Failed to look up region", err)
		return
	}
	if region == nil {
		response.NotFound(c, "No region covers this point")
		return
	}
	response.Success(c, region)
}

// CreateRegion handles POST /api/v1/regions
func (h *RegionHandler) CreateRegion(c *gin.Context) {
	var req models.CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid region payload", err)
		return
	}

	region, err := h.service.CreateRegion(req)
	if err != nil {
		response.BadRequest(c, "Region rejected", err)
		return
	}
	response.Success(c, region)
}

// ActivateRegion handles PUT /api/v1/regions/:id/activate
func (h *RegionHandler) ActivateRegion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid region id", err)
		return
	}

	if err := h.service.SetActiveRegion(id); err != nil {
		response.Error(c, http.StatusNotFound, "Region not found", err)
		return
	}
	response.Success(c, gin.H{"id": id, "active": true})
}

// DeleteRegion handles DELETE /api/v1/regions/:id
func (h *RegionHandler) DeleteRegion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid region id", err)
		return
	}

	if err := h.service.DeleteRegion(id); err != nil {
		response.Error(c, http.StatusNotFound, "Region not found", err)
		return
	}
	response.Success(c, gin.H{"id": id, "deleted": true})
}
