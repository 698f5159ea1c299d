package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trailmap/terrain-backend-go/internal/config"
	"github.com/trailmap/terrain-backend-go/internal/handler"
	"github.com/trailmap/terrain-backend-go/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, terrainHandler *handler.TerrainHandler, regionHandler *handler.RegionHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Terrain Backend API is running",
		})
	})

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 地形查询接口
		terrain := api.Group("/terrain")
		terrain.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		{
			terrain.GET("/elevation", terrainHandler.GetElevation)
			terrain.GET("/slope", terrainHandler.GetSlope)
			terrain.GET("/highest-point", terrainHandler.GetHighestPoint)
			terrain.GET("/inspect", terrainHandler.Inspect)
		}

		// 离线区域接口
		regions := api.Group("/regions")
		{
			regions.GET("", regionHandler.ListRegions)
			regions.GET("/active", regionHandler.GetActiveRegion)
			regions.GET("/containing", regionHandler.GetRegionContaining)

			// 管理接口需要认证
			admin := regions.Group("")
			admin.Use(middleware.Auth(cfg.JWTSecret))
			{
				admin.POST("", regionHandler.CreateRegion)
				admin.PUT("/:id/activate", regionHandler.ActivateRegion)
				admin.DELETE("/:id", regionHandler.DeleteRegion)
			}
		}
	}

	return r
}
