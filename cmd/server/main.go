package main

import (
	"log"

	"github.com/trailmap/terrain-backend-go/internal/api"
	"github.com/trailmap/terrain-backend-go/internal/config"
	"github.com/trailmap/terrain-backend-go/internal/database"
	"github.com/trailmap/terrain-backend-go/internal/handler"
	"github.com/trailmap/terrain-backend-go/internal/repository"
	"github.com/trailmap/terrain-backend-go/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	if err := database.Migrate(database.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// 组装依赖
	regionRepo := repository.NewRegionRepository(database.GetDB())
	regionService := service.NewRegionService(regionRepo, cfg.DemDir)
	terrainService := service.NewTerrainQueryService(regionService, cfg.SearchStepM, cfg.SearchMaxSamples)

	terrainHandler := handler.NewTerrainHandler(terrainService)
	regionHandler := handler.NewRegionHandler(regionService)

	// 初始化路由
	router := api.SetupRouter(cfg, terrainHandler, regionHandler)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
