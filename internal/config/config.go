package config

import (
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	DemDir    string // base directory for relative region DEM paths
	JWTSecret string

	// Highest-point search defaults
	SearchStepM      float64 // sampling pitch in meters
	SearchMaxSamples int     // hard probe cap per search

	// Rate limiting on the terrain endpoints
	RateLimitPerMinute int
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/regions/regions.db"
	}

	demDir := os.Getenv("DEM_DIR")
	if demDir == "" {
		demDir = "./data/dem"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:               port,
		DBPath:             dbPath,
		DemDir:             demDir,
		JWTSecret:          jwtSecret,
		SearchStepM:        getenvFloat("SEARCH_STEP_M", 50),
		SearchMaxSamples:   getenvInt("SEARCH_MAX_SAMPLES", 4000),
		RateLimitPerMinute: getenvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
