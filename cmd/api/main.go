// Package main is the entry point for the eve-attrengine API.
//
// @title eve-attrengine API
// @version 1.0
// @description JSON façade over the attribute propagation engine: fits,
// @description holders, effective attributes, and restriction validators.
//
// @license.name MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @tag.name Fits
// @tag.description Fit lifecycle: create, delete, recompute
//
// @tag.name Holders
// @tag.description Fitting and removing ships, modules, drones, implants, boosters, skills
//
// @tag.name Attributes
// @tag.description Reading and overriding a holder's effective attributes
//
// @tag.name Restrictions
// @tag.description Slot count, rig size, and capital-item validation
package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/eve-attrengine/internal/api"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
	applogger "github.com/Sternrassler/eve-attrengine/pkg/logger"
)

func main() {
	ctx := context.Background()
	appLogger := applogger.New()

	store, closeStore := openStore(ctx)
	defer closeStore()

	redisURL := getEnv("REDIS_URL", "redis://localhost:6379/0")
	if redisOpts, err := redis.ParseURL(redisURL); err == nil {
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed, running without attribute cache sharing: %v", err)
		} else {
			log.Println("Redis connection established")
			store = sde.NewCachingStore(store, redisClient, 0)
		}
	} else {
		log.Printf("Warning: invalid REDIS_URL, running without attribute cache sharing: %v", err)
	}

	cfg := api.DefaultConfig()
	cfg.AllowOrigins = getEnv("CORS_ORIGINS", cfg.AllowOrigins)
	cfg.RecomputeRPS = getEnvFloat("RECOMPUTE_RPS", cfg.RecomputeRPS)
	cfg.RecomputeBurst = getEnvInt("RECOMPUTE_BURST", cfg.RecomputeBurst)

	app := api.New(store, appLogger, cfg)

	port := getEnv("PORT", "8080")
	log.Printf("Starting eve-attrengine API on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// openStore picks a SQLite or Postgres backing store from the
// environment, defaulting to SQLite against the bundled SDE export.
func openStore(ctx context.Context) (sde.Store, func()) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		store, err := sde.OpenPostgresStore(ctx, dsn)
		if err != nil {
			log.Fatalf("Failed to open postgres SDE store: %v", err)
		}
		log.Println("SDE store: postgres")
		return store, func() { store.Close() }
	}

	sqlitePath := getEnv("SDE_PATH", "data/sde/eve-sde.db")
	store, err := sde.OpenSQLiteStore(sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open sqlite SDE store at %s: %v", sqlitePath, err)
	}
	log.Println("SDE store: sqlite")
	return store, func() { store.Close() }
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
