package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"github.com/Sternrassler/eve-attrengine/internal/sde"
	applogger "github.com/Sternrassler/eve-attrengine/pkg/logger"
)

// Config configures the façade's fiber app.
type Config struct {
	AllowOrigins   string
	RecomputeRPS   float64
	RecomputeBurst int
}

// DefaultConfig matches the teacher's dev-environment defaults.
func DefaultConfig() Config {
	return Config{
		AllowOrigins:   "http://localhost:9000",
		RecomputeRPS:   2,
		RecomputeBurst: 5,
	}
}

// New assembles the fiber app exposing store over HTTP.
func New(store sde.Store, log *applogger.Logger, cfg Config) *fiber.App {
	fits := NewFitStore(store, log)

	app := fiber.New(fiber.Config{
		AppName: "eve-attrengine API",
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	fitsHandler := NewFitsHandler(fits)
	holdersHandler := NewHoldersHandler(fits)
	attributesHandler := NewAttributesHandler(fits)
	restrictionsHandler := NewRestrictionsHandler(fits)
	recomputeHandler := NewRecomputeHandler(fits, cfg.RecomputeRPS, cfg.RecomputeBurst)

	api := app.Group("/api/v1")
	api.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api.Post("/fits", fitsHandler.CreateFit)
	api.Delete("/fits/:id", fitsHandler.DeleteFit)
	api.Post("/fits/:id/recompute", recomputeHandler.Recompute)

	api.Post("/fits/:id/holders", holdersHandler.AddHolder)
	api.Delete("/fits/:id/holders/:holderID", holdersHandler.RemoveHolder)
	api.Patch("/fits/:id/holders/:holderID/state", holdersHandler.SetHolderState)

	api.Get("/fits/:id/holders/:holderID/attributes/:attrID", attributesHandler.GetAttribute)
	api.Put("/fits/:id/holders/:holderID/attributes/:attrID", attributesHandler.SetAttribute)

	api.Get("/fits/:id/restrictions", restrictionsHandler.GetRestrictions)

	return app
}
