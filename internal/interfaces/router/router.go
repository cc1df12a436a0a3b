package router

import (
	bonussvc "empire-builder/internal/application/bonus"
	"empire-builder/internal/application/economy"
	healthsvc "empire-builder/internal/application/health"
	"empire-builder/internal/config"
	bonushandler "empire-builder/internal/interfaces/handlers/bonus"
	gamehandler "empire-builder/internal/interfaces/handlers/game"
	healthhandler "empire-builder/internal/interfaces/handlers/health"
	"empire-builder/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Deps are the already-built services the HTTP surface exposes.
type Deps struct {
	Engine *economy.Engine
	Bonus  *bonussvc.Service
	Issuer *bonussvc.Issuer
	Store  healthsvc.Pinger
	// Rdb carries the health counters; nil disables them.
	Rdb *redis.Client
}

func CreateApp(cfg *config.Config, d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.HealthMarker(d.Rdb))
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            d.Rdb,
		Store:          d.Store,
		Game:           d.Engine,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	bh := &bonushandler.Handlers{Issuer: d.Issuer}
	app.Get("/api/daily-bonus", bh.DailyBonus)

	gh := &gamehandler.Handlers{Engine: d.Engine, Bonus: d.Bonus}
	g := app.Group("/api/v1/game")
	g.Get("/state", gh.State)
	g.Post("/click", gh.Click)
	g.Post("/buy", gh.Buy)
	g.Get("/prestige", gh.PrestigePreview)
	g.Post("/prestige", gh.Prestige)
	g.Post("/bonus", gh.ClaimBonus)
	g.Post("/save", gh.Save)
	g.Delete("/save", gh.Wipe)

	return app
}
