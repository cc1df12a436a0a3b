// Package bootstrap assembles the engine, its persistence and the HTTP
// surfaces from a Config.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	bonussvc "empire-builder/internal/application/bonus"
	"empire-builder/internal/application/economy"
	"empire-builder/internal/application/saves"
	"empire-builder/internal/config"
	"empire-builder/internal/domain"
	"empire-builder/internal/infrastructure/database"
	"empire-builder/internal/infrastructure/store"
	"empire-builder/internal/interfaces/router"
	"empire-builder/internal/interfaces/stream"
	"empire-builder/internal/pkg/clock"
	"empire-builder/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

type pingStore interface {
	store.Store
	Ping(ctx context.Context) error
}

// App is the fully wired process.
type App struct {
	Config *config.Config
	Fiber  *fiber.App
	Engine *economy.Engine
	Loop   *economy.Loop
	Hub    *stream.Hub
	// Stream is nil when STREAM_ADDR is empty.
	Stream *http.Server

	closers []func() error
}

// New builds every component and loads the save. It starts nothing.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	return NewWithClock(ctx, cfg, clock.RealClock{})
}

func NewWithClock(ctx context.Context, cfg *config.Config, clk clock.Clock) (*App, error) {
	a := &App{Config: cfg}

	cat, err := domain.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opt)
		a.closers = append(a.closers, rdb.Close)
	}

	var st pingStore
	switch cfg.SaveBackend {
	case constants.SaveBackendRedis:
		st = &store.RedisStore{Rdb: rdb, Name: cfg.SaveName}
	default:
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		if err := database.AutoMigrate(db); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		st = &store.GormStore{DB: db, Name: cfg.SaveName}
	}

	saveSvc := &saves.Service{Store: st, Catalog: cat, Clock: clk}
	a.Engine = economy.NewEngine(cat, saveSvc.Load(ctx), saveSvc)

	a.Hub = stream.NewHub()
	a.Loop = &economy.Loop{
		Engine:           a.Engine,
		Clock:            clk,
		TickInterval:     cfg.TickInterval,
		AutosaveInterval: cfg.AutosaveInterval,
	}
	if cfg.StreamAddr != "" {
		pub := &stream.Publisher{Hub: a.Hub, Clock: clk, Interval: cfg.StreamInterval}
		a.Loop.Publish = pub.Publish
		a.Stream = stream.NewServer(cfg.StreamAddr, a.Hub)
	}

	a.Fiber = router.CreateApp(cfg, router.Deps{
		Engine: a.Engine,
		Bonus: &bonussvc.Service{
			Gateway: &bonussvc.HTTPGateway{URL: cfg.BonusURL},
			Engine:  a.Engine,
		},
		Issuer: bonussvc.NewIssuer(clk, cfg.BonusCooldown),
		Store:  st,
		Rdb:    rdb,
	})

	log.Info().
		Str("save_backend", cfg.SaveBackend).
		Str("save_name", cfg.SaveName).
		Int("assets", len(cat)).
		Bool("redis", rdb != nil).
		Bool("stream", a.Stream != nil).
		Msg("App assembled")
	return a, nil
}

// Run serves until ctx is cancelled, then shuts the listeners down, stops the
// loop (which saves one last time) and releases connections.
func (a *App) Run(ctx context.Context) error {
	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		a.Loop.Run(loopCtx)
		close(loopDone)
	}()

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	if a.Stream != nil {
		go a.Hub.Run(hubCtx)
		go func() {
			log.Info().Str("addr", a.Stream.Addr).Msg("Stream listening")
			if err := a.Stream.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Stream server failed")
			}
		}()
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", a.Config.Port).Msg("Server running")
		listenErr <- a.Fiber.Listen(":" + a.Config.Port)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-listenErr:
	}
	log.Info().Msg("Shutting down")

	if err := a.Fiber.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Warn().Err(err).Msg("HTTP shutdown")
	}
	if a.Stream != nil {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.Stream.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("Stream shutdown")
		}
		cancel()
		stopHub()
	}
	stopLoop()
	<-loopDone
	a.Close()
	return runErr
}

// Close releases database and Redis connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("Close")
		}
	}
	a.closers = nil
}
