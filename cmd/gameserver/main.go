// Package main provides the session server binary: the HTTP API over the
// game, trainer, and pokemon stores.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/ptaonline/tabletop/internal/config"
	"github.com/ptaonline/tabletop/internal/dex"
	"github.com/ptaonline/tabletop/internal/game/builder"
	"github.com/ptaonline/tabletop/internal/game/session"
	"github.com/ptaonline/tabletop/internal/httpapi"
	"github.com/ptaonline/tabletop/internal/observability"
	"github.com/ptaonline/tabletop/internal/server"
	"github.com/ptaonline/tabletop/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting session server",
		zap.String("http_addr", cfg.Server.Addr()),
		zap.String("dex_source", cfg.Dex.Source),
	)

	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	games := postgres.NewGameRepository(pool.DB())
	trainers := postgres.NewTrainerRepository(pool.DB())
	pokemon := postgres.NewPokemonRepository(pool.DB())
	speciesRepo := postgres.NewSpeciesRepository(pool.DB())

	var species dex.Source
	switch cfg.Dex.Source {
	case "store":
		count, err := speciesRepo.Count(ctx)
		if err != nil {
			logger.Fatal("counting species", zap.Error(err))
		}
		if count == 0 {
			logger.Warn("species store is empty; run import-dex before creating pokemon")
		}
		species = speciesRepo
	default:
		species = dex.NewClient(cfg.Dex.BaseURL, cfg.Dex.Timeout)
	}

	auth := session.NewAuthenticator(trainers, cfg.Session.Secret,
		observability.Component(logger, "session"))
	b := builder.New(trainers, species)

	api := httpapi.NewAPI(
		observability.Component(logger, "httpapi"),
		b, auth, games, trainers, pokemon,
		func(ctx context.Context) error { return pool.Health(ctx, 5*time.Second) },
	)
	httpServer := httpapi.NewServer(cfg.Server, logger, api.Routes())

	lifecycle := server.NewLifecycle(logger)

	// The pool is registered first so shutdown, which stops services in
	// reverse order, closes it only after the HTTP server has drained.
	healthDone := make(chan struct{})
	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func() error {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-healthDone:
					return nil
				case <-ticker.C:
					if err := pool.Health(ctx, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				}
			}
		},
		StopFn: func() {
			close(healthDone)
			pool.Close()
		},
	})

	lifecycle.Add("http", httpServer)

	logger.Info("session server initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
