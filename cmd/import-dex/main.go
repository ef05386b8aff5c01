// Package main provides the species import tool. It loads species
// reference files into the species table so the server can run with the
// "store" dex source.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/ptaonline/tabletop/internal/config"
	"github.com/ptaonline/tabletop/internal/importer"
	"github.com/ptaonline/tabletop/internal/observability"
	"github.com/ptaonline/tabletop/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	speciesDir := flag.String("species", "content/species", "directory of species YAML/JSON files")
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

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	imp := importer.New(importer.FileSource{}, postgres.NewSpeciesRepository(pool.DB()), logger)

	count, err := imp.Run(ctx, *speciesDir)
	if err != nil {
		logger.Fatal("importing species", zap.Error(err))
	}

	logger.Info("import finished",
		zap.Int("species", count),
		zap.Duration("elapsed", time.Since(start)),
	)
}
