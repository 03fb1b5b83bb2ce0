package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"tourdesk/internal/cache"
	"tourdesk/internal/catalog"
	"tourdesk/internal/config"
	"tourdesk/internal/database"
	"tourdesk/internal/logger"
	"tourdesk/internal/repository"
	"tourdesk/internal/search"
)

var (
	dryRun  = flag.Bool("dry-run", false, "Show what would be seeded without making changes")
	reindex = flag.Bool("reindex", true, "Push the seeded catalog into Elasticsearch when enabled")
)

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Starting catalog seed...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	regions, err := catalog.NewStatic().Regions(ctx)
	if err != nil {
		logger.Fatal("Failed to load built-in catalog", "error", err)
	}
	stats := catalog.Summarize(regions)

	if *dryRun {
		slog.Info("Dry run: would seed catalog",
			"regions", stats.Regions, "countries", stats.Countries, "cities", stats.Cities, "shows", stats.Shows)
		return
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := repository.NewRepositories(db).Shows.ReplaceAll(ctx, regions); err != nil {
		logger.Fatal("Failed to seed catalog", "error", err)
	}
	slog.Info("Seeded catalog", "regions", stats.Regions, "shows", stats.Shows)

	if cfg.Valkey.Enabled {
		if vc, err := cache.NewValkeyClient(cfg.Valkey); err != nil {
			slog.Warn("Skipping cache invalidation", "error", err)
		} else {
			if err := vc.InvalidateCatalog(ctx); err != nil {
				slog.Warn("Failed to invalidate catalog cache", "error", err)
			}
			vc.Close()
		}
	}

	if *reindex && cfg.Elasticsearch.Enabled {
		es, err := search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			logger.Fatal("Failed to connect to Elasticsearch", "error", err)
		}
		if err := es.IndexShows(ctx, catalog.Documents(regions)); err != nil {
			logger.Fatal("Failed to index shows", "error", err)
		}
	}

	slog.Info("Catalog seed completed successfully!")
}
