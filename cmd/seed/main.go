package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"carebridge/internal/dto"
	"carebridge/internal/repository"
	"carebridge/internal/service"
	"carebridge/pkg/config"
	"carebridge/pkg/logger"
	"carebridge/pkg/postgres"

	"go.uber.org/zap"
)

// seed ingests knowledge items from a JSON file into the configured store.
// Running it against an empty store also writes the built-in default catalog
// first, the same way the server does on first use.
func main() {
	seedFile := flag.String("file", "", "path to a JSON file of {content, category, keywords?} items")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	kv := repository.NewPostgresKV(db, appLogger)
	catalogRepo := repository.NewCatalogRepository(kv, appLogger)
	catalogService := service.NewCatalogService(catalogRepo, appLogger)

	appLogger.Info("Starting knowledge catalog seeding")

	if err := catalogService.Initialize(ctx); err != nil {
		appLogger.Fatal("Failed to initialize knowledge catalog", zap.Error(err))
	}

	if *seedFile != "" {
		items, err := loadSeedFile(*seedFile)
		if err != nil {
			appLogger.Fatal("Failed to read seed file", zap.Error(err))
		}

		if err := catalogService.Ingest(ctx, items); err != nil {
			appLogger.Fatal("Failed to ingest seed items", zap.Error(err))
		}
		appLogger.Info("Seed items ingested", zap.Int("count", len(items)))
	}

	appLogger.Info("Knowledge catalog seeding completed",
		zap.Int("total_items", len(catalogService.Items())),
	)
}

func loadSeedFile(path string) ([]dto.IngestItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var items []dto.IngestItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i, item := range items {
		if item.Content == "" || item.Category == "" {
			return nil, fmt.Errorf("item %d: content and category are required", i)
		}
	}

	return items, nil
}
