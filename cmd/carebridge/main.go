package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"carebridge/internal/api"
	"carebridge/internal/api/handlers"
	"carebridge/internal/repository"
	"carebridge/internal/service"
	"carebridge/pkg/auth"
	"carebridge/pkg/config"
	"carebridge/pkg/logger"
	"carebridge/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting carebridge service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	kv := repository.NewPostgresKV(db, appLogger)
	catalogRepo := repository.NewCatalogRepository(kv, appLogger)
	messageRepo := repository.NewMessageRepository(kv, appLogger)

	catalogService := service.NewCatalogService(catalogRepo, appLogger)
	analysisService := service.NewAnalysisService(catalogService, appLogger)
	messageService := service.NewMessageService(analysisService, messageRepo, appLogger)

	// Load (or seed) the catalog up front so the first analyze call does not
	// pay for it; Analyze still re-attempts on its own if this fails.
	if err := catalogService.Initialize(ctx); err != nil {
		appLogger.Warn("Knowledge catalog initialization deferred", zap.Error(err))
	}

	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret)

	analysisHandler := handlers.NewAnalysisHandler(analysisService, appLogger)
	knowledgeHandler := handlers.NewKnowledgeHandler(catalogService, appLogger)
	messageHandler := handlers.NewMessageHandler(messageService, appLogger)

	app := api.SetupRouter(analysisHandler, knowledgeHandler, messageHandler, verifier, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
