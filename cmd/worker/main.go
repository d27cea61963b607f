package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/map-service/internal/config"
	"github.com/map-service/internal/domain/repository"
	"github.com/map-service/internal/infrastructure/mapbox"
	"github.com/map-service/internal/pkg/logger"
	"github.com/map-service/internal/provider"
	"github.com/map-service/internal/repository/cache"
	"github.com/map-service/internal/repository/postgres"
	redisRepo "github.com/map-service/internal/repository/redis"
	"github.com/map-service/internal/usecase"
	"github.com/map-service/internal/worker"
	"github.com/map-service/internal/worker/styles"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.NewNamed(cfg.Log.Level, "map-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Styles Refresh Worker")
	log.Info("Configuration loaded",
		zap.Duration("refresh_interval", cfg.Worker.RefreshInterval),
		zap.Strings("providers", cfg.Worker.Providers))

	// 3. Connect to PostgreSQL (optional)
	var optionRepo repository.OptionRepository
	if cfg.Database.Enabled {
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		optionRepo = postgres.NewOptionRepository(db)
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize use case
	registry := provider.NewRegistry()
	if err := registry.Register(mapbox.Identity(), mapbox.Factory(mapbox.WithBaseURL(cfg.Maps.MapboxBaseURL))); err != nil {
		log.Fatal("Failed to register provider", zap.Error(err))
	}

	mapUC := usecase.NewMapUseCase(
		registry,
		optionRepo,
		cache.NewCacheRepository(redisClient),
		cfg.Maps.Options(),
		config.OptionKeys(),
		cfg.Cache.StylesCacheTTL,
		log,
	)

	// 6. Create worker manager and register workers
	workerManager := worker.NewManager(log, worker.DefaultShutdownTimeout)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	workers := []worker.Worker{
		styles.NewRefreshWorker(mapUC, cfg.Worker.Providers, cfg.Worker.RefreshInterval, log),
		styles.NewEventWorker(streamRepo, mapUC, log),
	}
	for _, w := range workers {
		if err := workerManager.Register(w); err != nil {
			log.Fatal("Failed to register worker", zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
