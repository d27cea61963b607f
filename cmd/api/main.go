package main

// @title Map Service API
// @version 1.0.0
// @description Сервис построения карт для координат: URL статичной карты, ссылка на интерактивную карту, HTML-фрагмент и каталог стилей аккаунта.
// @description
// @description Провайдеры подключаются через реестр; эталонный провайдер - Mapbox.

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/map-service/docs"
	"github.com/map-service/internal/config"
	httpDelivery "github.com/map-service/internal/delivery/http"
	"github.com/map-service/internal/delivery/http/handler"
	"github.com/map-service/internal/domain/repository"
	"github.com/map-service/internal/infrastructure/mapbox"
	"github.com/map-service/internal/pkg/logger"
	"github.com/map-service/internal/provider"
	"github.com/map-service/internal/repository/cache"
	"github.com/map-service/internal/repository/postgres"
	redisRepo "github.com/map-service/internal/repository/redis"
	"github.com/map-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.NewNamed(cfg.Log.Level, "map-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Map Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("default_provider", cfg.Maps.DefaultProvider),
		zap.Bool("option_store", cfg.Database.Enabled),
	)

	checks := map[string]httpDelivery.HealthChecker{}

	// 3. Connect to PostgreSQL (option store)
	var optionRepo repository.OptionRepository
	var db *postgres.DB
	if cfg.Database.Enabled {
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}

		migrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = postgres.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			log.Fatal("Failed to prepare option store", zap.Error(err))
		}

		optionRepo = postgres.NewOptionRepository(db)
		checks["postgres"] = db
	} else {
		log.Info("Option store disabled, using configuration defaults only")
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	checks["redis"] = redisClient
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 5. Register providers
	registry := provider.NewRegistry()
	if err := registry.Register(mapbox.Identity(), mapbox.Factory(mapbox.WithBaseURL(cfg.Maps.MapboxBaseURL))); err != nil {
		log.Fatal("Failed to register provider", zap.Error(err))
	}
	if !registry.Has(cfg.Maps.DefaultProvider) {
		log.Warn("Default provider is not registered", zap.String("provider", cfg.Maps.DefaultProvider))
	}

	// 6. Initialize Use Cases
	mapUC := usecase.NewMapUseCase(
		registry,
		optionRepo,
		cacheRepo,
		cfg.Maps.Options(),
		config.OptionKeys(),
		cfg.Cache.StylesCacheTTL,
		log,
	)
	optionUC := usecase.NewOptionUseCase(optionRepo, config.OptionKeys(), log).
		WithRefreshEvents(streamRepo, config.RefreshTriggers())

	log.Info("Use cases initialized")

	// 7. Initialize HTTP Handlers & Server
	mapHandler := handler.NewMapHandler(mapUC, cfg.Maps.DefaultProvider, log)
	optionHandler := handler.NewOptionHandler(optionUC, log)

	server := httpDelivery.NewServer(cfg, log, mapHandler, optionHandler, checks)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
