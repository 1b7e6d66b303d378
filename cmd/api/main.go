// Package main runs the pantry-aware recipe discovery API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/application/discovery"
	"github.com/pantrychef/v1/internal/application/indexing"
	recipeapp "github.com/pantrychef/v1/internal/application/recipe"
	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/infrastructure/http/server"
	"github.com/pantrychef/v1/internal/infrastructure/monitoring"
	"github.com/pantrychef/v1/internal/infrastructure/persistence/memory"
	"github.com/pantrychef/v1/internal/infrastructure/persistence/redis"
	"github.com/pantrychef/v1/internal/infrastructure/search/elastic"
	memindex "github.com/pantrychef/v1/internal/infrastructure/search/memory"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"github.com/pantrychef/v1/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting discovery API",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	index, err := buildSearchIndex(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize search backend", zap.Error(err))
	}

	cache := buildCache(cfg, log)

	metrics := monitoring.NewMetricsCollector(prometheus.DefaultRegisterer, log)

	indexer := indexing.NewIndexer(index, log)
	recipeRepo := memory.NewRecipeRepository()
	recipeService := recipeapp.NewRecipeService(recipeRepo, indexer, log)
	discoveryService := discovery.NewService(index, cfg.Scoring, log)

	srv := server.New(cfg, log, discoveryService, recipeService, cache, metrics)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown did not complete cleanly", zap.Error(err))
	}
	log.Info("Discovery API stopped")
}

// buildSearchIndex selects the search backend: a configured URL means
// an external Elasticsearch-style cluster, otherwise the in-process
// index serves development and tests.
func buildSearchIndex(ctx context.Context, cfg *config.Config, log *zap.Logger) (outbound.SearchIndex, error) {
	if cfg.Search.URL == "" {
		log.Info("Using in-process search index")
		return memindex.NewIndex(), nil
	}

	client := elastic.NewClient(elastic.Config{
		BaseURL:  cfg.Search.URL,
		Index:    cfg.Search.Index,
		Username: cfg.Search.Username,
		Password: cfg.Search.Password,
		Timeout:  cfg.Search.Timeout,
	}, log)

	if err := client.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	log.Info("Connected to search backend",
		zap.String("url", cfg.Search.URL),
		zap.String("index", cfg.Search.Index),
	)
	return client, nil
}

// buildCache prefers Redis and falls back to process memory when it is
// unreachable, which keeps development setups dependency-free.
func buildCache(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
	cache, err := redis.NewCacheRepository(cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory cache",
			zap.String("addr", cfg.RedisAddr()),
			zap.Error(err),
		)
		return memory.NewCacheRepository()
	}
	log.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr()))
	return cache
}
