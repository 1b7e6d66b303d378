// Package server assembles the Gin engine and owns the HTTP listener
// lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/infrastructure/http/handlers"
	"github.com/pantrychef/v1/internal/infrastructure/http/middleware"
	"github.com/pantrychef/v1/internal/infrastructure/monitoring"
	"github.com/pantrychef/v1/internal/ports/inbound"
	"github.com/pantrychef/v1/internal/ports/outbound"
)

// Server wraps the HTTP listener and its routing table.
type Server struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
	router *gin.Engine
}

// New wires the middleware chain and the API routes.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	discoveryService inbound.DiscoveryService,
	recipeService inbound.RecipeService,
	cache outbound.CacheRepository,
	metrics *monitoring.MetricsCollector,
) *Server {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(requestid.New())
	router.Use(middleware.Logger(logger))
	if metrics != nil {
		router.Use(metrics.HTTPMiddleware())
	}
	router.Use(middleware.RateLimit(cache, cfg.RateLimit, logger))

	if len(cfg.Server.TrustedProxies) > 0 {
		_ = router.SetTrustedProxies(cfg.Server.TrustedProxies)
	}

	s := &Server{
		config: cfg,
		logger: logger.Named("http"),
		router: router,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}

	s.registerRoutes(discoveryService, recipeService, metrics)
	return s
}

func (s *Server) registerRoutes(
	discoveryService inbound.DiscoveryService,
	recipeService inbound.RecipeService,
	metrics *monitoring.MetricsCollector,
) {
	s.router.GET(s.config.Monitoring.HealthCheckPath, s.handleHealth)
	if metrics != nil && s.config.Monitoring.EnableMetrics {
		s.router.GET(s.config.Monitoring.MetricsPath, gin.WrapH(metrics.Handler()))
	}

	discoveryH := handlers.NewDiscoveryHandlers(discoveryService, metrics, s.logger)
	recipeH := handlers.NewRecipeHandlers(recipeService, metrics, s.logger)

	v1 := s.router.Group("/api/v1")
	{
		discovery := v1.Group("/discovery")
		{
			discovery.POST("/discover", discoveryH.Discover)
			discovery.POST("/search", discoveryH.Search)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.POST("", recipeH.Create)
			recipes.GET("/:id", recipeH.Get)
			recipes.PUT("/:id", recipeH.Update)
			recipes.POST("/:id/publish", recipeH.Publish)
			recipes.DELETE("/:id", recipeH.Delete)
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    s.config.App.Name,
		"version": s.config.App.Version,
	})
}

// Start blocks serving requests until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}

// Router exposes the underlying engine, used by the HTTP test suites.
func (s *Server) Router() http.Handler {
	return s.router
}
