// file: internal/server/server.go
// version: 1.2.0
// guid: 4c5d6e7f-8a9b-0c1d-2e3f-4a5b6c7d8e9f

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	ulid "github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jdfalk/pokematch/internal/cache"
	"github.com/jdfalk/pokematch/internal/config"
	"github.com/jdfalk/pokematch/internal/dataset"
	"github.com/jdfalk/pokematch/internal/metrics"
	"github.com/jdfalk/pokematch/internal/models"
	"github.com/jdfalk/pokematch/internal/server/middleware"
	"github.com/jdfalk/pokematch/internal/watcher"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	catalog    *dataset.Catalog
	results    *cache.Cache[models.Result]
	fsw        *watcher.Watcher
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GetDefaultServerConfig returns default server configuration
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         config.AppConfig.Port,
		Host:         config.AppConfig.Host,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new server instance serving the given catalog.
func NewServer(catalog *dataset.Catalog) *Server {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(middleware.BasicAuth())
	router.Use(middleware.NewIPRateLimiter(
		config.AppConfig.RateLimitPerMinute,
		config.AppConfig.RateLimitBurst,
	).Middleware())
	router.Use(metricsMiddleware())

	// Register metrics (idempotent)
	metrics.Register()

	server := &Server{
		router:  router,
		catalog: catalog,
		results: cache.New[models.Result](config.AppConfig.CacheTTL),
	}

	server.setupRoutes()

	return server
}

// Start starts the HTTP server and blocks until SIGINT or SIGTERM.
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	// Reload datasets automatically when files under the root change.
	s.fsw = watcher.New(func(root string) {
		if err := s.reload(); err != nil {
			log.Printf("[ERROR] Reload after change in %s failed: %v", root, err)
		}
	}, config.AppConfig.Debounce)
	if err := s.fsw.Start(config.AppConfig.DatasetsRoot); err != nil {
		log.Printf("[WARN] Dataset watcher disabled: %v", err)
		s.fsw = nil
	}

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if s.fsw != nil {
		s.fsw.Stop()
	}

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

// reload replaces the catalog contents and drops every cached result.
func (s *Server) reload() error {
	if err := s.catalog.Load(); err != nil {
		return err
	}
	s.results.InvalidateAll()
	metrics.IncCatalogReloads()
	metrics.SetDatasets(s.catalog.Len())
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/healthz", s.healthCheck)

	api := s.router.Group("/api")
	{
		api.GET("/datasets", s.listDatasets)
		api.GET("/datasets/:name/matches", s.getMatches)
		api.POST("/datasets/reload", s.reloadDatasets)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware tags every request with a ULID unless the client
// already supplied one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = ulid.Make().String()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.IncHTTPRequest(route, strconv.Itoa(c.Writer.Status()))
	}
}
