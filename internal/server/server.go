// Package server assembles the HTTP stack around the API handlers.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/illineats/backend/config"
	"github.com/illineats/backend/internal/api"
	"github.com/illineats/backend/internal/database"
	"github.com/illineats/backend/internal/logging"
	"github.com/illineats/backend/internal/metrics"
	"github.com/illineats/backend/internal/middleware"
)

// Deps are the long-lived resources the server serves from
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Services api.Services
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) *Server {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSOrigins),
		metrics.Middleware(),
	)

	s := &Server{
		router: router,
		db:     deps.DB,
		redis:  deps.Redis,
	}

	router.GET("/health", s.health)
	router.GET("/metrics", metrics.Handler())
	api.RegisterRoutes(router, deps.Services, api.Options{
		AdminKeyHash: cfg.AdminKeyHash,
		Redis:        deps.Redis,
	})

	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	logging.Info().Str("addr", s.http.Addr).Msg("Starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok"}
	healthy := true
	if err := database.HealthCheck(ctx, s.db); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Database health check failed")
		checks["database"] = "unavailable"
		healthy = false
	}
	if s.redis != nil {
		checks["redis"] = "ok"
		// redis is optional; a failed ping degrades but does not fail the check
		if err := s.redis.Ping(ctx).Err(); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Redis health check failed")
			checks["redis"] = "degraded"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
