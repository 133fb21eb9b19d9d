// Package http assembles the REST surface of the API server.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AtomSense/internal/interfaces/http/handlers"
	"github.com/turtacn/AtomSense/internal/interfaces/http/middleware"
)

// RouterConfig aggregates everything the route tree needs.
type RouterConfig struct {
	PerceptionHandler *handlers.PerceptionHandler
	TypesHandler      *handlers.TypesHandler
	SearchHandler     *handlers.SearchHandler
	HealthHandler     *handlers.HealthHandler

	Logger  logging.Logger
	Metrics *prometheus.Metrics

	// MetricsHandler serves GET /metrics; nil disables the endpoint.
	MetricsHandler http.Handler

	// AllowedOrigins feeds the CORS middleware; empty allows all.
	AllowedOrigins []string

	// Mode is gin's run mode; empty means release.
	Mode string
}

// NewRouter builds the route tree: probes and metrics at the root, the API
// under /api/v1, logging and recovery around everything.
func NewRouter(cfg RouterConfig) *gin.Engine {
	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	r := gin.New()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api/v1")
	if cfg.PerceptionHandler != nil {
		api.POST("/perceptions", cfg.PerceptionHandler.Perceive)
		api.GET("/perceptions", cfg.PerceptionHandler.List)
		api.GET("/perceptions/:id", cfg.PerceptionHandler.Get)
	}
	if cfg.TypesHandler != nil {
		api.GET("/types", cfg.TypesHandler.List)
		api.GET("/types/:name", cfg.TypesHandler.Get)
	}
	if cfg.SearchHandler != nil {
		api.POST("/perceptions/similar", cfg.SearchHandler.Similar)
		api.GET("/types/:name/occurrences", cfg.SearchHandler.Occurrences)
	}

	return r
}
