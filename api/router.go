package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecostack/footprint/api/handler"
	"github.com/ecostack/footprint/api/middleware"
	"github.com/ecostack/footprint/cache"
	"github.com/ecostack/footprint/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:   Recovery → Logger
//	Analyze:  Auth (if enabled) → RateLimit
//
// Health and metrics are intentionally outside auth so monitoring probes
// always work.
func NewRouter(svc handler.Service, pr handler.PoolReporter, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	// Health + metrics — no auth required.
	r.GET("/api/v1/health", handler.Health(pr, startTime))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Analysis entry point — auth + rate limit.
	analyze := r.Group("/")
	if cfg.Auth.Enabled {
		analyze.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	analyze.Use(middleware.RateLimit(cfg.RateLimit))

	analyze.GET("", handler.Analyze(svc, cc, cfg.Webhook))

	return r
}
