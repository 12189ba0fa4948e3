// Package mockapi implements a local stand-in for the BinSolver service: the
// same routes, authentication and error envelopes, backed by a stub packer.
package mockapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/welltyped-systems/binsolver-go/internal/middleware"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	// APIKeys are the accepted x-api-key values; empty disables authentication.
	APIKeys     map[string]bool
	CORSOrigins []string
}

// NewRouter creates the gin engine serving GET /health, GET /metrics and
// POST /v1/pack.
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Accept-Encoding", middleware.APIKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        86400,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Prometheus(),
		middleware.Compression(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1", middleware.APIKeyAuth(cfg.APIKeys))
	v1.POST("/pack", handler.Pack)

	router.NoRoute(handler.NotFound)
	return router
}
