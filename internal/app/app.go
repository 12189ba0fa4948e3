// Package app wires the mock BinSolver server: logger, handler, router and
// the HTTP server lifecycle.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/welltyped-systems/binsolver-go/config"
	"github.com/welltyped-systems/binsolver-go/internal/mockapi"
)

// InitializeApp creates and wires all mock server dependencies.
func InitializeApp(cfg config.Config, opts ...mockapi.HandlerOption) *gin.Engine {
	// Initialize logger first (needed by the middleware)
	InitializeLogger(cfg.Log)

	components := InitializeRouter(cfg.Server, opts...)
	return mockapi.NewRouter(components.Handler, components.Config)
}
