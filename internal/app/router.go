package app

import (
	"github.com/welltyped-systems/binsolver-go/config"
	"github.com/welltyped-systems/binsolver-go/internal/mockapi"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler *mockapi.Handler
	Config  mockapi.RouterConfig
}

// InitializeRouter builds the mock handler and router configuration.
func InitializeRouter(cfg config.ServerConfig, opts ...mockapi.HandlerOption) *RouterComponents {
	return &RouterComponents{
		Handler: mockapi.NewHandler(opts...),
		Config: mockapi.RouterConfig{
			APIKeys:     cfg.APIKeys,
			CORSOrigins: cfg.CORSOrigins,
		},
	}
}
