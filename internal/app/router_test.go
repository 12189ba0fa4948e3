//go:build !integration

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/welltyped-systems/binsolver-go/config"
)

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.ServerConfig
		validate func(*testing.T, *RouterComponents)
	}{
		{
			name: "open server without keys",
			cfg:  config.ServerConfig{Port: "8080"},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.Handler)
				assert.Empty(t, components.Config.APIKeys)
			},
		},
		{
			name: "api keys and cors origins are passed through",
			cfg: config.ServerConfig{
				APIKeys:     map[string]bool{"test-key": true},
				CORSOrigins: []string{"https://app.example.com"},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.Equal(t, map[string]bool{"test-key": true}, components.Config.APIKeys)
				assert.Equal(t, []string{"https://app.example.com"}, components.Config.CORSOrigins)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, InitializeRouter(tt.cfg))
		})
	}
}
