//go:build !integration

package app

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/welltyped-systems/binsolver-go/config"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.LogConfig
		expectedLevel zerolog.Level
		expectedMode  string
	}{
		{name: "empty level defaults to info", cfg: config.LogConfig{}, expectedLevel: zerolog.InfoLevel, expectedMode: gin.ReleaseMode},
		{name: "debug enables gin debug mode", cfg: config.LogConfig{Level: "debug"}, expectedLevel: zerolog.DebugLevel, expectedMode: gin.DebugMode},
		{name: "pretty warn", cfg: config.LogConfig{Level: "warn", Pretty: true}, expectedLevel: zerolog.WarnLevel, expectedMode: gin.ReleaseMode},
		{name: "error level", cfg: config.LogConfig{Level: "error"}, expectedLevel: zerolog.ErrorLevel, expectedMode: gin.ReleaseMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitializeLogger(tt.cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
			assert.Equal(t, tt.expectedMode, gin.Mode())
		})
	}
	gin.SetMode(gin.TestMode)
}
