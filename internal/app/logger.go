package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/welltyped-systems/binsolver-go/config"
	"github.com/welltyped-systems/binsolver-go/internal/logger"
)

// InitializeLogger initializes the global logger and puts gin in release
// mode unless debug logging was requested.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)

	if logger.ParseLevel(level) <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}
