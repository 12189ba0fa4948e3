package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/welltyped-systems/binsolver-go/internal/domain/dto"
	"github.com/welltyped-systems/binsolver-go/internal/logger"
)

// Recovery returns a middleware that turns a handler panic into a 500 error envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log := logger.Logger()
				log.Error().
					Str("request_id", GetRequestID(c)).
					Str("path", c.Request.URL.Path).
					Interface("panic", err).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewError(dto.ErrCodeFromStatus(http.StatusInternalServerError), "An unexpected error occurred"))
			}
		}()
		c.Next()
	}
}
