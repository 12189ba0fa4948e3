package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/welltyped-systems/binsolver-go/internal/domain/dto"
	"github.com/welltyped-systems/binsolver-go/internal/logger"
	"github.com/welltyped-systems/binsolver-go/sdkerrors"
)

// ErrorHandler returns a middleware that renders the last error attached
// with c.Error as an error envelope. Validation errors become 422; anything
// else is logged and becomes 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var verr *sdkerrors.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, dto.NewError(dto.ErrCodeFromStatus(http.StatusUnprocessableEntity), verr.Error()))
			return
		}

		log := logger.Logger()
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Err(err).
			Msg("request error")
		c.JSON(http.StatusInternalServerError, dto.NewError(dto.ErrCodeFromStatus(http.StatusInternalServerError), "An unexpected error occurred"))
	}
}
