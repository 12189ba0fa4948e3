package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/welltyped-systems/binsolver-go/internal/domain/dto"
)

// APIKeyHeader is the HTTP header carrying the API key.
const APIKeyHeader = "x-api-key"

// APIKeyAuth returns a middleware that validates the x-api-key header.
// If validKeys is nil or empty, authentication is disabled.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewError(dto.ErrCodeFromStatus(http.StatusUnauthorized), "API key is required"))
			return
		}
		if !knownKey(validKeys, key) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewError(dto.ErrCodeFromStatus(http.StatusUnauthorized), "Invalid API key"))
			return
		}

		c.Next()
	}
}

func knownKey(validKeys map[string]bool, key string) bool {
	found := 0
	for valid, enabled := range validKeys {
		if enabled {
			found |= subtle.ConstantTimeCompare([]byte(valid), []byte(key))
		}
	}
	return found == 1
}
