package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/welltyped-systems/binsolver-go/internal/metrics"
)

// Prometheus returns a middleware that records request count and duration
// for the mock API. Unmatched routes share one path label.
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		metrics.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}
