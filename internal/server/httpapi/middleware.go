package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger replaces gin's default logger: one structured record and
// one metrics observation per request.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		h.metrics.ObserveRequest(route, c.Request.Method, status, elapsed)
		h.logger.Debug(c.Request.Context(), "request served",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", elapsed,
		)
	}
}
