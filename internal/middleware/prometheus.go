package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/routeviz/routeviz/internal/metrics"
)

// PrometheusMiddleware records HTTP request duration and count, labeled by
// route pattern. The WebSocket upgrade is counted but not timed since its
// duration is the lifetime of the connection.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.IsWebsocket() {
			return
		}

		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
