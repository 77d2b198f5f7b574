package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/loan_application_app/internal/metrics"
	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware records request counts and latencies. The route
// template is used as the path label so ids in URLs do not explode cardinality.
// A nil m yields a pass-through handler.
func PrometheusMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
