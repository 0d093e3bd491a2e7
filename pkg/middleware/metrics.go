package middleware

import (
	"github.com/gin-gonic/gin"

	"facturo/internal/metrics"
)

// Metrics records every request under its route template so ids do not
// explode label cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		done := m.TrackRequest(c.Request.Method, route)
		c.Next()
		done(c.Writer.Status())
	}
}
