package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CtxTraceID    = "trace_id"
	TraceIDHeader = "X-Trace-ID"
)

// TraceIDMiddleware keeps a well-formed incoming X-Trace-ID and mints one
// otherwise.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set(CtxTraceID, traceID)
		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Next()
	}
}
