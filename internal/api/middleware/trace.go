package middleware

import (
	"Pulse/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// TraceMiddleware 透传或生成链路 ID
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if traceID == "" || len(traceID) > 64 {
			traceID = uuid.New().String()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(logger.WithTrace(c.Request.Context(), traceID))

		c.Header(traceHeader, traceID)
		c.Next()
	}
}
