package middleware

import (
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/response"
	"Pulse/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将调用方身份注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(logger.SubjectKey, claims.Subject)
		newCtx := context.WithValue(c.Request.Context(), logger.SubjectKey, claims.Subject)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
