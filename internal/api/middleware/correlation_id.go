package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const correlationIDKey = "correlationID"

const (
	correlationHeader = "X-Correlation-ID"
	requestIDHeader   = "X-Request-ID"
)

// CorrelationIDMiddleware 确保每个请求都带有 Correlation ID。
// 编辑器前端在一次工具调用的多个请求间复用同一个 ID，缺省时回落到 X-Request-ID。
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlationHeader)
		if id == "" {
			id = c.GetHeader(requestIDHeader)
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header(correlationHeader, id)

		c.Next()
	}
}

// GetCorrelationID 从上下文中取出 Correlation ID。
func GetCorrelationID(c *gin.Context) string {
	if value, ok := c.Get(correlationIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
