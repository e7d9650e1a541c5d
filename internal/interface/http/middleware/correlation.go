package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationHeader 关联ID请求/响应头
const CorrelationHeader = "X-Correlation-ID"

// correlationKey 关联ID在gin.Context中的键
const correlationKey = "correlation_id"

// Correlation 关联ID中间件
//
// 教学要点：
// 1. 客户端可以自带X-Correlation-ID,跨服务排查问题时串起整条链路
// 2. 没有携带时服务端生成一个,并总是回写到响应头
// 3. 后续handler通过GetCorrelationID读取,写入日志
func Correlation() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(correlationKey, correlationID)
		c.Header(CorrelationHeader, correlationID)

		c.Next()
	}
}

// GetCorrelationID 从gin.Context读取关联ID
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(correlationKey)
}
