package middleware

import (
	"time"

	"product-api/pkg/auth"
	"product-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog logs each request after it has been served, tagged with the
// authenticated user when the auth gate resolved one
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Access(logger.Request{
			Method:   c.Request.Method,
			Path:     path,
			Status:   c.Writer.Status(),
			Latency:  time.Since(start),
			ClientIP: c.ClientIP(),
			UserID:   c.GetString(auth.UserIDContextKey),
		})
	}
}
