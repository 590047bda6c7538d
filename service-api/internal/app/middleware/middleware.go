package middleware

import (
	"product-api/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// MiddlewareProvider exposes the cross-cutting gin middleware of the API
type MiddlewareProvider interface {
	Throttle() gin.HandlerFunc
	Recovery() gin.HandlerFunc
	AccessLog() gin.HandlerFunc
}

type middleware struct {
	limiter ratelimit.Limiter
}

// NewMiddleware creates the middleware set. A nil limiter disables throttling.
func NewMiddleware(limiter ratelimit.Limiter) MiddlewareProvider {
	return &middleware{
		limiter: limiter,
	}
}

func (m *middleware) Throttle() gin.HandlerFunc {
	return Throttle(m.limiter)
}

func (m *middleware) Recovery() gin.HandlerFunc {
	return JSONRecovery()
}

func (m *middleware) AccessLog() gin.HandlerFunc {
	return AccessLog()
}
