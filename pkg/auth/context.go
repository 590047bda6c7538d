package auth

import (
	"context"

	"product-api/pkg/model"

	"github.com/gin-gonic/gin"
)

type ctxKey struct{}

// gin context keys set by AuthMiddleware
const (
	UserContextKey   = "user"    // *model.User
	UserIDContextKey = "user_id" // string, read by the access log
)

// WithUser returns a copy of ctx carrying the authenticated user
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the authenticated user stored in ctx, if any
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*model.User)
	return user, ok && user != nil
}

// CurrentUser returns the user resolved by AuthMiddleware for this request
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return UserFromContext(c.Request.Context())
	}
	user, ok := value.(*model.User)
	return user, ok && user != nil
}
