package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"product-api/pkg/logger"
	"product-api/pkg/model"

	"github.com/gin-gonic/gin"
)

// ErrUnauthenticated is returned when a bearer token does not resolve to a user
var ErrUnauthenticated = errors.New("unauthenticated")

// Authenticator resolves a plaintext bearer token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, plainTextToken string) (*model.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the resolved user in both the gin and the request context.
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthenticated(c)
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				abortUnauthenticated(c)
				return
			}
			logger.Error(err, "failed to authenticate bearer token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}

		c.Set(UserContextKey, user)
		c.Set(UserIDContextKey, user.ID.String())
		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))

		c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
}
