package middleware

import (
	"fmt"
	"net/http"
	"product-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// JSONRecovery turns panics into a bare 500 JSON response
func JSONRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf(fmt.Errorf("%v", recovered), "panic while handling %s %s", c.Request.Method, c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
	})
}
