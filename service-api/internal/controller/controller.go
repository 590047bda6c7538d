package controller

import (
	authService "product-api/service-api/internal/service/auth"
	userService "product-api/service-api/internal/service/user"

	"github.com/gin-gonic/gin"
)

// ControllerProvider defines the controller interface
type ControllerProvider interface {
	RegisterUser(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	GetProfile(c *gin.Context)
}

// controller implements the controller interface
type controller struct {
	authService authService.Service
	userService userService.Service
}

// NewController creates a new controller instance
func NewController(authService authService.Service, userService userService.Service) ControllerProvider {
	return &controller{
		authService: authService,
		userService: userService,
	}
}
