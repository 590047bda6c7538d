package controller

import (
	"errors"
	"net/http"
	"product-api/pkg/auth"
	"product-api/pkg/logger"
	"product-api/pkg/model"
	authService "product-api/service-api/internal/service/auth"
	userService "product-api/service-api/internal/service/user"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
)

// RegisterUser handles user registration
func (ctrl *controller) RegisterUser(c *gin.Context) {
	var req model.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondInvalidJSON(c, err)
		return
	}

	if err := req.Validate(); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			respondValidation(c, toFieldErrors(verrs))
			return
		}
		respondError(c, err, "validate register request")
		return
	}

	name, email, password := req.Credentials()
	user, token, err := ctrl.authService.Register(c.Request.Context(), name, email, password)
	if err != nil {
		if errors.Is(err, authService.ErrEmailTaken) {
			respondValidation(c, map[string][]string{"email": {msgEmailTaken}})
			return
		}
		logger.Error(err, "failed to register user")
		c.JSON(http.StatusInternalServerError, model.AuthResponse{Message: msgServerError})
		return
	}

	logger.Infof("user registered successfully: %s", user.ID)
	c.JSON(http.StatusOK, model.NewAuthResponse(msgUserCreated, user, token))
}

// GetProfile returns the authenticated user as currently stored
func (ctrl *controller) GetProfile(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	user, err := ctrl.userService.GetUserByID(c.Request.Context(), current.ID)
	if err != nil {
		if errors.Is(err, userService.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}
		respondError(c, err, "load user profile")
		return
	}

	c.JSON(http.StatusOK, user.ToProfile())
}
