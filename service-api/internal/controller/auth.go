package controller

import (
	"errors"
	"net/http"
	"product-api/pkg/auth"
	"product-api/pkg/logger"
	"product-api/pkg/model"
	authService "product-api/service-api/internal/service/auth"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
)

// Login handles user authentication
func (ctrl *controller) Login(c *gin.Context) {
	var req model.LoginRequest
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
		respondError(c, err, "validate login request")
		return
	}

	email, password := req.Credentials()
	user, token, err := ctrl.authService.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, model.AuthResponse{Message: msgWrongCreds})
			return
		}
		logger.Error(err, "failed to login user")
		c.JSON(http.StatusInternalServerError, model.AuthResponse{Message: msgServerError})
		return
	}

	logger.Infof("user logged in successfully: %s", user.ID)
	c.JSON(http.StatusOK, model.NewAuthResponse(msgUserLoggedIn, user, token))
}

// Logout revokes every token of the authenticated user
func (ctrl *controller) Logout(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	err := ctrl.authService.Logout(c.Request.Context(), user)
	if err != nil {
		logger.Error(err, "failed to logout user")
		c.JSON(http.StatusInternalServerError, model.AuthResponse{Message: msgServerError})
		return
	}

	logger.Infof("user logged out successfully: %s", user.ID)
	c.JSON(http.StatusOK, model.AuthResponse{Message: msgUserLoggedOut})
}
