package app

import (
	"net/http"
	"product-api/pkg/auth"
	"product-api/pkg/logger"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (a *AppServer) RegisterHandlers() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handler := gin.New()

	// middlewares
	logger.Debugf("allowing CORS origins: %v", a.config.CORS.AllowedOrigins)
	logger.Debugf("allowing CORS methods: %v", a.config.CORS.AllowedMethods)
	logger.Debugf("allowing CORS headers: %v", a.config.CORS.AllowedHeaders)

	// cors middleware
	corsConfig := cors.Config{
		AllowOrigins: a.config.CORS.AllowedOrigins,
		AllowMethods: a.config.CORS.AllowedMethods,
		AllowHeaders: a.config.CORS.AllowedHeaders,
		AllowOriginFunc: func(origin string) bool {
			for _, allowedOrigin := range a.config.CORS.AllowedOrigins {
				if allowedOrigin == "*" || origin == allowedOrigin {
					return true
				}
			}
			return false
		},
		MaxAge: 12 * time.Hour,
	}
	handler.Use(cors.New(corsConfig))
	handler.Use(a.middleware.AccessLog())
	handler.Use(a.middleware.Recovery())

	handler.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	})

	// health check
	handler.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authMiddleware := auth.AuthMiddleware(a.authService)

	// api routes
	api := handler.Group("/v1")
	api.Use(a.middleware.Throttle())

	// public routes (no authentication required)
	{
		api.POST("/register", a.controller.RegisterUser)
		api.POST("/login", a.controller.Login)
	}

	// authenticated user routes
	userRoutes := api.Group("")
	userRoutes.Use(authMiddleware)
	{
		userRoutes.POST("/logout", a.controller.Logout)
		userRoutes.GET("/user", a.controller.GetProfile)

		// products - reads for any user, writes restricted to the owner by policy
		userRoutes.GET("/products", a.productController.GetProducts)
		userRoutes.POST("/products", a.productController.CreateProduct)
		userRoutes.GET("/products/:id", a.productController.GetProduct)
		userRoutes.PUT("/products/:id", a.productController.UpdateProduct)
		userRoutes.PATCH("/products/:id", a.productController.UpdateProduct)
		userRoutes.DELETE("/products/:id", a.productController.DeleteProduct)
	}

	return handler
}
