package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"product-api/pkg/config"
	"product-api/pkg/database"
	"product-api/pkg/logger"
	"product-api/pkg/policy"
	"product-api/pkg/ratelimit"
	"product-api/pkg/redis"
	mdw "product-api/service-api/internal/app/middleware"
	ctl "product-api/service-api/internal/controller"
	authRepo "product-api/service-api/internal/repository/auth"
	productRepo "product-api/service-api/internal/repository/product"
	userRepo "product-api/service-api/internal/repository/user"
	authService "product-api/service-api/internal/service/auth"
	productService "product-api/service-api/internal/service/product"
	userService "product-api/service-api/internal/service/user"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

type AppServer struct {
	config            *config.Config
	middleware        mdw.MiddlewareProvider
	controller        ctl.ControllerProvider
	productController *ctl.ProductController
	authService       authService.Service
	closers           []func() error
}

// NewAppServer connects to Postgres and the throttle store and wires every layer of the API.
func NewAppServer(cfg *config.Config) *AppServer {
	// initialize database
	db, err := database.NewPgDB(cfg)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = database.Migrate(ctx, db)
		cancel()
		if err != nil {
			logger.Fatalf("failed to migrate database: %v", err)
		}
		logger.Info("database schema is up to date")
	}

	limiter, closeLimiter := newLimiter(cfg)

	server := newAppServer(cfg, db, limiter)
	server.closers = append(server.closers, db.Close)
	if closeLimiter != nil {
		server.closers = append(server.closers, closeLimiter)
	}
	return server
}

// newAppServer wires repositories, services and controllers on top of db
func newAppServer(cfg *config.Config, db *sql.DB, limiter ratelimit.Limiter) *AppServer {
	// initialize repositories
	userRepository := userRepo.NewRepository(db)
	authRepository := authRepo.NewRepository(db)
	productRepository := productRepo.NewRepository(db)

	// initialize services
	userSvc := userService.NewUserService(userRepository, cfg.Auth.BcryptCost)
	authSvc := authService.NewAuthService(database.NewTxRunner(db), userSvc, userRepository, authRepository)
	productSvc := productService.NewProductService(productRepository, policy.NewDefaultRegistry())

	// initialize controllers
	controller := ctl.NewController(authSvc, userSvc)
	productController := ctl.NewProductController(productSvc)

	// initialize middleware
	middleware := mdw.NewMiddleware(limiter)

	return &AppServer{
		config:            cfg,
		middleware:        middleware,
		controller:        controller,
		productController: productController,
		authService:       authSvc,
	}
}

// newLimiter picks the throttle store. An unreachable Redis falls back to the in-process limiter.
func newLimiter(cfg *config.Config) (ratelimit.Limiter, func() error) {
	requests, window := cfg.RateLimit.Requests, cfg.RateLimit.Window
	if requests <= 0 || window <= 0 {
		logger.Warn("rate limiting disabled")
		return nil, nil
	}

	if cfg.RateLimit.Backend == config.RateLimitBackendRedis {
		client, err := redis.NewClient(cfg)
		if err == nil {
			logger.Infof("throttling %d requests per %s using redis", requests, window)
			return ratelimit.NewRedisLimiter(client, requests, window), client.Close
		}
		logger.Errorf(err, "failed to connect to redis, using in-memory rate limiter")
	}

	logger.Infof("throttling %d requests per %s in memory", requests, window)
	return ratelimit.NewMemoryLimiter(requests, window), nil
}

func (a *AppServer) Serve() {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.config.Port),
		Handler:           a.RegisterHandlers(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// serve the server
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	logger.Infof("server started on port %s", a.config.Port)

	a.gracefulShutdown(server)
	a.close()

	logger.Info("server shutdown complete")
}

func (a *AppServer) gracefulShutdown(server *http.Server) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP) // wait for the sigterm
	<-signals

	// we received an os signal, shut down.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		logger.Error(err, "server shutdown error")
	} else {
		logger.Info("server graceful shutdown")
	}
}

func (a *AppServer) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Error(err, "failed to release resource")
		}
	}
}
