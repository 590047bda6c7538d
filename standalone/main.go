package main

import (
	"context"

	"product-api/pkg/logger"
)

func main() {
	// Create centralized configuration
	cfg := createEmbeddedConfig()

	logger.InitLogger(cfg)

	logger.Info("starting product-api standalone: PostgreSQL, Redis and the API in one process")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := startEmbeddedDB(ctx)
	if err != nil {
		logger.Fatalf("failed to start embedded PostgreSQL: %v", err)
	}
	defer db.stop()

	redisAddr := ""
	rds, err := startEmbeddedRedis()
	if err != nil {
		logger.Errorf(err, "failed to start embedded Redis, throttling in memory")
	} else {
		defer rds.Close()
		redisAddr = rds.Addr()
	}

	// Update config with actual embedded service addresses
	applyEmbeddedServices(cfg, db.port, redisAddr)

	logger.Infof("API listening on http://localhost:%s", cfg.Port)
	runAPIService(cfg)

	logger.Info("shutdown complete")
}
