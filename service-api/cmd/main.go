package main

import (
	"context"
	"os"
	"product-api/pkg/config"
	"product-api/pkg/logger"
	"product-api/service-api/internal/app"
	"time"
)

func main() {
	// Initialize configuration
	cfg := loadConfig()

	// Initialize logger
	logger.InitLogger(cfg)

	// Create and start the application server
	server := app.NewAppServer(cfg)
	server.Serve()
}

// loadConfig reads a JSON config bundle from Secret Manager when CONFIG_SECRET_NAME
// is set, otherwise individual environment variables.
func loadConfig() *config.Config {
	secretName := os.Getenv("CONFIG_SECRET_NAME")
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if secretName == "" || projectID == "" {
		return config.NewConfig()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadFromSecretManager(ctx, projectID, secretName)
	if err != nil {
		logger.Fatalf("failed to load config from secret manager: %v", err)
	}
	return cfg
}
