package main

import (
	"net"
	"strconv"
	"time"

	"product-api/pkg/config"
)

// createEmbeddedConfig creates a hardcoded configuration for the standalone application
func createEmbeddedConfig() *config.Config {
	return &config.Config{
		Port:     "8080",
		Database: embeddedDatabaseConfig(15432),
		Log: config.LogConfig{
			Level: "info",
		},
		Redis: config.RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization", "Accept"},
		},
		RateLimit: config.RateLimitConfig{
			Backend:  config.RateLimitBackendRedis,
			Requests: 10,
			Window:   time.Minute,
		},
		Auth: config.AuthConfig{
			BcryptCost: 10,
		},
	}
}

func embeddedDatabaseConfig(port uint32) config.DatabaseConfig {
	return config.DatabaseConfig{
		Name:            embeddedDBName,
		Host:            "localhost",
		Port:            strconv.FormatUint(uint64(port), 10),
		Username:        embeddedDBUser,
		Password:        embeddedDBPassword,
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
		SSLMode:         "disable",
		// schema is applied once the embedded server is up
		AutoMigrate: false,
	}
}

// applyEmbeddedServices points the config at the running embedded services
func applyEmbeddedServices(cfg *config.Config, dbPort uint32, redisAddr string) {
	cfg.Database = embeddedDatabaseConfig(dbPort)

	if redisAddr == "" {
		cfg.RateLimit.Backend = config.RateLimitBackendMemory
		return
	}
	host, port, err := net.SplitHostPort(redisAddr)
	if err != nil {
		cfg.RateLimit.Backend = config.RateLimitBackendMemory
		return
	}
	cfg.Redis.Host = host
	cfg.Redis.Port = port
}
