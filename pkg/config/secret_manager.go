package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SecretManagerConfig represents the JSON structure stored in Secret Manager
type SecretManagerConfig struct {
	Application SecretApplicationConfig `json:"application"`
	Database    SecretDatabaseConfig    `json:"database"`
	Redis       SecretRedisConfig       `json:"redis"`
	RateLimit   SecretRateLimitConfig   `json:"rate_limit"`
}

// SecretApplicationConfig holds application-specific settings from Secret Manager
type SecretApplicationConfig struct {
	Port               string `json:"port"`
	LogLevel           string `json:"log_level"`
	CORSAllowedOrigins string `json:"cors_allowed_origins"`
	BcryptCost         string `json:"bcrypt_cost"`
}

// SecretDatabaseConfig holds database connection settings from Secret Manager
type SecretDatabaseConfig struct {
	Name            string `json:"name"`
	Host            string `json:"host"`
	Port            string `json:"port"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	MaxOpenConns    string `json:"max_open_conns"`
	MaxIdleConns    string `json:"max_idle_conns"`
	ConnMaxLifetime string `json:"conn_max_lifetime"`
	SSLMode         string `json:"ssl_mode"`
}

// SecretRedisConfig holds Redis connection settings from Secret Manager
type SecretRedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	DB       string `json:"db"`
}

// SecretRateLimitConfig holds throttle settings from Secret Manager
type SecretRateLimitConfig struct {
	Backend  string `json:"backend"`
	Requests string `json:"requests"`
	Window   string `json:"window"`
}

// LoadFromSecretManager loads configuration from a single JSON secret in Google Secret Manager
func LoadFromSecretManager(ctx context.Context, projectID, secretName string) (*Config, error) {
	payload, err := accessSecretVersionCtx(ctx, fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretName))
	if err != nil {
		return nil, err
	}

	return ParseSecretConfig([]byte(payload))
}

// ParseSecretConfig decodes a Secret Manager JSON bundle into a Config
func ParseSecretConfig(data []byte) (*Config, error) {
	var secretConfig SecretManagerConfig
	if err := json.Unmarshal(data, &secretConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config JSON: %w", err)
	}

	return convertSecretToConfig(&secretConfig)
}

// convertSecretToConfig converts SecretManagerConfig to the existing Config structure
func convertSecretToConfig(secret *SecretManagerConfig) (*Config, error) {
	maxOpenConns, err := atoiOrDefault(secret.Database.MaxOpenConns, 25)
	if err != nil {
		return nil, fmt.Errorf("invalid max_open_conns: %w", err)
	}

	maxIdleConns, err := atoiOrDefault(secret.Database.MaxIdleConns, 25)
	if err != nil {
		return nil, fmt.Errorf("invalid max_idle_conns: %w", err)
	}

	connMaxLifetime, err := durationOrDefault(secret.Database.ConnMaxLifetime, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid conn_max_lifetime: %w", err)
	}

	redisDB, err := atoiOrDefault(secret.Redis.DB, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid redis db: %w", err)
	}

	requests, err := atoiOrDefault(secret.RateLimit.Requests, 10)
	if err != nil {
		return nil, fmt.Errorf("invalid rate_limit requests: %w", err)
	}

	window, err := durationOrDefault(secret.RateLimit.Window, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid rate_limit window: %w", err)
	}

	bcryptCost, err := atoiOrDefault(secret.Application.BcryptCost, 10)
	if err != nil {
		return nil, fmt.Errorf("invalid bcrypt_cost: %w", err)
	}

	backend := secret.RateLimit.Backend
	if backend == "" {
		backend = RateLimitBackendRedis
	}

	port := secret.Application.Port
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port: port,
		Database: DatabaseConfig{
			Name:            secret.Database.Name,
			Host:            secret.Database.Host,
			Port:            secret.Database.Port,
			Username:        secret.Database.Username,
			Password:        secret.Database.Password,
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
			SSLMode:         secret.Database.SSLMode,
			AutoMigrate:     true,
		},
		Log: LogConfig{
			Level: secret.Application.LogLevel,
		},
		Redis: RedisConfig{
			Host:     secret.Redis.Host,
			Port:     secret.Redis.Port,
			Password: secret.Redis.Password,
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(secret.Application.CORSAllowedOrigins),
			AllowedMethods: splitList("GET,POST,PUT,PATCH,DELETE,OPTIONS"),
			AllowedHeaders: splitList("Content-Type,Authorization,Accept"),
		},
		RateLimit: RateLimitConfig{
			Backend:  backend,
			Requests: requests,
			Window:   window,
		},
		Auth: AuthConfig{
			BcryptCost: bcryptCost,
		},
	}, nil
}

func atoiOrDefault(raw string, defaultValue int) (int, error) {
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

func durationOrDefault(raw string, defaultValue time.Duration) (time.Duration, error) {
	if raw == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(raw)
}
