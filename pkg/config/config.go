package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string          `json:"port"`
	Database  DatabaseConfig  `json:"database"`
	Log       LogConfig       `json:"log"`
	Redis     RedisConfig     `json:"redis"`
	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Auth      AuthConfig      `json:"auth"`
}

type DatabaseConfig struct {
	Name            string        `mapstructure:"db_name"`
	Host            string        `mapstructure:"db_host"`
	Port            string        `mapstructure:"db_port"`
	Username        string        `mapstructure:"db_username"`
	Password        string        `mapstructure:"db_password"`
	MaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	SSLMode         string        `mapstructure:"db_ssl_mode"` // e.g., "disable", "require", "verify-ca", "verify-full"
	AutoMigrate     bool          `mapstructure:"db_auto_migrate"`
}

type LogConfig struct {
	Level string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Host     string `mapstructure:"redis_host"`
	Port     string `mapstructure:"redis_port"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	AllowedMethods []string `mapstructure:"cors_allowed_methods"`
	AllowedHeaders []string `mapstructure:"cors_allowed_headers"`
}

// RateLimitConfig configures the throttle applied to the /v1 group
type RateLimitConfig struct {
	Backend  string        `mapstructure:"rate_limit_backend"` // "redis" or "memory"
	Requests int           `mapstructure:"rate_limit_requests"`
	Window   time.Duration `mapstructure:"rate_limit_window"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// Rate limit backends
const (
	RateLimitBackendRedis  = "redis"
	RateLimitBackendMemory = "memory"
)

func init() {
	if !isGCP {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not find or load .env file.")
		}
	}
}

func NewConfig() *Config {
	return &Config{
		Port: getOptionalSecret("PORT", "8080"),
		Database: DatabaseConfig{
			Name:            getRequiredSecret("DB_NAME"),
			Host:            getRequiredSecret("DB_HOST"),
			Port:            getRequiredSecret("DB_PORT"),
			Username:        getRequiredSecret("DB_USERNAME"),
			Password:        getRequiredSecret("DB_PASSWORD"),
			MaxOpenConns:    parseOptionalInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    parseOptionalInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: parseOptionalDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			SSLMode:         getOptionalSecret("DB_SSL_MODE", "disable"),
			AutoMigrate:     parseOptionalBool("DB_AUTO_MIGRATE", true),
		},
		Log: LogConfig{
			Level: getOptionalSecret("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getOptionalSecret("REDIS_HOST", "localhost"),
			Port:     getOptionalSecret("REDIS_PORT", "6379"),
			Password: getOptionalSecret("REDIS_PASSWORD", ""),
			DB:       parseOptionalInt("REDIS_DB", 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			AllowedMethods: parseList("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS"),
			AllowedHeaders: parseList("CORS_ALLOWED_HEADERS", "Content-Type,Authorization,Accept"),
		},
		RateLimit: RateLimitConfig{
			Backend:  getOptionalSecret("RATE_LIMIT_BACKEND", RateLimitBackendRedis),
			Requests: parseOptionalInt("RATE_LIMIT_REQUESTS", 10),
			Window:   parseOptionalDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Auth: AuthConfig{
			BcryptCost: parseOptionalInt("BCRYPT_COST", 10),
		},
	}
}
