package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSecretConfig(t *testing.T) {
	payload := []byte(`{
		"application": {"port": "9090", "log_level": "debug", "cors_allowed_origins": "https://a.test, https://b.test"},
		"database": {"name": "products", "host": "db", "port": "5432", "username": "app", "password": "secret", "ssl_mode": "require"},
		"redis": {"host": "cache", "port": "6379", "db": "2"},
		"rate_limit": {"backend": "memory", "requests": "30", "window": "30s"}
	}`)

	cfg, err := ParseSecretConfig(payload)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "products", cfg.Database.Name)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, RateLimitBackendMemory, cfg.RateLimit.Backend)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestParseSecretConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "malformed json", payload: `{`},
		{name: "bad redis db", payload: `{"redis": {"db": "two"}}`},
		{name: "bad window", payload: `{"rate_limit": {"window": "soon"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSecretConfig([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
