package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("api")
	require.NoError(t, err)

	assert.Equal(t, "api", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, 3*time.Second, cfg.Database.HealthTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Uploads.URLExpiry)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DB", "directory_test")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("api")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, "directory_test", cfg.Database.Database)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestValidateRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load("api")
	assert.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "directory")

	cfg, err := Load("api")
	require.NoError(t, err)

	assert.Equal(t, "postgres://app:pw@db:5433/directory?sslmode=disable", cfg.DatabaseURL())
}

func TestRedisAddr(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load("api")
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
