package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	// Empty values fall through to the defaults
	for _, key := range []string{"PORT", "MONGODB_URI", "DB_NAME", "TOKEN_TTL",
		"REDIS_ADDR", "SMTP_PORT", "AUTH_RATE_RPS", "AUTH_RATE_BURST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "devmesh", cfg.DBName)
	assert.Equal(t, "unit-test-secret", cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, float64(5), cfg.AuthRateRPS)
	assert.Equal(t, 10, cfg.AuthRateBurst)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("PORT", "8081")
	t.Setenv("TOKEN_TTL", "12h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.Debug)
}
