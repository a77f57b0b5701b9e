package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/topex")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 20, cfg.RateLimitMax)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, cfg.SessionTTL, cfg.JWT.TTL)
	assert.Equal(t, "topex-school", cfg.JWT.Issuer)
	assert.False(t, cfg.EmailEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/topex")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, 20, cfg.RateLimitMax)
	assert.True(t, cfg.EmailEnabled())
}

func TestLoadConfigRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_EMAIL", "admin@topex.uz")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoadConfigRejectsWildcardOrigin(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/topex")
	t.Setenv("JWT_SECRET", "s3cret")

	for _, origins := range []string{"*", "https://topex.uz, *"} {
		t.Setenv("CORS_ALLOW_ORIGINS", origins)
		_, err := LoadConfig()
		require.Error(t, err, origins)
		assert.Contains(t, err.Error(), "CORS_ALLOW_ORIGINS")
	}

	t.Setenv("CORS_ALLOW_ORIGINS", "https://topex.uz, http://localhost:5173")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://topex.uz, http://localhost:5173", cfg.AllowOrigins)
}
