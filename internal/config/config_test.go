package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"REDIS_URL":         "redis://localhost:6379/0",
		"APP_ENV":           "",
		"PORT":              "",
		"LOG_FORMAT":        "",
		"LOG_LEVEL":         "",
		"METRICS_ENABLED":   "",
		"METRICS_NAMESPACE": "",
		"TRACING_ENABLED":   "",
		"SEED_ON_START":     "",
		"CART_TTL":          "",
		"RATE_LIMIT_WINDOW": "",
		"RATE_LIMIT_MAX":    "",
	})
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.True(t, cfg.MetricsEnabled)
	require.Equal(t, "shop", cfg.MetricsNamespace)
	require.False(t, cfg.TracingEnabled)
	require.True(t, cfg.SeedOnStart)
	require.Equal(t, 168*time.Hour, cfg.CartTTL)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Equal(t, 120, cfg.RateLimitMax)
}

func TestLoadRequiresRedisURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{"REDIS_URL": ""})
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"REDIS_URL":            "redis://localhost:6379/1",
		"PORT":                 ":9090",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
		"CART_TTL":             "30m",
		"RATE_LIMIT_MAX":       "10",
		"SEED_ON_START":        "false",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 30*time.Minute, cfg.CartTTL)
	require.Equal(t, 10, cfg.RateLimitMax)
	require.False(t, cfg.SeedOnStart)
}
