package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tend_test")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 60*time.Second, cfg.ScanInterval)
	assert.Equal(t, 2*time.Minute, cfg.ReminderGrace)
	assert.Equal(t, 50, cfg.ScanBatchSize)
	assert.Equal(t, 6, cfg.EarlyHour)
	assert.Equal(t, 9, cfg.SocialHourStart)
	assert.Equal(t, 21, cfg.SocialHourEnd)
	assert.Empty(t, cfg.JudgeURL)
	assert.Equal(t, 4*time.Second, cfg.JudgeTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tend_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SCAN_INTERVAL", "10s")
	t.Setenv("EARLY_HOUR", "7")
	t.Setenv("JUDGE_URL", "http://judge.local/v1/judge")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.ScanInterval)
	assert.Equal(t, 7, cfg.EarlyHour)
	assert.Equal(t, "http://judge.local/v1/judge", cfg.JudgeURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tend_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SCAN_INTERVAL", "often")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.ScanInterval)
}
