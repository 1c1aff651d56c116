package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "crime_management_db", cfg.MongoDB)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "report_limit", cfg.ReportLimitQueue)
	assert.Equal(t, 168*time.Hour, cfg.TokenLifetime)
	assert.Equal(t, 10, cfg.ReportDailyLimit)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGODB_DB", "crimewatch_test")
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_LIFETIME", "24h")
	t.Setenv("REPORT_DAILY_LIMIT", "3")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "crimewatch_test", cfg.MongoDB)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenLifetime)
	assert.Equal(t, 3, cfg.ReportDailyLimit)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadMissingMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestLoadMissingJWTSecret(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadInvalidTokenLifetime(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_LIFETIME", "one week")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidReportLimit(t *testing.T) {
	setRequired(t)
	t.Setenv("REPORT_DAILY_LIMIT", "0")

	_, err := Load()
	assert.Error(t, err)
}
