package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 200, cfg.ArcThreshold)
	assert.Equal(t, 100, cfg.ChunkSize)
	assert.Equal(t, "weighted", cfg.Aggregation)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, "1M", cfg.MaxBodySize)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("DATABASE_URL", "postgres://localhost/litsense")
	t.Setenv("ARC_THRESHOLD", "50")
	t.Setenv("AGGREGATION", "majority")
	t.Setenv("CLEAN_TEXT", "true")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("ANALYSIS_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "postgres://localhost/litsense", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.CacheTTL)

	analyzer := cfg.Analyzer()
	assert.Equal(t, 50, analyzer.ArcThreshold)
	assert.Equal(t, "majority", analyzer.Aggregation)
	assert.True(t, analyzer.Clean)
	assert.Equal(t, 5*time.Second, analyzer.Timeout())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"zero chunk size", "CHUNK_SIZE", "0", "CHUNK_SIZE must be at least 1, got 0"},
		{"negative arc threshold", "ARC_THRESHOLD", "-1", "ARC_THRESHOLD must not be negative, got -1"},
		{"negative top n", "TOP_N", "-2", "TOP_N must not be negative, got -2"},
		{"unknown aggregation", "AGGREGATION", "median", "AGGREGATION"},
		{"zero rate", "RATE_LIMIT_RPS", "0", "RATE_LIMIT_RPS"},
		{"bad redis scheme", "REDIS_URL", "localhost:6379", "REDIS_URL must start with"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MalformedValue(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load environment variables")
}
