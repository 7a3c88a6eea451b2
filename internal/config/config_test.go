package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8013, cfg.HTTPPort)
	assert.Equal(t, ".myshopify.com", cfg.StorefrontSuffix)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.S3Configured())
	assert.False(t, cfg.RedisConfigured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REVIEWS_HTTP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_HOST", "redis.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.RedisConfigured())
}

func TestS3Configured_RequiresAllFields(t *testing.T) {
	t.Setenv("S3_ENDPOINT", "minio.internal:9000")
	t.Setenv("S3_ACCESS_KEY", "ak")
	t.Setenv("S3_SECRET_KEY", "sk")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.S3Configured(), "missing bucket should leave storage unconfigured")

	t.Setenv("S3_BUCKET", "review-media")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.S3Configured())
}
