package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	envVars := []string{
		"SERVER_PORT", "CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
		"CLOUDINARY_SECURE", "CLOUDINARY_SIGN_URLS", "METADATA_SOURCE", "METADATA_URL",
		"METADATA_FETCH_TIMEOUT", "REDIS_HOST", "REDIS_PORT", "REDIS_DB", "CATALOG_CACHE_TTL",
		"MINIO_BUCKET", "MINIO_OBJECT", "LOG_LEVEL", "LOG_FILE",
	}
	for _, k := range envVars {
		os.Unsetenv(k)
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, SourceHTTP, cfg.MetadataSource)
	assert.Equal(t, DefaultMetadataURL, cfg.MetadataURL)
	assert.Equal(t, 30*time.Second, cfg.MetadataFetchTimeout)
	assert.True(t, cfg.Cloudinary.Secure)
	assert.False(t, cfg.Cloudinary.SignURLs)
	assert.Empty(t, cfg.Cloudinary.CloudName)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, time.Hour, cfg.CatalogTTL)
	assert.Equal(t, "hzfm", cfg.MinioBucket)
	assert.Equal(t, "meta/tracks.csv", cfg.MinioObject)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
	t.Setenv("CLOUDINARY_SIGN_URLS", "true")
	t.Setenv("METADATA_SOURCE", "MINIO")
	t.Setenv("METADATA_FETCH_TIMEOUT", "5")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CATALOG_CACHE_TTL", "60")

	cfg := FromEnv()

	assert.Equal(t, CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Secure:    true,
		SignURLs:  true,
	}, cfg.Cloudinary)
	assert.Equal(t, SourceMinio, cfg.MetadataSource)
	assert.Equal(t, 5*time.Second, cfg.MetadataFetchTimeout)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, time.Minute, cfg.CatalogTTL)
}

func TestFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("METADATA_SOURCE", "ftp")
	t.Setenv("METADATA_FETCH_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("CLOUDINARY_SECURE", "maybe")

	cfg := FromEnv()

	assert.Equal(t, SourceHTTP, cfg.MetadataSource)
	assert.Equal(t, 30*time.Second, cfg.MetadataFetchTimeout)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.Cloudinary.Secure)
}
