package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "STORE_DRIVER", "LOG_LEVEL", "TOKEN_TTL", "CORS_ORIGINS", "UPLOAD_DIR",
		"UPLOAD_MAX_BYTES", "IMAGE_STORE", "S3_BUCKET", "S3_REGION", "S3_ENDPOINT",
		"S3_ACCESS_KEY", "S3_SECRET_KEY",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BACKEND_URL", "http://localhost:4000")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, time.Duration(0), cfg.TokenTTL)
	assert.Equal(t, "./upload/images", cfg.Upload.Dir)
	assert.Equal(t, ImageStoreDisk, cfg.Upload.Store)
	assert.Equal(t, int64(32<<20), cfg.Upload.MaxBytes)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("CORS_ORIGINS", "http://localhost:4000, https://shop.example.com ,")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("IMAGE_STORE", "s3")
	t.Setenv("S3_BUCKET", "images")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:4000", "https://shop.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
	assert.Equal(t, "images", cfg.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
}

func TestLoad_MemoryDriverSkipsDatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORE_DRIVER", "memory")

	_, err := Load()
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"missing database url", "DATABASE_URL", "", "DATABASE_URL must be set"},
		{"missing secret", "JWT_SECRET", "", "JWT_SECRET must be set"},
		{"missing backend url", "BACKEND_URL", "", "BACKEND_URL must be set"},
		{"bad driver", "STORE_DRIVER", "mongo", "unknown STORE_DRIVER"},
		{"bad ttl", "TOKEN_TTL", "soon", "invalid TOKEN_TTL"},
		{"bad upload size", "UPLOAD_MAX_BYTES", "-1", "invalid UPLOAD_MAX_BYTES"},
		{"bad image store", "IMAGE_STORE", "ftp", "unknown IMAGE_STORE"},
		{"s3 without bucket", "IMAGE_STORE", "s3", "S3_BUCKET must be set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
