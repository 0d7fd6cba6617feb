package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	ImageStoreDisk = "disk"
	ImageStoreS3   = "s3"
)

type Config struct {
	ServerPort  string
	DatabaseURL string
	StoreDriver string
	LogLevel    string

	JWTSecret string
	TokenTTL  time.Duration

	// BackendURL prefixes every image link handed to clients.
	BackendURL     string
	AllowedOrigins []string

	Upload struct {
		Dir      string
		MaxBytes int64
		Store    string
	}

	S3 struct {
		Bucket    string
		Region    string
		Endpoint  string
		AccessKey string
		SecretKey string
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:  getEnv("PORT", "4000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StoreDriver: getEnv("STORE_DRIVER", StoreDriverPostgres),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		BackendURL:  os.Getenv("BACKEND_URL"),
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set")
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL must be set")
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}

	cfg.AllowedOrigins = splitList(os.Getenv("CORS_ORIGINS"))

	cfg.Upload.Dir = getEnv("UPLOAD_DIR", "./upload/images")
	cfg.Upload.Store = getEnv("IMAGE_STORE", ImageStoreDisk)
	cfg.Upload.MaxBytes = 32 << 20
	if raw := os.Getenv("UPLOAD_MAX_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid UPLOAD_MAX_BYTES %q", raw)
		}
		cfg.Upload.MaxBytes = n
	}

	switch cfg.Upload.Store {
	case ImageStoreDisk:
	case ImageStoreS3:
		cfg.S3.Bucket = os.Getenv("S3_BUCKET")
		cfg.S3.Region = getEnv("S3_REGION", "us-east-1")
		cfg.S3.Endpoint = os.Getenv("S3_ENDPOINT")
		cfg.S3.AccessKey = os.Getenv("S3_ACCESS_KEY")
		cfg.S3.SecretKey = os.Getenv("S3_SECRET_KEY")
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET must be set")
		}
	default:
		return nil, fmt.Errorf("unknown IMAGE_STORE %q", cfg.Upload.Store)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
