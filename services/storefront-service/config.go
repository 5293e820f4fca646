package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	awspkg "github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/aws"
	"go.uber.org/zap"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Port string
	Env  string

	StorageBackend string
	StorageDir     string
	RedisURL       string
	RedisTTL       time.Duration
	DynamoTable    string
	S3Bucket       string
	S3Prefix       string

	StrapiURL     string
	StrapiToken   string
	StrapiTimeout time.Duration

	MedusaURL            string
	MedusaPublishableKey string
	MedusaDefaultRegion  string
	BrandServiceURL      string

	MeiliHost         string
	MeiliAPIKey       string
	MeiliIndex        string
	MeiliOptionFacets []string

	JWTSecret          string
	AlertSNSTopicARN   string
	CORSOrigins        string
	RateLimitPerMinute int
	RateLimitBurst     int
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override of the API keys.
func LoadConfig(logger *zap.Logger) (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8095"),
		Env:                  getEnv("APP_ENV", "development"),
		StorageBackend:       getEnv("STORAGE_BACKEND", "memory"),
		StorageDir:           getEnv("STORAGE_DIR", "./data/storefront"),
		RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisTTL:             getDuration("REDIS_TTL", 0),
		DynamoTable:          getEnv("DYNAMODB_TABLE", "storefront_local_storage"),
		S3Bucket:             os.Getenv("STORAGE_S3_BUCKET"),
		S3Prefix:             getEnv("STORAGE_S3_PREFIX", "liststore"),
		StrapiURL:            getEnv("STRAPI_URL", "http://localhost:1337"),
		StrapiToken:          os.Getenv("STRAPI_API_TOKEN"),
		StrapiTimeout:        getDuration("STRAPI_TIMEOUT", 10*time.Second),
		MedusaURL:            getEnv("MEDUSA_BACKEND_URL", "http://localhost:9000"),
		MedusaPublishableKey: os.Getenv("MEDUSA_PUBLISHABLE_KEY"),
		MedusaDefaultRegion:  os.Getenv("MEDUSA_DEFAULT_REGION"),
		BrandServiceURL:      getEnv("BRAND_SERVICE_URL", "http://localhost:8096"),
		MeiliHost:            getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliAPIKey:          os.Getenv("MEILISEARCH_API_KEY"),
		MeiliIndex:           getEnv("MEILISEARCH_PRODUCT_INDEX", "products"),
		MeiliOptionFacets:    splitEnv("MEILI_OPTION_FACETS"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		AlertSNSTopicARN:     os.Getenv("INVENTORY_ALERT_SNS_TOPIC_ARN"),
		CORSOrigins:          getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		RateLimitPerMinute:   getInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:       getInt("RATE_LIMIT_BURST", 30),
	}

	// Override API keys from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)
			secrets, err := sm.GetSecretMap(context.Background(), "storefront/API_KEYS")
			if err != nil {
				logger.Warn("Failed to read storefront secrets, using environment", zap.Error(err))
			}
			override(&cfg.StrapiToken, secrets["STRAPI_API_TOKEN"])
			override(&cfg.MeiliAPIKey, secrets["MEILISEARCH_API_KEY"])
			override(&cfg.MedusaPublishableKey, secrets["MEDUSA_PUBLISHABLE_KEY"])
			override(&cfg.JWTSecret, secrets["JWT_SECRET"])
		}
	}

	if cfg.MedusaPublishableKey == "" {
		return nil, fmt.Errorf("MEDUSA_PUBLISHABLE_KEY is required")
	}
	return cfg, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func splitEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
