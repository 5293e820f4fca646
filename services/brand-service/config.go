package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	awspkg "github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/aws"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/database"
	"go.uber.org/zap"
)

// Config holds all configuration for the brand service.
type Config struct {
	Port     string
	Env      string
	Database database.Config

	JWTSecret          string
	BrandSNSTopicARN   string
	CORSOrigins        string
	RateLimitPerMinute int
	RateLimitBurst     int
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override of the database credentials.
func LoadConfig(logger *zap.Logger) (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8096"),
		Env:  getEnv("APP_ENV", "development"),
		Database: database.Config{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "Australia/Sydney"),
		},
		JWTSecret:          os.Getenv("JWT_SECRET"),
		BrandSNSTopicARN:   os.Getenv("BRAND_SNS_TOPIC_ARN"),
		CORSOrigins:        getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:7001"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 300),
		RateLimitBurst:     getInt("RATE_LIMIT_BURST", 60),
	}

	// Override DB credentials from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)
			m, err := sm.GetSecretMap(context.Background(), "brand/DB_CREDENTIALS")
			if err != nil {
				logger.Warn("Failed to read brand DB secret, using environment", zap.Error(err))
			}
			override(&cfg.Database.User, m["POSTGRES_USER"])
			override(&cfg.Database.Password, m["POSTGRES_PASSWORD"])
			override(&cfg.Database.Name, m["POSTGRES_DB"])
			override(&cfg.Database.Host, m["POSTGRES_HOST"])
			override(&cfg.Database.Port, m["POSTGRES_PORT"])
			override(&cfg.JWTSecret, m["JWT_SECRET"])
		}
	}

	if cfg.Database.User == "" || cfg.Database.Password == "" || cfg.Database.Name == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set; admin brand routes will reject every request")
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
