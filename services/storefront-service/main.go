package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	awspkg "github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/aws"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/medusa"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/strapi"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/auth"
	apperrors "github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/errors"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/logger"
	commonmw "github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/middleware"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/cache"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/clients"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/controllers"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/routes"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/services"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"go.uber.org/zap"
)

const serviceName = "storefront-service"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// --- AWS setup ---
	awsCfg, awsErr := awspkg.LoadAWSConfig(context.Background())

	var cwWriter io.Writer
	if awsErr == nil {
		if cw, err := awspkg.NewCloudWatchLogsClient(context.Background(), awsCfg, serviceName); err == nil && cw.IsEnabled() {
			cwWriter = cw
		}
	}

	zl, err := logger.New(os.Getenv("APP_ENV"), cwWriter)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer zl.Sync()

	cfg, err := LoadConfig(zl)
	if err != nil {
		zl.Fatal("Config load failed", zap.Error(err))
	}

	var (
		snsClient     awspkg.SNSPublisher
		metricsClient *awspkg.MetricsClient
		storageOpts   = storage.Options{
			Backend:     cfg.StorageBackend,
			Dir:         cfg.StorageDir,
			RedisURL:    cfg.RedisURL,
			RedisTTL:    cfg.RedisTTL,
			DynamoTable: cfg.DynamoTable,
			S3Bucket:    cfg.S3Bucket,
			S3Prefix:    cfg.S3Prefix,
		}
	)
	if awsErr != nil {
		zl.Warn("AWS config unavailable; SNS, metrics and AWS storage backends disabled", zap.Error(awsErr))
	} else {
		if cfg.AlertSNSTopicARN != "" {
			snsClient = awspkg.NewSNSClient(awsCfg)
		}
		metricsClient = awspkg.NewMetricsClient(awsCfg)
		switch cfg.StorageBackend {
		case storage.BackendDynamo:
			storageOpts.Dynamo = awspkg.NewDynamoDBClient(awsCfg)
		case storage.BackendS3:
			storageOpts.S3 = awspkg.NewS3Client(awsCfg)
		}
	}

	// --- Storage ---
	backend, closeStorage, err := storage.Open(context.Background(), storageOpts)
	if err != nil {
		zl.Fatal("Storage init failed", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	zl.Info("Storage ready", zap.String("backend", cfg.StorageBackend))

	// --- Upstream clients ---
	strapiClient := strapi.NewClient(cfg.StrapiURL, cfg.StrapiToken, cfg.StrapiTimeout)
	medusaClient := medusa.NewClient(cfg.MedusaURL, 10*time.Second, medusa.WithPublishableKey(cfg.MedusaPublishableKey))
	brandClient := medusa.NewClient(cfg.BrandServiceURL, 5*time.Second)
	productIndex := clients.NewMeiliProductIndex(cfg.MeiliHost, cfg.MeiliAPIKey, cfg.MeiliIndex)

	contentCache := cache.NewTTLCache(cache.DefaultTTL).WithObserver(func(hit bool) {
		name := awspkg.MetricContentCacheMisses
		if hit {
			name = awspkg.MetricContentCacheHits
		}
		metricsClient.RecordCountAsync(name, map[string]string{"Service": serviceName})
	})
	labelCache := cache.NewTTLCache(cache.DefaultTTL)

	// --- Dependency injection ---
	listService := services.NewListService(backend, snsClient, cfg.AlertSNSTopicARN, metricsClient, zl)
	contentService := services.NewContentService(strapiClient, contentCache, zl)
	searchService := services.NewSearchService(productIndex, medusaClient, brandClient, labelCache, cfg.MeiliOptionFacets, zl)

	ctrls := routes.Controllers{
		Lists:   controllers.NewListController(listService),
		Cart:    controllers.NewCartController(listService, medusaClient, cfg.MedusaDefaultRegion),
		Content: controllers.NewContentController(contentService),
		Search:  controllers.NewSearchController(searchService),
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(commonmw.RequestLogger(zl))
	r.Use(commonmw.MetricsMiddleware(metricsClient, serviceName))
	r.Use(commonmw.SecurityHeaders())
	r.Use(commonmw.CORSMiddleware(cfg.CORSOrigins))
	r.Use(commonmw.RateLimitMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	r.Use(apperrors.ErrorMiddleware())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, ctrls, auth.NewTokenParser(cfg.JWTSecret))

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zl.Info("Storefront Service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server shutdown error", zap.Error(err))
	}
	if err := closeStorage(); err != nil {
		zl.Error("Storage close error", zap.Error(err))
	}

	log.Println("Storefront Service stopped gracefully")
}
