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
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/controllers"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/database"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/repository"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/routes"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/services"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/auth"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/logger"
	commonmw "github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/middleware"
	"go.uber.org/zap"
)

const serviceName = "brand-service"

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
	)
	if awsErr != nil {
		zl.Warn("AWS config unavailable; SNS and metrics disabled", zap.Error(awsErr))
	} else {
		if cfg.BrandSNSTopicARN != "" {
			snsClient = awspkg.NewSNSClient(awsCfg)
		}
		metricsClient = awspkg.NewMetricsClient(awsCfg)
	}

	// --- Database ---
	db, err := database.ConnectPostgres(cfg.Database, zl, &models.Brand{}, &models.BrandProduct{})
	if err != nil {
		zl.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Dependency injection ---
	brandRepo := repository.NewGormBrandRepository(db)
	brandService := services.NewBrandService(brandRepo, snsClient, cfg.BrandSNSTopicARN, metricsClient, zl)
	brandController := controllers.NewBrandController(brandService)
	if err := controllers.RegisterValidators(); err != nil {
		zl.Fatal("Validator registration failed", zap.Error(err))
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

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterBrandRoutes(r, brandController, auth.NewTokenParser(cfg.JWTSecret))

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zl.Info("Brand Service started", zap.String("port", cfg.Port))
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
	if err := database.Close(db); err != nil {
		zl.Error("Database close error", zap.Error(err))
	}

	log.Println("Brand Service stopped gracefully")
}
