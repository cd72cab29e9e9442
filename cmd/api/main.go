package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/summer-school-api/api/swagger"
	"github.com/noah-isme/summer-school-api/internal/gateway"
	"github.com/noah-isme/summer-school-api/internal/handler"
	"github.com/noah-isme/summer-school-api/internal/repository"
	"github.com/noah-isme/summer-school-api/internal/router"
	"github.com/noah-isme/summer-school-api/internal/service"
	"github.com/noah-isme/summer-school-api/pkg/cache"
	"github.com/noah-isme/summer-school-api/pkg/config"
	"github.com/noah-isme/summer-school-api/pkg/database"
	"github.com/noah-isme/summer-school-api/pkg/logger"
	"github.com/noah-isme/summer-school-api/pkg/storage"
)

// @title Summer School API
// @version 1.0.0
// @description Back-office API for the summer school enrollment platform
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()
	metrics := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	userSvc := service.NewUserService(userRepo, cacheSvc, validate, logr)
	classSvc := service.NewClassService(classRepo, userRepo, cacheSvc, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, classRepo, validate, logr)

	archive, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export directory", "error", err)
	}
	go cleanupArchive(archive, cfg.Export.TTL, logr)
	stripeGateway := gateway.NewStripeGateway(cfg.Stripe.SecretKey)
	paymentSvc := service.NewPaymentService(paymentRepo, stripeGateway, cacheSvc, metrics, archive, cfg.Stripe.Currency, validate, logr)

	auditSvc := service.NewAuditService(userRepo, logr)
	auditSvc.Start(context.Background())
	defer auditSvc.Stop()

	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		User:       handler.NewUserHandler(userSvc),
		Class:      handler.NewClassHandler(classSvc),
		Enrollment: handler.NewEnrollmentHandler(enrollmentSvc),
		Payment:    handler.NewPaymentHandler(paymentSvc),
		Metrics:    handler.NewMetricsHandler(metrics),
	}

	r := router.Setup(cfg, handlers, &router.Deps{
		Auth:    authSvc,
		Users:   userRepo,
		Audit:   auditSvc,
		Metrics: metrics,
		Logger:  logr,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// cleanupArchive prunes archived statements past their retention once a day.
func cleanupArchive(archive *storage.LocalStorage, ttl time.Duration, logr *zap.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		deleted, err := archive.CleanupOlderThan(ttl)
		if err != nil {
			logr.Sugar().Warnw("statement archive cleanup failed", "error", err)
			continue
		}
		if len(deleted) > 0 {
			logr.Sugar().Infow("statement archive pruned", "deleted", len(deleted))
		}
	}
}
