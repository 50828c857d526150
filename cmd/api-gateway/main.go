package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-enrollment-api/api/swagger"
	"github.com/noah-isme/sma-enrollment-api/internal/handler"
	internalmiddleware "github.com/noah-isme/sma-enrollment-api/internal/middleware"
	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/repository"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	"github.com/noah-isme/sma-enrollment-api/pkg/cache"
	"github.com/noah-isme/sma-enrollment-api/pkg/config"
	"github.com/noah-isme/sma-enrollment-api/pkg/database"
	"github.com/noah-isme/sma-enrollment-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-enrollment-api/pkg/middleware/requestid"
)

// @title School Enrollment API
// @version 1.0.0
// @description Enrollment engine scoped to the active academic year: class capacity, fee schedules, renewals and payments.
// @BasePath /api/v1
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
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, reference caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metricsSvc, "enrollment", cfg.Cache.FeeSchedTTL, logr, true)
		}
	}

	validate := validator.New()

	yearRepo := repository.NewAcademicYearRepository(db)
	classRepo := repository.NewClassSectionRepository(db)
	levelRepo := repository.NewLevelRepository(db)
	feeRepo := repository.NewFeeScheduleRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	registry := service.NewAcademicYearRegistry(yearRepo, logr)
	defer registry.Close()

	levelCatalog := service.NewLevelCatalog(levelRepo, cacheSvc, cfg.Cache.LevelsTTL, logr)
	feeSvc := service.NewFeeScheduleService(feeRepo, classRepo, yearRepo, levelCatalog, cacheSvc, cfg.Cache.FeeSchedTTL, validate, logr)
	occupancy := service.NewClassOccupancyIndex(enrollmentRepo, classRepo, logr)
	view := service.NewReferenceDataView(registry, classRepo, levelCatalog, feeSvc, occupancy, metricsSvc, logr)
	yearSvc := service.NewAcademicYearService(yearRepo, registry, validate, logr)
	classSvc := service.NewClassSectionService(classRepo, yearRepo, levelCatalog, feeSvc, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, registry, classRepo, levelCatalog, feeSvc, occupancy, paymentRepo, metricsSvc,
		service.EnrollmentServiceConfig{
			MonthsInYear:       cfg.Enrollment.MonthsInYear,
			DefaultPaymentPlan: models.PaymentPlan(cfg.Enrollment.DefaultPaymentPlan),
		}, validate, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, enrollmentRepo, validate, logr)

	registry.Subscribe(view.OnActiveYearChanged)
	registry.Subscribe(func(scope service.ActiveYearScope) {
		metricsSvc.RecordActiveYearSwitch()
		if scope.Year != nil {
			logr.Info("active academic year switched", zap.String("academic_year_id", scope.Year.ID), zap.Uint64("epoch", scope.Epoch))
		}
	})

	bootCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if _, err := registry.Refresh(bootCtx); err != nil {
		logr.Warn("failed to load academic years at boot", zap.Error(err))
	}
	if id := cfg.Enrollment.InitialActiveYearID; id != "" {
		if _, err := registry.SetActive(bootCtx, id); err != nil {
			logr.Warn("configured active academic year not applied", zap.String("academic_year_id", id), zap.Error(err))
		}
	}
	cancel()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if _, ok := registry.Active(); !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "no active academic year"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/metrics/summary", metricsHandler.Summary)

	yearHandler := handler.NewAcademicYearHandler(yearSvc, registry)
	years := api.Group("/academic-years")
	years.GET("", yearHandler.List)
	years.POST("", yearHandler.Create)
	years.GET("/active", yearHandler.Active)
	years.PUT("/active", yearHandler.SetActive)
	years.POST("/refresh", yearHandler.Refresh)
	years.GET("/:id", yearHandler.Get)
	years.PATCH("/:id/status", yearHandler.Advance)
	years.PATCH("/:id/activate", yearHandler.Activate)

	classHandler := handler.NewClassSectionHandler(classSvc, occupancy, view)
	classes := api.Group("/class-sections")
	classes.GET("", classHandler.List)
	classes.POST("", classHandler.Create)
	classes.GET("/:id", classHandler.Get)

	feeHandler := handler.NewFeeScheduleHandler(feeSvc, view)
	fees := api.Group("/fee-schedules")
	fees.GET("", feeHandler.List)
	fees.POST("", feeHandler.Create)
	fees.POST("/copy-forward", feeHandler.CopyForward)

	referenceHandler := handler.NewReferenceDataHandler(view, levelCatalog)
	reference := api.Group("/reference")
	reference.GET("/classes", referenceHandler.Classes)
	reference.GET("/available-classes", referenceHandler.AvailableClasses)
	reference.GET("/levels", referenceHandler.Levels)
	reference.GET("/eligible-levels", referenceHandler.EligibleLevels)
	reference.GET("/previous-year", referenceHandler.PreviousYear)
	reference.POST("/reload", referenceHandler.Reload)

	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc, view)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	enrollments := api.Group("/enrollments")
	enrollments.GET("", enrollmentHandler.List)
	enrollments.POST("", enrollmentHandler.Create)
	enrollments.POST("/renew", enrollmentHandler.Renew)
	enrollments.GET("/export", enrollmentHandler.Export)
	enrollments.GET("/:id", enrollmentHandler.Get)
	enrollments.PUT("/:id", enrollmentHandler.Update)
	enrollments.GET("/:id/renewal-suggestion", enrollmentHandler.RenewalSuggestion)
	enrollments.POST("/:id/cancel", enrollmentHandler.Cancel)
	enrollments.POST("/:id/transfer", enrollmentHandler.Transfer)
	enrollments.GET("/:id/statement", enrollmentHandler.Statement)
	enrollments.GET("/:id/payments", paymentHandler.List)
	enrollments.POST("/:id/payments", paymentHandler.Record)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
