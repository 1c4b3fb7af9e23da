package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/sgpa-dev/sgpa-api/api/swagger"
	"github.com/sgpa-dev/sgpa-api/internal/handler"
	"github.com/sgpa-dev/sgpa-api/internal/repository"
	"github.com/sgpa-dev/sgpa-api/internal/service"
	"github.com/sgpa-dev/sgpa-api/pkg/cache"
	"github.com/sgpa-dev/sgpa-api/pkg/config"
	"github.com/sgpa-dev/sgpa-api/pkg/database"
	"github.com/sgpa-dev/sgpa-api/pkg/logger"
	corsmiddleware "github.com/sgpa-dev/sgpa-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sgpa-dev/sgpa-api/pkg/middleware/requestid"
)

// @title SGPA API
// @version 1.0.0
// @description Sistema de Gestión de Proyectos y Ayudantías
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
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	// Redis is optional: without it the workflow summary is computed on
	// every call.
	var cacheSvc *service.CacheService
	if cfg.Workflow.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, workflow cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Workflow.SummaryCacheTTL, logr, true)
		}
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	formRepo := repository.NewFormRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	projectSvc := service.NewProjectService(projectRepo, validate, logr, cfg.Extraction.HelperCountLabel)
	formSvc := service.NewFormService(formRepo, projectRepo, notificationRepo, cacheSvc, metricsSvc, validate, logr)
	requestSvc := service.NewRequestService(requestRepo, projectRepo, formRepo, notificationRepo, cacheSvc, metricsSvc, validate, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, metricsSvc, logr)
	quotaSvc := service.NewQuotaService(projectRepo, formRepo, notificationRepo, metricsSvc, logr)
	workflowSvc := service.NewWorkflowService(projectRepo, formRepo, requestRepo, cacheSvc, cfg.Workflow.SummaryCacheTTL, logr)
	exportSvc := service.NewExportService(formRepo, requestRepo, cfg.Exports.Enabled, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	handler.RegisterRoutes(r, handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Users:         handler.NewUserHandler(userSvc),
		Projects:      handler.NewProjectHandler(projectSvc, cfg.Extraction.MaxDocumentBytes),
		Forms:         handler.NewFormHandler(formSvc),
		Requests:      handler.NewRequestHandler(requestSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Workflow:      handler.NewWorkflowHandler(workflowSvc, quotaSvc),
		Exports:       handler.NewExportHandler(exportSvc),
		Metrics:       handler.NewMetricsHandler(metricsSvc, db),
	}, handler.RouterOptions{
		AuthService: authSvc,
		MetricsSvc:  metricsSvc,
		EnableDocs:  cfg.Env != config.EnvProduction,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
