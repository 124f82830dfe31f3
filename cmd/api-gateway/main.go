package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edumentor/edumentor-api/api/swagger"
	"github.com/edumentor/edumentor-api/internal/handler"
	"github.com/edumentor/edumentor-api/internal/middleware"
	"github.com/edumentor/edumentor-api/internal/repository"
	"github.com/edumentor/edumentor-api/internal/service"
	"github.com/edumentor/edumentor-api/pkg/cache"
	"github.com/edumentor/edumentor-api/pkg/config"
	"github.com/edumentor/edumentor-api/pkg/database"
	"github.com/edumentor/edumentor-api/pkg/eversend"
	"github.com/edumentor/edumentor-api/pkg/logger"
	corsmiddleware "github.com/edumentor/edumentor-api/pkg/middleware/cors"
	recoverymiddleware "github.com/edumentor/edumentor-api/pkg/middleware/recovery"
	reqidmiddleware "github.com/edumentor/edumentor-api/pkg/middleware/requestid"
)

// @title Edumentor API
// @version 1.0.0
// @description Teacher/school job marketplace backend
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	// Redis is optional: the job-list cache simply stays off when the
	// connection fails or caching is disabled.
	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, job cache disabled")
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	jobRepo := repository.NewJobRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	eversendClient := eversend.NewClient(eversend.Config{
		ClientID:     cfg.Eversend.ClientID,
		ClientSecret: cfg.Eversend.ClientSecret,
		BaseURL:      cfg.Eversend.BaseURL,
		Timeout:      cfg.Eversend.Timeout,
	})

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      "edumentor-api",
	})
	teacherSvc := service.NewTeacherService(teacherRepo, validate, logr)
	schoolSvc := service.NewSchoolService(schoolRepo, validate, logr)
	jobSvc := service.NewJobService(jobRepo, schoolRepo, notificationRepo, cacheSvc, validate, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, teacherRepo, userRepo, eversendClient, cfg.BaseURL, validate, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc, notificationSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	schoolHandler := handler.NewSchoolHandler(schoolSvc)
	jobHandler := handler.NewJobHandler(jobSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)

	r := gin.New()
	r.Use(recoverymiddleware.New(logr))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/notifications/:user_id", authHandler.Notifications)
	}

	teachers := r.Group("/teachers")
	{
		teachers.POST("/", teacherHandler.Create)
		teachers.GET("/", teacherHandler.List)
		teachers.GET("/:id", teacherHandler.Get)
		teachers.PUT("/:id", teacherHandler.Update)
		teachers.GET("/by_user/:user_id", teacherHandler.GetByUser)
	}

	schools := r.Group("/schools")
	{
		schools.POST("/", schoolHandler.Create)
		schools.GET("/", schoolHandler.List)
		schools.GET("/:id", schoolHandler.Get)
		schools.PUT("/:id", schoolHandler.Update)
	}

	jobs := r.Group("/jobs")
	{
		jobs.POST("/", jobHandler.Create)
		jobs.GET("/", jobHandler.List)
		jobs.POST("/apply/", jobHandler.Apply)
		jobs.GET("/:job_id", jobHandler.Get)
		jobs.PUT("/:job_id", jobHandler.Update)
		jobs.DELETE("/:job_id", jobHandler.Delete)
		jobs.GET("/:job_id/applications", jobHandler.Applications)
		jobs.GET("/school/:school_id", jobHandler.ListBySchool)
		jobs.GET("/school/:school_id/applications", jobHandler.SchoolApplications)
		jobs.GET("/school/:school_id/applications/export", jobHandler.ExportSchoolApplications)
	}

	payments := r.Group("/payments")
	{
		payments.POST("/initiate", paymentHandler.Initiate)
		payments.POST("/webhook/eversend", paymentHandler.Webhook)
		payments.GET("/:transaction_id", paymentHandler.Get)
	}

	registerStaticPages(r, cfg.Static.Dir, logr.Sugar())

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// registerStaticPages serves the HTML pages from the static directory at
// fixed root paths. Missing files are skipped so the API runs standalone.
func registerStaticPages(r *gin.Engine, dir string, logr interface{ Infow(string, ...interface{}) }) {
	if dir == "" {
		return
	}

	pages := map[string]string{
		"/":                  "index.html",
		"/login":             "login.html",
		"/teacher-register":  "teacher-register.html",
		"/teacher-payment":   "teacher-payment.html",
		"/payment-success":   "payment-success.html",
		"/school-register":   "school-register.html",
		"/teacher-dashboard": "teacher-dashboard.html",
		"/school-dashboard":  "school-dashboard.html",
		"/teacher-listings":  "teacher-listings.html",
	}

	registered := 0
	for route, file := range pages {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		r.StaticFile(route, path)
		registered++
	}
	if registered > 0 {
		logr.Infow("static pages registered", "dir", dir, "count", registered)
	}
}
