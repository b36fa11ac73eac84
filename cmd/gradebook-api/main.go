package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/sta-gradebook-api/api/swagger"
	"github.com/noah-isme/sta-gradebook-api/internal/engine"
	"github.com/noah-isme/sta-gradebook-api/internal/handler"
	"github.com/noah-isme/sta-gradebook-api/internal/levels"
	"github.com/noah-isme/sta-gradebook-api/internal/middleware"
	"github.com/noah-isme/sta-gradebook-api/internal/repository"
	"github.com/noah-isme/sta-gradebook-api/internal/service"
	"github.com/noah-isme/sta-gradebook-api/pkg/cache"
	"github.com/noah-isme/sta-gradebook-api/pkg/config"
	"github.com/noah-isme/sta-gradebook-api/pkg/database"
	"github.com/noah-isme/sta-gradebook-api/pkg/export"
	"github.com/noah-isme/sta-gradebook-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sta-gradebook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sta-gradebook-api/pkg/middleware/requestid"
	"github.com/noah-isme/sta-gradebook-api/pkg/storage"

	"go.uber.org/zap"
)

// @title STA Gradebook API
// @version 1.0.0
// @description Grading, ranking, attendance and curriculum progress engine for AF1-AF6 classes.
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// The cache is an optimisation, not a dependency: when Redis is down
	// the API serves analysis and reports straight from Postgres.
	var cacheRepo *repository.CacheRepository
	if cfg.Analysis.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, analysis cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analysis.CacheTTL, logr, cacheRepo != nil)

	levelCfg := levels.New(metricsSvc.RecordLevelFallback)
	calendar := engine.Calendar{Start: cfg.Academic.YearStart, TotalWeeks: cfg.Academic.TotalWeeks}
	validate := validator.New()

	scoreRepo := repository.NewScoreRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	classRepo := repository.NewClassRepository(db)

	scoreSvc := service.NewScoreService(scoreRepo, classRepo, studentRepo, levelCfg, cacheSvc, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, cacheSvc, validate, logr)
	curriculumSvc := service.NewCurriculumService(curriculumRepo, classRepo, calendar, levelCfg, validate, logr)
	analysisSvc := service.NewAnalysisService(studentRepo, classRepo, scoreRepo, attendanceRepo, levelCfg, cacheSvc, logr)
	reportSvc := service.NewReportService(studentRepo, classRepo, scoreRepo, levelCfg, export.NewCSVExporter(), cacheSvc, logr)
	studentSvc := service.NewStudentService(studentRepo, classRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, validate, logr)

	exportStore, err := storage.NewLocalStorage(cfg.Reports.ExportDir)
	if err != nil {
		logr.Sugar().Fatalw("export storage init failed", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.ExportSecret, cfg.Reports.ExportTTL)
	exportSvc := service.NewExportService(reportSvc, classRepo, exportStore, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Reports.ExportTTL,
		Workers:   cfg.Reports.ExportWorkers,
	}, logr)
	exportSvc.Start(context.Background())
	defer exportSvc.Stop()

	scoreHandler := handler.NewScoreHandler(scoreSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	curriculumHandler := handler.NewCurriculumHandler(curriculumSvc)
	analysisHandler := handler.NewAnalysisHandler(analysisSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	classHandler := handler.NewClassHandler(classSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.GET("/scores", scoreHandler.List)
	api.POST("/scores", scoreHandler.Save)
	api.DELETE("/scores", scoreHandler.Delete)

	api.GET("/classes", classHandler.List)
	api.POST("/classes", classHandler.Create)
	api.GET("/classes/:id", classHandler.Get)
	api.PUT("/classes/:id", classHandler.Update)
	api.DELETE("/classes/:id", classHandler.Delete)
	api.GET("/classes/:id/students/:studentId/term-stats", scoreHandler.TermStats)
	api.GET("/classes/:id/ranking", scoreHandler.Ranking)
	api.GET("/classes/:id/attendance", attendanceHandler.ListClass)
	api.GET("/classes/:id/attendance/stats", attendanceHandler.ClassStats)
	api.GET("/classes/:id/progress", curriculumHandler.ClassProgress)
	api.PUT("/classes/:id/progress/:topicId", curriculumHandler.SetClassProgress)
	api.GET("/classes/:id/analysis", analysisHandler.Class)
	api.GET("/classes/:id/reports/annual", reportHandler.Annual)
	if cfg.Reports.CSVEnabled {
		api.GET("/classes/:id/reports/annual.csv", reportHandler.AnnualCSV)
		api.POST("/classes/:id/reports/annual/export", exportHandler.Create)
		api.GET("/exports/:id", exportHandler.Status)
		api.GET("/export/:token", exportHandler.Download)
	}

	api.POST("/attendance", attendanceHandler.Save)

	api.GET("/students", studentHandler.List)
	api.POST("/students", studentHandler.Create)
	api.POST("/students/progress", curriculumHandler.SetStudentProgress)
	api.GET("/students/:id", studentHandler.Get)
	api.PUT("/students/:id", studentHandler.Update)
	api.DELETE("/students/:id", studentHandler.Delete)
	api.GET("/students/:id/attendance/stats", attendanceHandler.StudentStats)
	api.GET("/students/:id/analysis", analysisHandler.Student)
	api.GET("/students/:id/progress", curriculumHandler.StudentProgress)
	api.DELETE("/students/:id/progress/:topicId", curriculumHandler.ClearStudentProgress)

	api.GET("/curriculum/topics", curriculumHandler.ListTopics)
	api.POST("/curriculum/topics", curriculumHandler.CreateTopic)
	api.PUT("/curriculum/topics/:id", curriculumHandler.UpdateTopic)
	api.DELETE("/curriculum/topics/:id", curriculumHandler.DeleteTopic)
	api.POST("/curriculum/levels/:level/template", curriculumHandler.LoadTemplate)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
