package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobhub_backend/internal/auth"
	"jobhub_backend/internal/config"
	"jobhub_backend/internal/handlers"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/middleware"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/routes"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/storage"
	"jobhub_backend/internal/validator"
	"jobhub_backend/internal/workers"
	"jobhub_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Job{},
		&models.JobApplication{},
		&models.ChatMessage{},
	); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	// Возможности схемы проверяются один раз на старте, не по строкам ошибок
	caps := repositories.DetectSchemaCapabilities(gormDB)
	logger.Info("Schema capabilities detected", "category_description", caps.CategoryDescription)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(cfg, gormDB, caps, ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, caps repositories.SchemaCapabilities, ctx context.Context) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	if err := storageInstance.EnsureBucket(ctx); err != nil {
		logger.Fatal("Failed to ensure storage bucket", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// --- Репозитории ---
	userRepo := repositories.NewUserRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)
	chatMessageRepo := repositories.NewChatMessageRepository(gormDB)
	categoryRepo := repositories.NewCategoryRepository(gormDB, caps)

	// --- WebSocket manager (реализует Broadcaster для ChatService) ---
	wsManager := ws.NewManager()
	go wsManager.Run()

	// --- Сервисы ---
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	verifyTimeout := time.Duration(cfg.Auth.VerifyTimeoutMS) * time.Millisecond

	serviceContainer := &services.ServiceContainer{
		AuthService:        services.NewAuthService(userRepo, tokenManager, cfg.JWT.TTL, verifyTimeout),
		UserService:        services.NewUserService(userRepo, storageInstance),
		JobService:         services.NewJobService(jobRepo, categoryRepo),
		ApplicationService: services.NewApplicationService(applicationRepo, jobRepo, userRepo),
		ChatService:        services.NewChatService(chatMessageRepo, jobRepo, applicationRepo, wsManager),
		CategoryService:    services.NewCategoryService(categoryRepo),
	}

	// --- Хэндлеры ---
	v := validator.New()
	base := handlers.NewBaseHandler(v)
	appHandlers := &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(base, serviceContainer.AuthService, serviceContainer.UserService),
		UserHandler:        handlers.NewUserHandler(base, serviceContainer.UserService),
		JobHandler:         handlers.NewJobHandler(base, serviceContainer.JobService),
		ApplicationHandler: handlers.NewApplicationHandler(base, serviceContainer.ApplicationService),
		CategoryHandler:    handlers.NewCategoryHandler(base, serviceContainer.CategoryService),
		ChatHandler:        handlers.NewChatHandler(base, serviceContainer.ChatService),
	}

	wsHandler := ws.NewWSHandler(wsManager, serviceContainer.AuthService, serviceContainer.ChatService)

	// --- Background workers ---
	sweepInterval := time.Duration(cfg.Worker.SweepIntervalMinutes) * time.Minute
	jobWorker := workers.NewJobWorker(jobRepo, sweepInterval)
	jobWorker.Start(ctx)

	// --- Gin ---
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())

	authMW := middleware.AuthMiddleware(serviceContainer.AuthService)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, authMW)

	return ginRouter
}
