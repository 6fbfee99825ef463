package main

import (
	"os"
	"os/signal"
	"syscall"

	configs "github.com/notemind/notemind/config"
	"github.com/notemind/notemind/internal/constants"
	"github.com/notemind/notemind/internal/handler"
	"github.com/notemind/notemind/internal/middleware"
	"github.com/notemind/notemind/internal/repository"
	"github.com/notemind/notemind/internal/router"
	"github.com/notemind/notemind/internal/service"
	"github.com/notemind/notemind/pkg/database"
	"github.com/notemind/notemind/pkg/logger"
	"github.com/notemind/notemind/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if config.App.Environment != constants.EnvProduction {
		if err := database.Seed(db, config.JWT.BcryptCost); err != nil {
			// Seed data may already exist
			logger.GetLogger().Error("Failed to seed database", zap.Error(err))
		} else {
			logger.GetLogger().Info("Database seeded successfully")
		}
	}

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
	}, logger.GetLogger())
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	// Repositories
	userRepo := repository.NewGormUserRepository(db, logger.GetLogger())
	noteRepo := repository.NewGormNoteRepository(db, logger.GetLogger())
	tagRepo := repository.NewGormTagRepository(db, logger.GetLogger())

	// Services
	tokenService := service.NewTokenService(config.JWT.Secret, config.JWT.ExpirationTime)
	authService := service.NewAuthService(userRepo, tokenService, logger.GetLogger(), config.JWT.BcryptCost, config.Reset.TokenTTL)
	noteService := service.NewNoteService(noteRepo, logger.GetLogger())
	tagService := service.NewTagService(tagRepo, logger.GetLogger())
	summaryService := service.NewSummaryService(
		noteRepo,
		service.NewOpenAIClient(config.AI.APIKey),
		redisClient,
		config.AI.Model,
		config.AI.SummaryCacheTTL,
		logger.GetLogger(),
	)

	// Handlers
	cookieMaxAge := int(config.JWT.ExpirationTime.Seconds())
	cookieSecure := config.App.Environment == constants.EnvProduction
	authHandler := handler.NewAuthHandler(authService, cookieMaxAge, cookieSecure)
	noteHandler := handler.NewNoteHandler(noteService, summaryService)
	tagHandler := handler.NewTagHandler(tagService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	sessionMiddleware := middleware.NewSessionMiddleware(tokenService, userRepo)

	r := router.NewRouter(
		authHandler,
		noteHandler,
		tagHandler,
		healthHandler,
		sessionMiddleware,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
