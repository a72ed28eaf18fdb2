package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/LucasFJU/portfolio-flow-ai/internal/ai"
	"github.com/LucasFJU/portfolio-flow-ai/internal/config"
	"github.com/LucasFJU/portfolio-flow-ai/internal/db"
	httpHandlers "github.com/LucasFJU/portfolio-flow-ai/internal/http/handlers"
	httpRouter "github.com/LucasFJU/portfolio-flow-ai/internal/http/router"
	"github.com/LucasFJU/portfolio-flow-ai/internal/logger"
	"github.com/LucasFJU/portfolio-flow-ai/internal/repository"
	"github.com/LucasFJU/portfolio-flow-ai/internal/service"
	"github.com/LucasFJU/portfolio-flow-ai/internal/storage"
	"github.com/LucasFJU/portfolio-flow-ai/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	cacheService := service.NewCacheService()

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn)
	proposalRepo := repository.NewProposalRepository(dbConn)
	settingsRepo := repository.NewSettingsRepository(dbConn)
	analyticsRepo := repository.NewAnalyticsRepository(dbConn)
	leadRepo := repository.NewLeadRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	go hub.Run()

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	profileService := service.NewProfileService(userRepo, cacheService)
	projectService := service.NewProjectService(projectRepo, userRepo, cacheService)
	proposalService := service.NewProposalService(proposalRepo, userRepo, projectRepo, hub)
	settingsService := service.NewSettingsService(settingsRepo, userRepo, cacheService)
	portfolioService := service.NewPortfolioService(userRepo, projectRepo, settingsRepo, cacheService)
	analyticsService := service.NewAnalyticsService(analyticsRepo, leadRepo, cacheService, hub)
	mediaService := service.NewMediaService(mediaRepo, photoStorage)

	var aiClient *ai.Client
	if cfg.AIBaseURL != "" && cfg.AIModel != "" {
		aiClient = ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
	}

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	profileHandler := httpHandlers.NewProfileHandler(profileService)
	projectHandler := httpHandlers.NewProjectHandler(projectService)
	proposalHandler := httpHandlers.NewProposalHandler(proposalService, analyticsService)
	settingsHandler := httpHandlers.NewSettingsHandler(settingsService)
	portfolioHandler := httpHandlers.NewPortfolioHandler(portfolioService, analyticsService)
	analyticsHandler := httpHandlers.NewAnalyticsHandler(analyticsService)
	aiHandler := httpHandlers.NewAIHandler(aiClient)
	mediaHandler := httpHandlers.NewMediaHandler(mediaService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		profileHandler,
		projectHandler,
		proposalHandler,
		settingsHandler,
		portfolioHandler,
		analyticsHandler,
		aiHandler,
		mediaHandler,
		wsHandler,
		healthHandler,
		tokenManager,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
