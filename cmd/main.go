package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/sportsfest/sportsday-live/catalog"
	"github.com/sportsfest/sportsday-live/config"
	"github.com/sportsfest/sportsday-live/db"
	"github.com/sportsfest/sportsday-live/handlers"
	"github.com/sportsfest/sportsday-live/realtime"
	api "github.com/sportsfest/sportsday-live/routes"
	"github.com/sportsfest/sportsday-live/services"
	"github.com/sportsfest/sportsday-live/storage"
	"github.com/sportsfest/sportsday-live/store"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Каталог игр: файл из конфигурации или встроенный по умолчанию
	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			logger.Error("failed to load game catalog", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("game catalog loaded", slog.String("path", cfg.CatalogPath))
	} else {
		cat = catalog.Default()
	}

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Хранилище состояния с push-уведомлениями через LISTEN/NOTIFY
	eventStore, err := store.NewPostgresStore(dbConn, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("failed to initialize event store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := eventStore.Close(); err != nil {
			logger.Error("failed to close event store", slog.Any("error", err))
		}
	}()
	logger.Info("event store initialized")

	// Инициализация загрузчика снимков (Cloudflare R2), если настроен
	var uploader storage.FileUploader
	if cfg.ExportEnabled() {
		r2Uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		uploader = r2Uploader
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("snapshot export disabled: R2 is not configured")
	}

	// Инициализация WebSocket Hub
	wsHub := realtime.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация сервисов
	authService := services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecretKey)
	eventService := services.NewEventService(eventStore, cat, wsHub, logger)
	exportService := services.NewExportService(eventService, cat, uploader, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eventService.Start(ctx); err != nil {
		logger.Error("failed to start event service", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService)
	gameHandler := handlers.NewGameHandler(cat)
	scheduleHandler := handlers.NewScheduleHandler(eventService)
	resultHandler := handlers.NewResultHandler(eventService)
	liveHandler := handlers.NewLiveHandler(eventService)
	bracketHandler := handlers.NewBracketHandler(eventService)
	standingsHandler := handlers.NewStandingsHandler(eventService)
	exportHandler := handlers.NewExportHandler(exportService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, eventService)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authService,
		authHandler,
		gameHandler,
		scheduleHandler,
		resultHandler,
		liveHandler,
		bracketHandler,
		standingsHandler,
		exportHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
