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

	"github.com/Dosada05/pickup-games/config"
	"github.com/Dosada05/pickup-games/db"
	"github.com/Dosada05/pickup-games/handlers"
	"github.com/Dosada05/pickup-games/identity"
	"github.com/Dosada05/pickup-games/live"
	"github.com/Dosada05/pickup-games/repositories"
	api "github.com/Dosada05/pickup-games/routes"
	"github.com/Dosada05/pickup-games/services"
	"github.com/Dosada05/pickup-games/storage"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("docstore", cfg.DocstoreDriver),
		slog.String("identity", cfg.IdentityProvider),
		slog.Bool("require_auth", cfg.RequireAuth),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к хранилищу документов
	store, err := db.Connect(cfg, 10*time.Second)
	if err != nil {
		logger.Error("failed to connect to document store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close document store", slog.Any("error", err))
		} else {
			logger.Info("document store closed")
		}
	}()
	logger.Info("document store connected", slog.String("driver", cfg.DocstoreDriver))

	provider, err := identity.New(ctx, cfg, store)
	if err != nil {
		logger.Error("failed to initialize identity provider", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("identity provider initialized", slog.String("provider", cfg.IdentityProvider))

	// Загрузка фото площадок (Cloudflare R2) опциональна
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, cfg.R2)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Warn("Cloudflare R2 is not configured, pitch photo uploads are disabled")
	}

	// WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	userRepo := repositories.NewUserRepository(store)
	pitchRepo := repositories.NewPitchRepository(store)
	gameRepo := repositories.NewGameRepository(store)

	authService := services.NewAuthService(userRepo, provider)
	userService := services.NewUserService(userRepo, provider, logger)
	pitchService := services.NewPitchService(pitchRepo, uploader, logger)
	gameService := services.NewGameService(gameRepo, wsHub, logger)
	playerService := services.NewPlayerService(userRepo, gameRepo, wsHub, logger)
	dashboardService := services.NewDashboardService(userRepo, pitchRepo, gameRepo)
	logger.Info("Services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router,
		api.Options{
			RequireAuth:    cfg.RequireAuth,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AuthService:    authService,
			Logger:         logger,
		},
		api.Handlers{
			Auth:      handlers.NewAuthHandler(authService),
			User:      handlers.NewUserHandler(userService),
			Pitch:     handlers.NewPitchHandler(pitchService),
			Game:      handlers.NewGameHandler(gameService),
			Player:    handlers.NewPlayerHandler(playerService),
			WebSocket: handlers.NewWebSocketHandler(wsHub, gameService),
			Dashboard: handlers.NewDashboardHandler(dashboardService),
		},
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
