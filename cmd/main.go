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
	"github.com/playerz/playerz-api/config"
	"github.com/playerz/playerz-api/db"
	_ "github.com/playerz/playerz-api/docs"
	"github.com/playerz/playerz-api/handlers"
	"github.com/playerz/playerz-api/live"
	"github.com/playerz/playerz-api/pairing"
	"github.com/playerz/playerz-api/repositories"
	api "github.com/playerz/playerz-api/routes"
	"github.com/playerz/playerz-api/services"
	"github.com/playerz/playerz-api/storage"
)

// @title PlayerZ API
// @version 1.0
// @description Tournament management backend: players, groups, teams, tournaments, sessions and matches.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Bool("auth", cfg.AuthEnabled()),
		slog.Bool("object_storage", cfg.R2Enabled()),
	)

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

	if cfg.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := db.Migrate(migrateCtx, dbConn)
		cancel()
		if err != nil {
			logger.Error("failed to apply schema", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("database schema applied")
	}

	// Загрузчик файлов (Cloudflare R2) необязателен
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewR2Uploader(context.Background(), storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, avatar uploads are disabled")
	}

	// Инициализация WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	wsHub := live.NewHub(logger)
	go wsHub.Run(hubCtx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	playerService := services.NewPlayerService(playerRepo, uploader, logger)
	groupService := services.NewGroupService(groupRepo, playerRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo)
	matchService := services.NewMatchService(matchRepo, sessionRepo, wsHub)
	aggregateService := services.NewAggregateService(tournamentRepo, playerRepo, teamRepo, sessionRepo, matchRepo)
	tournamentService := services.NewTournamentService(
		dbConn, // для транзакций
		tournamentRepo,
		teamRepo,
		sessionRepo,
		matchRepo,
		wsHub,
		logger,
	)
	logger.Info("Services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Player:     handlers.NewPlayerHandler(playerService),
		Group:      handlers.NewGroupHandler(groupService),
		Team:       handlers.NewTeamHandler(teamService),
		Match:      handlers.NewMatchHandler(matchService),
		Tournament: handlers.NewTournamentHandler(tournamentService, aggregateService),
		Game:       handlers.NewGameHandler(pairing.Pair),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	}, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
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
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
