package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/workoutlog/internal/config"
	"github.com/HammerMeetNail/workoutlog/internal/database"
	"github.com/HammerMeetNail/workoutlog/internal/handlers"
	"github.com/HammerMeetNail/workoutlog/internal/logging"
	"github.com/HammerMeetNail/workoutlog/internal/middleware"
	"github.com/HammerMeetNail/workoutlog/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", logging.Fields{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logging.ParseLevel(cfg.Server.LogLevel)
	logger.SetLevel(level)
	logging.SetDefaultLevel(level)

	logger.Info("Starting workout log server...", logging.Fields{"env": cfg.Server.Environment})

	ctx := context.Background()

	logger.Info("Connecting to PostgreSQL", logging.Fields{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	logger.Info("Running database migrations...", logging.Fields{"path": cfg.App.MigrationsPath})
	migrator, err := database.NewMigrator(cfg.Database.DSN(), cfg.App.MigrationsPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := database.MigrateUp(migrator, logger); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()

	// Redis is optional: sessions fall back to Postgres and rate limits are
	// skipped while it is unavailable.
	var (
		redisClient  *redis.Client
		redisChecker handlers.HealthChecker
	)
	logger.Info("Connecting to Redis", logging.Fields{"addr": cfg.Redis.Addr()})
	redisDB, err := database.NewRedisDB(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn("Redis unavailable, continuing without it", logging.Fields{"error": err.Error()})
	} else {
		defer func() { _ = redisDB.Close() }()
		redisClient = redisDB.Client
		redisChecker = redisDB
		logger.Info("Connected to Redis")
	}

	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisClient)

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService(dbAdapter, redisAdapter)
	timerService := services.NewTimerService(dbAdapter)
	friendService := services.NewFriendService(dbAdapter, cfg.App.SearchLimit)
	exerciseService := services.NewExerciseService(dbAdapter, friendService, cfg.App.DiaryMaxLength)

	authRateLimit := resolveAuthRateLimit(cfg, logger)

	handler := newRouter(routerDeps{
		health:   handlers.NewHealthHandler(db, redisChecker),
		auth:     handlers.NewAuthHandler(userService, authService, cfg.Server.Secure),
		timer:    handlers.NewTimerHandler(timerService),
		exercise: handlers.NewExerciseHandler(exerciseService),
		friend:   handlers.NewFriendHandler(friendService),

		authMiddleware:     middleware.NewAuthMiddleware(authService),
		csrf:               middleware.NewCSRFMiddleware(cfg.Server.Secure),
		securityHeaders:    middleware.NewSecurityHeaders(cfg.Server.Secure),
		cacheControl:       middleware.NewCacheControl(),
		compress:           middleware.NewCompress(),
		requestLogger:      middleware.NewRequestLogger(logger),
		authRateLimiter:    middleware.NewAuthRateLimiter(redisClient, authRateLimit),
		requestRateLimiter: newFriendRequestRateLimiter(redisClient),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", logging.Fields{"error": err.Error()})
		}
		close(done)
	}()

	logger.Info("Server listening", logging.Fields{"addr": addr})
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}

// resolveAuthRateLimit relaxes the login limit during development unless
// AUTH_RATE_LIMIT is set explicitly.
func resolveAuthRateLimit(cfg *config.Config, logger *logging.Logger) int64 {
	limit := cfg.Auth.RateLimit
	if cfg.Auth.RateLimitSet {
		return limit
	}
	if cfg.Server.Environment == "development" {
		limit = 100
		logger.Info("Using development auth rate limit", logging.Fields{"limit": limit})
	}
	return limit
}
