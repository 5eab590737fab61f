package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/kudipay/payledger/internal/notifications"
	"github.com/kudipay/payledger/internal/platform/config"
	"github.com/kudipay/payledger/pkg/database"
)

// The worker consumes posting notifications enqueued by the API process.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error("REDIS_ADDR is required for the worker")
		os.Exit(1)
	}

	// Fail fast when Redis is unreachable instead of letting asynq retry
	// silently at startup.
	redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	_ = redisClient.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
		},
	)

	mux := asynq.NewServeMux()
	notifications.RegisterHandlers(mux, logger)

	if err := srv.Start(mux); err != nil {
		logger.Error("Failed to start worker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Worker started", slog.Int("concurrency", cfg.WorkerConcurrency))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	srv.Shutdown()
	logger.Info("Worker stopped.")
}
