package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phambaophuc/image-resizer/internal/config"
	"github.com/phambaophuc/image-resizer/internal/http/handlers"
	"github.com/phambaophuc/image-resizer/internal/http/routes"
	"github.com/phambaophuc/image-resizer/internal/services/dispatcher"
	"github.com/phambaophuc/image-resizer/internal/services/processor"
	"github.com/phambaophuc/image-resizer/internal/services/queue"
	"github.com/phambaophuc/image-resizer/internal/services/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize services
	rescaler, err := processor.NewRescaler(cfg.Image.Resampler)
	if err != nil {
		logger.Fatal("Failed to initialize rescaler", zap.Error(err))
	}
	source, err := processor.NewSource(cfg.Image.MaxFileSize, cfg.Storage.Root)
	if err != nil {
		logger.Fatal("Failed to initialize image source", zap.Error(err))
	}
	imageProcessor := processor.NewImageProcessor(source, rescaler, cfg.Image.MaxOutputPixels)

	sink, err := storage.NewSink(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage sink", zap.Error(err))
	}

	imageDispatcher := dispatcher.NewDispatcher(imageProcessor, sink, cfg.Image, logger)

	ctx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	var jobQueue handlers.JobQueue
	queueService, err := queue.NewQueueService(
		cfg.RabbitMQ,
		imageDispatcher,
		queue.NewRedisJobStore(redisClient, cfg.Storage.JobTTL),
		logger,
	)
	if err != nil {
		logger.Warn("Failed to initialize queue service", zap.Error(err))
		// Continue without queue service for synchronous requests
	} else {
		defer queueService.Close()
		if err := queueService.StartWorkers(ctx, cfg.RabbitMQ.Workers); err != nil {
			logger.Fatal("Failed to start workers", zap.Error(err))
		}
		jobQueue = queueService
	}

	// Initialize handlers
	imageHandler := handlers.NewImageHandler(imageDispatcher, jobQueue, sink, logger)

	router := routes.NewRouter(imageHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.String("storage", sink.Name()),
			zap.String("resampler", cfg.Image.Resampler))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
