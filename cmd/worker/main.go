// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	redis_a "github.com/storelens/storelens-be/internal/adapters/redis_adapter"
	"github.com/storelens/storelens-be/internal/adapters/storage"
	"github.com/storelens/storelens-be/internal/adapters/upstream"
	"github.com/storelens/storelens-be/internal/core/analytics"
	"github.com/storelens/storelens-be/internal/core/services"
	"github.com/storelens/storelens-be/internal/pkg/config"
	"github.com/storelens/storelens-be/internal/pkg/logger"
	"github.com/storelens/storelens-be/internal/workers"
)

func main() {
	// Setup logger
	slogger := logger.SetupLogger("info", "json")

	// Load configuration
	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	// Resolve the upstream API token before building the client
	if err := cfg.ResolveUpstreamToken(ctx, slogger.Logger); err != nil {
		slogger.Error("failed to resolve upstream token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize upstream client and report service
	upstreamClient := upstream.NewClient(upstream.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		TokenType: cfg.Upstream.TokenType,
		Token:     cfg.Upstream.Token,
		Timeout:   cfg.Upstream.Timeout,
		PageSize:  cfg.Upstream.PageSize,
		MaxPages:  cfg.Upstream.MaxPages,
	}, slogger.Logger)

	reportService := services.NewReportService(upstreamClient, analytics.Config{
		FallbackReorderPoint: cfg.Analytics.FallbackReorderPoint,
		MaxAlerts:            cfg.Analytics.MaxAlerts,
		CategoryTopN:         cfg.Analytics.CategoryTopN,
		RevenueTopN:          cfg.Analytics.RevenueTopN,
		TrendWindowDays:      cfg.Analytics.TrendWindowDays,
		UnknownCategoryLabel: cfg.Analytics.UnknownCategoryLabel,
		InboundMarkers:       cfg.Analytics.InboundMarkers,
		OutboundMarkers:      cfg.Analytics.OutboundMarkers,
		PaidStatuses:         cfg.Analytics.PaidStatuses,
	}, slogger.Logger)

	// Initialize Redis cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slogger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger.Logger)

	// Initialize export storage
	exportStore, err := storage.NewExportStore(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, slogger.Logger)
	if err != nil {
		slogger.Error("failed to initialize export storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	// Create Asynq server
	srv := asynq.NewServer(
		asynqRedisOpt,
		asynq.Config{
			Concurrency:     cfg.Asynq.Concurrency,
			Queues:          cfg.Asynq.Queues,
			StrictPriority:  cfg.Asynq.StrictPriority,
			ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
			RetryDelayFunc:  exponentialBackoff,
			ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc: healthCheck,
			Logger:          newAsynqLogger(slogger.Logger),
		},
	)

	// Create task handlers
	mux := asynq.NewServeMux()

	// Register report handlers
	reportProcessor := workers.NewReportProcessor(reportService, cache, exportStore, cfg, slogger.Logger)
	mux.HandleFunc(workers.TypeReportRefresh, reportProcessor.RefreshSnapshot)
	mux.HandleFunc(workers.TypeReportExport, reportProcessor.ExportReport)

	// Register cleanup handlers
	cleanupProcessor := workers.NewCleanupProcessor(exportStore, cfg, slogger.Logger)
	mux.HandleFunc(workers.TypeCleanupExports, cleanupProcessor.CleanupExports)
	mux.HandleFunc(workers.TypeCleanupTempFiles, cleanupProcessor.CleanupTempFiles)

	// Create scheduler for periodic tasks
	scheduler, err := setupScheduler(cfg, asynqRedisOpt, slogger.Logger)
	if err != nil {
		slogger.Error("failed to set up scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle shutdown gracefully
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	if err := scheduler.Start(); err != nil {
		slogger.Error("failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	// Wait for shutdown signal
	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Gracefully shutdown
	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// setupScheduler registers the periodic refresh and cleanup tasks.
// The refresh interval drives how stale the dashboard snapshot can
// get before a recompute; cleanup runs daily off-peak.
func setupScheduler(cfg *config.Config, redisOpt asynq.RedisClientOpt, slogger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: newAsynqLogger(slogger),
	})

	refreshSpec := fmt.Sprintf("@every %s", cfg.Analytics.RefreshInterval)
	if _, err := scheduler.Register(refreshSpec,
		asynq.NewTask(workers.TypeReportRefresh, nil),
		asynq.Queue("default")); err != nil {
		return nil, fmt.Errorf("failed to register refresh task: %w", err)
	}

	if _, err := scheduler.Register("0 3 * * *",
		asynq.NewTask(workers.TypeCleanupExports, nil),
		asynq.Queue("low")); err != nil {
		return nil, fmt.Errorf("failed to register export cleanup task: %w", err)
	}

	if _, err := scheduler.Register("30 3 * * *",
		asynq.NewTask(workers.TypeCleanupTempFiles, nil),
		asynq.Queue("low")); err != nil {
		return nil, fmt.Errorf("failed to register temp cleanup task: %w", err)
	}

	return scheduler, nil
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
