// cmd/api/main.go
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

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	redis_a "github.com/storelens/storelens-be/internal/adapters/redis_adapter"
	"github.com/storelens/storelens-be/internal/adapters/upstream"
	"github.com/storelens/storelens-be/internal/core/analytics"
	"github.com/storelens/storelens-be/internal/core/services"
	"github.com/storelens/storelens-be/internal/handlers"
	"github.com/storelens/storelens-be/internal/handlers/middleware"
	"github.com/storelens/storelens-be/internal/pkg/config"
	"github.com/storelens/storelens-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	// Initialize structured logger
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting storelens analytics service",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	// Load configuration
	slogger.Info("loading configuration")
	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	// Create application context
	ctx := context.Background()

	// Initialize dependencies
	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	// Setup HTTP server
	server := setupHTTPServer(cfg, deps, slogger)

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
		)
		serverErrors <- server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		// Gracefully shutdown HTTP server
		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		// Stop Asynq client
		if deps.asynqClient != nil {
			if err := deps.asynqClient.Close(); err != nil {
				slogger.Error("failed to close Asynq client", slog.String("error", err.Error()))
			}
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	upstreamClient   *upstream.Client
	redisClient      *redis.Client
	redisCache       *redis_a.Cache
	asynqClient      *asynq.Client
	asynqInspector   *asynq.Inspector
	reportService    *services.ReportService
	dashboardHandler *handlers.DashboardHandler
	inventoryHandler *handlers.InventoryHandler
	exportHandler    *handlers.ExportHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *logger.Logger) (*dependencies, error) {
	deps := &dependencies{}

	// Resolve the upstream API token before anything needs it
	if err := cfg.ResolveUpstreamToken(ctx, slogger.Logger); err != nil {
		return nil, fmt.Errorf("failed to resolve upstream token: %w", err)
	}

	// Initialize upstream API client
	slogger.Info("initializing upstream client",
		slog.String("base_url", cfg.Upstream.BaseURL),
	)

	deps.upstreamClient = upstream.NewClient(upstream.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		TokenType: cfg.Upstream.TokenType,
		Token:     cfg.Upstream.Token,
		Timeout:   cfg.Upstream.Timeout,
		PageSize:  cfg.Upstream.PageSize,
		MaxPages:  cfg.Upstream.MaxPages,
	}, slogger.Logger)

	// Initialize Redis client
	slogger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisOpts := &redis.Options{
		Addr:            cfg.RedisAddr(),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
	}

	redisClient := redis.NewClient(redisOpts)

	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient

	// Create Redis cache wrapper
	deps.redisCache = redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger.Logger)

	// Initialize Asynq client
	slogger.Info("initializing Asynq client")

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	deps.asynqClient = asynqClient

	asynqInspector := asynq.NewInspector(asynqRedisOpt)
	deps.asynqInspector = asynqInspector

	// Initialize services
	deps.reportService = services.NewReportService(deps.upstreamClient, buildAnalyticsConfig(cfg), slogger.Logger)

	// Initialize handlers
	deps.dashboardHandler = handlers.NewDashboardHandler(deps.reportService, deps.redisCache, cfg.Analytics.SnapshotTTL, slogger.Logger)
	deps.inventoryHandler = handlers.NewInventoryHandler(deps.reportService, deps.redisCache, cfg.Analytics.SnapshotTTL, slogger.Logger)
	deps.exportHandler = handlers.NewExportHandler(
		deps.reportService,
		deps.redisCache,
		asynqClient,
		cfg.Analytics.SnapshotTTL,
		cfg.Export.JobStatusTTL,
		slogger.Logger,
	)
	deps.healthHandler = handlers.NewHealthHandler(
		deps.upstreamClient,
		redisClient,
		asynqInspector,
		cfg,
		slogger.Logger,
	)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

func buildAnalyticsConfig(cfg *config.Config) analytics.Config {
	return analytics.Config{
		FallbackReorderPoint: cfg.Analytics.FallbackReorderPoint,
		MaxAlerts:            cfg.Analytics.MaxAlerts,
		CategoryTopN:         cfg.Analytics.CategoryTopN,
		RevenueTopN:          cfg.Analytics.RevenueTopN,
		TrendWindowDays:      cfg.Analytics.TrendWindowDays,
		UnknownCategoryLabel: cfg.Analytics.UnknownCategoryLabel,
		InboundMarkers:       cfg.Analytics.InboundMarkers,
		OutboundMarkers:      cfg.Analytics.OutboundMarkers,
		PaidStatuses:         cfg.Analytics.PaidStatuses,
	}
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *logger.Logger) *http.Server {
	// Create new ServeMux using Go 1.22+ features
	mux := http.NewServeMux()

	// Setup middleware chain
	var handler http.Handler = mux

	// Apply middleware in reverse order (innermost first)
	if cfg.App.Environment != "test" {
		handler = middleware.RequestID(cfg.Security.RequestIDHeader)(handler)
		handler = middleware.Logger(slogger)(handler)
		handler = middleware.Recovery(slogger.Logger)(handler)
	}

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	// Register routes using Go 1.22 method-specific routing
	registerRoutes(mux, deps, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}

	return server
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	apiV1 := "/api/v1"

	// Health and readiness endpoints
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	mux.HandleFunc("GET "+apiV1+"/health", deps.healthHandler.Health)

	// Dashboard endpoints
	mux.HandleFunc("GET "+apiV1+"/dashboard", deps.dashboardHandler.GetDashboard)
	mux.HandleFunc("GET "+apiV1+"/dashboard/trend", deps.dashboardHandler.GetTrend)
	mux.HandleFunc("GET "+apiV1+"/dashboard/revenue", deps.dashboardHandler.GetRevenue)

	// Inventory analytics endpoints
	mux.HandleFunc("GET "+apiV1+"/inventory/alerts", deps.inventoryHandler.GetAlerts)
	mux.HandleFunc("GET "+apiV1+"/inventory/status", deps.inventoryHandler.GetStatus)

	// Export endpoints
	mux.HandleFunc("GET "+apiV1+"/export/excel", deps.exportHandler.ExportExcel)
	mux.HandleFunc("POST "+apiV1+"/export/async", deps.exportHandler.ExportAsync)
	mux.HandleFunc("GET "+apiV1+"/export/status/{jobId}", deps.exportHandler.ExportStatus)

	// pprof endpoints (development only)
	if cfg.Server.EnablePprof && cfg.IsDevelopment() {
		mux.HandleFunc("GET /debug/pprof/", http.HandlerFunc(http.DefaultServeMux.ServeHTTP))
	}
}
