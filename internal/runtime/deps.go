package runtime

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/architeacher/svc-admin-monitor/internal/adapters"
	"github.com/architeacher/svc-admin-monitor/internal/adapters/middleware"
	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/ports"
	"github.com/architeacher/svc-admin-monitor/internal/service"
	"github.com/architeacher/svc-admin-monitor/internal/usecases"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/vault/api"
)

type (
	Applications struct {
		Web *usecases.WebApplication
	}

	TracerShutdownFunc func(ctx context.Context) error

	InfrastructureDeps struct {
		HTTPServer          *http.Server
		SecretStorageClient *api.Client
		StorageClient       *infrastructure.Storage
		BrokerClient        *infrastructure.BrokerClient
		CacheClient         *infrastructure.KeydbClient
		Metrics             infrastructure.Metrics
	}

	// Monitoring holds the probe fan-out and the collectors behind the
	// monitoring API.
	Monitoring struct {
		Aggregator  ports.HealthAggregator
		SampleStore *adapters.InMemoryMetricsStore
		Resources   ports.ResourceCollector
		DBStats     ports.DatabaseStatsCollector
		BrokerStats ports.BrokerStatsCollector
		Service     service.MonitoringService
	}

	Repos struct {
		SecretStorageRepo ports.SecretsRepository
	}

	Dependencies struct {
		Apps Applications

		cfg          *config.ServiceConfig
		configLoader *config.Loader

		logger infrastructure.Logger

		Infra      InfrastructureDeps
		Monitoring Monitoring
		Repos      Repos

		tracerShutdownFunc TracerShutdownFunc
		secretVersion      uint
	}
)

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*Dependencies, error) {
	cfg, err := config.Init()
	if err != nil {
		return nil, fmt.Errorf("unable to load service configuration: %w", err)
	}

	appLogger := infrastructure.New(config.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	appLogger.Info().Msg("initializing dependencies...")

	deps := &Dependencies{
		cfg:    cfg,
		logger: appLogger,
	}

	// Start with default options and append any additional options.
	options := append(defaultOptions(ctx), opts...)

	for _, opt := range options {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	deps.logger.Info().Msg("dependencies initialized successfully")

	return deps, nil
}

func initHTTPServer(
	cfg *config.ServiceConfig,
	logger infrastructure.Logger,
	metrics infrastructure.Metrics,
	sampleStore ports.MetricsRecorder,
	reqHandler *adapters.RequestHandler,
) (*http.Server, error) {
	logger.Info().Msg("creating HTTP server...")

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(cfg.HTTPServer.WriteTimeout))
	router.Use(middleware.NewAPIVersionMiddleware(cfg.AppConfig.APIVersion).Middleware)

	// Request sampling always runs: the metrics report is built from the
	// sample window, independent of whether OTEL export is enabled.
	requestMetrics := middleware.NewRequestMetrics(
		cfg.AppConfig.ServiceName,
		cfg.Monitor.SlowRequestThreshold,
		sampleStore,
		metrics,
		logger,
	)
	router.Use(requestMetrics.Middleware)

	if cfg.Logging.AccessLog.Enabled {
		healthFilter := middleware.NewHealthCheckFilter(cfg.Logging.AccessLog.LogHealthChecks)
		accessLogger := middleware.NewAccessLogger(logger)

		router.Use(healthFilter.Middleware, accessLogger.Middleware)
		logger.Info().
			Bool("log_health_checks", cfg.Logging.AccessLog.LogHealthChecks).
			Msg("structured access logging enabled")
	}

	if cfg.ThrottledRateLimiting.Enabled {
		rateLimiter, err := middleware.NewRateLimiter(cfg.ThrottledRateLimiting, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
		}

		router.Use(rateLimiter.Middleware)
		logger.Info().Msg("rate limiting enabled")
	}

	reqHandler.Routes(router)

	// Prometheus scrape endpoint, excluded from sampling and access logs.
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTPServer.Host, fmt.Sprintf("%d", cfg.HTTPServer.Port)),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	logger.Info().Str("addr", server.Addr).Msg("HTTP server created")

	return server, nil
}
