package runtime

import (
	"context"
	"fmt"

	"github.com/architeacher/svc-admin-monitor/internal/adapters"
	"github.com/architeacher/svc-admin-monitor/internal/adapters/probes"
	"github.com/architeacher/svc-admin-monitor/internal/adapters/repos"
	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/ports"
	"github.com/architeacher/svc-admin-monitor/internal/service"
	"github.com/architeacher/svc-admin-monitor/internal/shared/backoff"
	"github.com/architeacher/svc-admin-monitor/internal/usecases"
	"github.com/hashicorp/vault/api"
	"go.opentelemetry.io/otel"
)

type (
	DependencyOption func(*Dependencies) error
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithSecretStorage(),
		WithSecretStorageRepo(),
		WithConfigLoader(ctx),
		WithStorage(),
		WithCache(ctx),
		WithBroker(ctx),
		WithMetrics(ctx),
		WithTracing(ctx),
		WithMonitoring(),
	}
}

// WithSecretStorage initializes the Vault client using ENV config.
func WithSecretStorage() DependencyOption {
	return func(d *Dependencies) error {
		cfg := d.cfg.SecretStorage

		vaultConfig := api.DefaultConfig()
		vaultConfig.Address = cfg.Address
		vaultConfig.Timeout = cfg.Timeout

		if cfg.TLSSkipVerify {
			tlsConfig := &api.TLSConfig{
				Insecure: true,
			}
			if err := vaultConfig.ConfigureTLS(tlsConfig); err != nil {
				return fmt.Errorf("failed to configure TLS: %w", err)
			}
		}

		client, err := api.NewClient(vaultConfig)
		if err != nil {
			return fmt.Errorf("failed to create Vault client: %w", err)
		}

		// Skip namespace configuration for dev mode vault
		if cfg.Namespace != "" {
			client.SetNamespace(cfg.Namespace)
		}

		d.Infra.SecretStorageClient = client

		return nil
	}
}

func WithSecretStorageRepo() DependencyOption {
	return func(d *Dependencies) error {
		d.Repos.SecretStorageRepo = repos.NewVaultRepository(d.Infra.SecretStorageClient)

		return nil
	}
}

func WithConfigLoader(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		d.configLoader = config.NewLoader(d.cfg, d.Repos.SecretStorageRepo, d.secretVersion)

		if !d.cfg.SecretStorage.Enabled {
			d.logger.Info().Msg("secret storage is disabled, skipping vault configuration loading")

			return nil
		}

		version, err := d.configLoader.Load(ctx, d.Repos.SecretStorageRepo, d.cfg)
		if err != nil {
			return fmt.Errorf("unable to load service configuration: %w", err)
		}

		d.secretVersion = version

		return nil
	}
}

func WithStorage() DependencyOption {
	return func(d *Dependencies) error {
		storage, err := infrastructure.NewStorage(d.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}

		// Connectivity failures are tolerated here; the database probe
		// reports them as unhealthy instead of blocking startup.
		if _, err := storage.GetDB(); err != nil {
			d.logger.Error().Err(err).Msg("database is unreachable at startup, probes will report it")
		}

		d.Infra.StorageClient = storage

		return nil
	}
}

func WithCache(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		if !d.cfg.Cache.Configured() {
			d.logger.Info().Msg("cache is not configured, its probe will report unknown")
			d.Infra.CacheClient = nil

			return nil
		}

		cacheClient := infrastructure.NewKeyDBClient(d.cfg.Cache, d.logger)

		cacheCtx, cancel := context.WithTimeout(ctx, d.cfg.Cache.DialTimeout)
		defer cancel()

		if err := cacheClient.Ping(cacheCtx); err != nil {
			d.logger.Error().Err(err).Msg("cache is unreachable at startup, probes will report it")
		}

		d.Infra.CacheClient = cacheClient

		return nil
	}
}

func WithBroker(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		brokerClient := infrastructure.NewBrokerClient(
			d.cfg.Queue,
			backoff.NewExponentialStrategy(d.cfg.Backoff),
			d.logger,
		)

		if err := brokerClient.Connect(ctx); err != nil {
			d.logger.Error().Err(err).Msg("broker is unreachable at startup, probes will report it")
		}

		d.Infra.BrokerClient = brokerClient

		return nil
	}
}

func WithMetrics(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		metrics, err := infrastructure.NewMetrics(ctx, *d.cfg, d.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize metrics: %w", err)
		}

		d.Infra.Metrics = metrics

		return nil
	}
}

func WithTracing(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		if !d.cfg.Telemetry.Traces.Enabled {
			d.tracerShutdownFunc = func(_ context.Context) error {
				return nil
			}

			return nil
		}

		tracerShutdownFunc, err := infrastructure.InitGlobalTracer(ctx, d.cfg.Telemetry, d.cfg.AppConfig)
		if err != nil {
			d.logger.Error().Err(err).Msg("failed to initialize global tracer")

			return err
		}

		d.tracerShutdownFunc = tracerShutdownFunc

		return nil
	}
}

// WithMonitoring wires the probes, the sample window and the monitoring
// service together.
func WithMonitoring() DependencyOption {
	return func(d *Dependencies) error {
		serviceProbe := probes.NewServiceProbe(d.cfg.Monitor, d.logger, d.Infra.Metrics)

		depProbes := []ports.DependencyProber{
			probes.NewDatabaseProbe(d.Infra.StorageClient, d.logger, d.Infra.Metrics),
			probes.NewBrokerProbe(d.cfg.Queue, d.cfg.Monitor, d.Infra.BrokerClient, d.logger, d.Infra.Metrics),
			probes.NewCacheProbe(d.cfg.Cache, d.Infra.CacheClient, d.logger, d.Infra.Metrics),
			probes.NewStorageProbe(d.cfg.Volume, d.logger, d.Infra.Metrics),
		}

		d.Monitoring.Aggregator = adapters.NewFanOutHealthAggregator(
			d.cfg.Monitor,
			serviceProbe,
			depProbes,
			d.logger,
			d.Infra.Metrics,
		)

		d.Monitoring.SampleStore = adapters.NewInMemoryMetricsStore(d.cfg.Monitor.SampleCapacity)
		d.Monitoring.Resources = adapters.NewSystemResourceCollector(d.cfg.Volume)
		d.Monitoring.DBStats = probes.NewDatabaseStatsCollector(d.cfg.Storage, d.Infra.StorageClient, d.logger)
		d.Monitoring.BrokerStats = adapters.NewBrokerQueueStatsCollector(d.cfg.Queue, d.Infra.BrokerClient)

		d.Monitoring.Service = service.NewMonitoringService(
			d.cfg,
			d.Monitoring.Aggregator,
			d.Monitoring.SampleStore,
			d.Monitoring.Resources,
			d.Monitoring.DBStats,
			d.Monitoring.BrokerStats,
			d.logger,
			d.Infra.Metrics,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *Dependencies) error {
		d.Apps.Web = usecases.NewWebApplication(
			d.Monitoring.Service,
			d.logger,
			otel.GetTracerProvider(),
			adapters.NewMetricsAdapter(d.Infra.Metrics),
		)

		requestHandler := adapters.NewRequestHandler(d.Apps.Web, d.cfg.AppConfig, d.logger)

		httpServer, err := initHTTPServer(d.cfg, d.logger, d.Infra.Metrics, d.Monitoring.SampleStore, requestHandler)
		if err != nil {
			return err
		}

		d.Infra.HTTPServer = httpServer

		return nil
	}
}
