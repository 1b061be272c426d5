package server

import (
	"log/slog"

	"github.com/preston-bernstein/nfl-scores-service/internal/config"
	"github.com/preston-bernstein/nfl-scores-service/internal/metrics"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
)

// providerFactory assembles the upstream client with the shared wrappers.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

// wrap throttles each attempt when ESPN_MIN_INTERVAL is set and retries transient failures.
func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider) providers.DataProvider {
	name := normalizeProviderName(cfg.Provider, base)
	inner := base
	if cfg.ESPN.MinInterval > 0 {
		inner = providers.NewRateLimitedProvider(inner, cfg.ESPN.MinInterval, f.logger)
	}
	return providers.NewRetryingProvider(inner, f.logger, f.metrics, name, cfg.ESPN.RetryAttempts, cfg.ESPN.RetryDelay)
}

// NewProvider builds the configured upstream client with retry and optional throttling.
func NewProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.DataProvider {
	return newProviderFactory(logger, recorder).build(cfg)
}
