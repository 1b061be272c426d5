package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nfl-scores-service/internal/app/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/app/news"
	"github.com/preston-bernstein/nfl-scores-service/internal/app/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/app/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/app/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/archive"
	"github.com/preston-bernstein/nfl-scores-service/internal/config"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	httpserver "github.com/preston-bernstein/nfl-scores-service/internal/http"
	"github.com/preston-bernstein/nfl-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/nfl-scores-service/internal/ingest"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
	"github.com/preston-bernstein/nfl-scores-service/internal/metrics"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	newsprovider "github.com/preston-bernstein/nfl-scores-service/internal/providers/news"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	httpServer    httpServer
	metricsServer httpServer
	runner        Runner
	archive       *archive.Store
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider and optional standings sync.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}
	logging.Info(logger, "provider selected", slog.String(logging.FieldProvider, normalizeProviderName(cfg.Provider, provider)))

	storage := buildStorage(cfg, logger)
	ingestRunner := buildRunner(cfg, provider, storage, logger, recorder)

	var loop Runner
	if cfg.Standings.Sync() {
		loop = ingestRunner
	}
	httpSrv := buildHTTPServer(cfg, provider, storage, ingestRunner, loop, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		runner:        loop,
		archive:       storage.archive,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, runner Runner) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		runner:     runner,
	}
}

func buildRunner(cfg config.Config, provider providers.DataProvider, storage storageComponents, logger *slog.Logger, recorder *metrics.Recorder) *ingest.Runner {
	var arch ingest.Archiver
	if storage.archive != nil {
		arch = storage.archive
	}
	return ingest.New(provider, storage.writer, arch, ingest.Options{
		Interval:    cfg.Standings.SyncInterval,
		ArchiveKeep: cfg.Standings.ArchiveKeep,
		Logger:      logger,
		Recorder:    recorder,
	})
}

func buildServices(cfg config.Config, provider providers.DataProvider, storage storageComponents, logger *slog.Logger, recorder *metrics.Recorder) handlers.Services {
	nav := season.NewNavigator(cfg.Season.PostseasonWeeks)
	gamesSvc := games.NewService(provider, games.Options{
		TTL:       cfg.Cache.GamesTTL,
		Navigator: nav,
		Logger:    logger,
		Recorder:  recorder,
	})
	standingsSvc := standings.NewService(storage.store, provider, standings.Options{
		TTL:      cfg.Cache.LiveStandingsTTL,
		Logger:   logger,
		Recorder: recorder,
	})
	playoffsSvc := playoffs.NewService(provider, gamesSvc, standingsSvc, playoffs.Options{
		TTL:             cfg.Cache.LiveStandingsTTL,
		PostseasonWeeks: cfg.Season.PostseasonWeeks,
		Deriver:         standingsSvc.Deriver(),
		Logger:          logger,
		Recorder:        recorder,
	})
	teamsSvc := teams.NewService(provider, teams.Options{
		TTL:      cfg.Cache.TeamsTTL,
		Logger:   logger,
		Recorder: recorder,
	})
	feed := newsprovider.NewClient(newsprovider.Config{
		FeedURL: cfg.News.FeedURL,
		Timeout: cfg.ESPN.Timeout,
	})
	newsSvc := news.NewService(feed, news.Options{
		TTL:      cfg.Cache.NewsTTL,
		Logger:   logger,
		Recorder: recorder,
	})
	return handlers.Services{
		Games:     gamesSvc,
		Teams:     teamsSvc,
		Standings: standingsSvc,
		Playoffs:  playoffsSvc,
		News:      newsSvc,
	}
}

func buildHTTPServer(cfg config.Config, provider providers.DataProvider, storage storageComponents, refresher handlers.Refresher, loop Runner, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() ingest.Status
	if loop != nil {
		statusFn = loop.Status
	}

	handler := handlers.NewHandler(buildServices(cfg, provider, storage, logger, recorder), logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(refresher, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin, logger, recorder, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the servers and the optional ingestion loop, then waits for
// context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.runner != nil {
		logging.Info(s.logger, "standings sync enabled", slog.Duration("interval", s.cfg.Standings.SyncInterval))
		s.runner.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.runner != nil {
		if err := s.runner.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop standings sync", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.archive.Close(); err != nil {
		logging.Warn(s.logger, "archive close failed", "error", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.On(),
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.Insecure(),
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}
	if rec == nil {
		rec = metrics.NewRecorder()
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
