package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-league-service/internal/config"
	httpserver "github.com/preston-bernstein/nba-league-service/internal/http"
	"github.com/preston-bernstein/nba-league-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-league-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-league-service/internal/league"
	"github.com/preston-bernstein/nba-league-service/internal/logging"
	"github.com/preston-bernstein/nba-league-service/internal/metrics"
	"github.com/preston-bernstein/nba-league-service/internal/snapshots"
)

var metricsSetup = metrics.Setup

// Server owns the league and everything that serves or persists it.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	league        *league.League
	syncer        *snapshots.Syncer
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	closeStore    func() error
}

// New builds metrics, opens the snapshot backend, restores the league and wires HTTP.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		stopMetrics(metricsShutdown)
		return nil, err
	}
	l, err := loadLeague(ctx, cfg, store, logger, recorder)
	if err != nil {
		if closeStore != nil {
			_ = closeStore()
		}
		stopMetrics(metricsShutdown)
		return nil, err
	}

	syncer := snapshots.NewSyncer(l, store, snapshots.SyncConfig{
		Enabled:  cfg.Snapshots.Enabled() && store != nil,
		Interval: cfg.Snapshots.Interval,
	}, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		league:        l,
		syncer:        syncer,
		httpServer:    buildHTTPServer(cfg, l, syncer, store != nil, logger, recorder),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		closeStore:    closeStore,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, l *league.League, syncer *snapshots.Syncer, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		league:     l,
		syncer:     syncer,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, l *league.League, syncer *snapshots.Syncer, persistent bool, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(l, logger)

	// The admin save endpoint exists only with a token and a backend to save to.
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" && persistent {
		admin = handlers.NewAdminHandler(syncer, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP server and autosave, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if err := s.syncer.Start(context.WithoutCancel(ctx)); err != nil {
		logging.Error(s.logger, "snapshot autosave not started", err)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// League exposes the league the server owns.
func (s *Server) League() *league.League {
	return s.league
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
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
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops intake first so the final snapshot sees every accepted mutation.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.syncer.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "final snapshot failed", err)
	}

	if s.closeStore != nil {
		if err := s.closeStore(); err != nil {
			logging.Warn(s.logger, "snapshot backend close failed", logging.FieldError, err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              cfg.Metrics.Addr(),
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func stopMetrics(shutdown func(context.Context) error) {
	if shutdown != nil {
		_ = shutdown(context.Background())
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
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
