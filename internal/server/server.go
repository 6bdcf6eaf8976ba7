package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/team-matches-service/internal/config"
	"github.com/preston-bernstein/team-matches-service/internal/coordinator"
	"github.com/preston-bernstein/team-matches-service/internal/history"
	httpserver "github.com/preston-bernstein/team-matches-service/internal/http"
	"github.com/preston-bernstein/team-matches-service/internal/http/handlers"
	"github.com/preston-bernstein/team-matches-service/internal/http/middleware"
	"github.com/preston-bernstein/team-matches-service/internal/http/stream"
	"github.com/preston-bernstein/team-matches-service/internal/logging"
	"github.com/preston-bernstein/team-matches-service/internal/metrics"
	"github.com/preston-bernstein/team-matches-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *history.Store
	coordinator   Coordinator
	hub           *stream.Hub
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	unsubscribe   func()
}

// New wires the configured source, history backend and HTTP surface.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	backend, err := buildHistoryBackend(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("history backend %s: %w", cfg.History.Backend, err)
	}
	store := history.NewStore(backend)
	loadHistory(store, logger)

	loc := timeutil.ResolveLocation(cfg.Source.Timezone)
	coord := coordinator.New(coordinator.Config{
		ScheduleURL:      cfg.Source.ScheduleURL(),
		Source:           cfg.Source.Name,
		ScanInterval:     cfg.Refresh.ScanInterval,
		LiveScanInterval: cfg.Refresh.LiveScanInterval,
		StoreDays:        cfg.Refresh.StoreDays,
		MatchDetails:     cfg.Refresh.MatchDetails,
	}, buildFetcher(cfg.Source, loc, logger), buildParser(cfg.Source, loc), store, logger, recorder)

	s := newServerWithDeps(cfg, logger, recorder, coord, nil)
	s.store = store
	s.metricsServer = metricsSrv
	s.metricsStop = metricsShutdown
	return s, nil
}

// newServerWithDeps is used for testing to inject custom components.
// A nil httpSrv builds the real HTTP server around coord.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, coord Coordinator, httpSrv httpServer) *Server {
	hub := stream.NewHub(coord, cfg.Source.TeamName, logger, recorder)
	if httpSrv == nil {
		httpSrv = buildHTTPServer(cfg, coord, hub, logger, recorder)
	}
	return &Server{
		cfg:         cfg,
		logger:      logger,
		metrics:     recorder,
		coordinator: coord,
		hub:         hub,
		httpServer:  httpSrv,
		unsubscribe: coord.Subscribe(hub.Broadcast),
	}
}

func buildHTTPServer(cfg config.Config, coord Coordinator, hub *stream.Hub, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(coord, cfg.Source.TeamName, logger)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(coord, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin, hub)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newAPIServer(cfg.Port, wrapped)
}

// Run starts the coordinator and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.coordinator.Start(ctx)

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

	if err := s.coordinator.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop coordinator", err)
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	// Hijacked websocket connections are not tracked by http.Server.
	s.hub.Close()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	s.closeHistory(shutdownCtx)
	logging.Info(s.logger, "shutdown complete")
}

// closeHistory flushes anything a failed persist left behind and releases the backend.
func (s *Server) closeHistory(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Persist(ctx); err != nil {
		logging.Warn(s.logger, "final history flush failed", "error", err, logging.FieldBackend, s.store.BackendName())
	}
	if err := s.store.Close(); err != nil {
		logging.Warn(s.logger, "history close failed", "error", err, logging.FieldBackend, s.store.BackendName())
	}
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
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newMetricsServer(recCfg.Port, handler)
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
