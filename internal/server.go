package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/setsbymuscle/internal/config"
	"github.com/2beens/setsbymuscle/internal/gymstats/backup"
	"github.com/2beens/setsbymuscle/internal/gymstats/handler"
	"github.com/2beens/setsbymuscle/internal/middleware"
	"github.com/2beens/setsbymuscle/internal/telemetry/metrics"
	"github.com/2beens/setsbymuscle/internal/telemetry/tracing"
	"github.com/2beens/setsbymuscle/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config          *config.Config
	engine          *Engine
	backupScheduler *backup.Scheduler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	// the registry needs the metrics manager before the engine exists, while the
	// pool collector needs the engine's db pool, so the collector is registered late
	promRegistry := metrics.NewRegistry("setsbymuscle")
	metricsManager := metrics.NewManager("setsbymuscle", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	engine, err := NewEngine(ctx, EngineParams{
		Config:           cfg,
		RedisPassword:    params.RedisPassword,
		PostgresPassword: params.PostgresPassword,
		TracingEnabled:   params.HoneycombTracingEnabled,
		Metrics:          metricsManager,
	})
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	if engine.DBPool != nil {
		promRegistry.MustRegister(pgxpoolprometheus.NewCollector(
			engine.DBPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "setsbymuscle", engine.RedisClient)
	if err != nil {
		_ = engine.Close()
		return nil, err
	}

	s := &Server{
		config:      cfg,
		engine:      engine,
		versionInfo: params.VersionInfo,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.BackupCron != "" {
		s.backupScheduler, err = backup.NewScheduler(backup.SchedulerParams{
			Exporter: engine.Backup,
			Dir:      cfg.BackupDir,
			Schedule: cfg.BackupCron,
			Keep:     cfg.BackupKeep,
			Metrics:  metricsManager,
		})
		if err != nil {
			otelShutdown()
			_ = engine.Close()
			return nil, fmt.Errorf("backup scheduler: %w", err)
		}
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("setsbymuscle-router"))

	var writeMiddlewares []mux.MiddlewareFunc
	if s.engine.RedisClient != nil && s.config.RateLimitPerMinute > 0 {
		writeMiddlewares = append(writeMiddlewares, middleware.RateLimit(
			redis_rate.NewLimiter(s.engine.RedisClient),
			"setsbymuscle-writes",
			s.config.RateLimitPerMinute,
			s.metricsManager,
		))
	}

	gymHandler := handler.New(handler.Params{
		Catalog:  s.engine.Catalog,
		Ledger:   s.engine.Ledger,
		Analyzer: s.engine.Analyzer,
		Settings: s.engine.Settings,
		Backup:   s.engine.Backup,
	})
	gymHandler.RegisterRoutes(r, writeMiddlewares...)

	r.HandleFunc("/version", s.handleVersion).Methods("GET", "OPTIONS").Name("version")

	if s.config.MCPEnabled {
		mcpServer := s.engine.MCPServer()
		mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return mcpServer
		}, nil)
		r.PathPrefix("/mcp").Handler(mcpHandler).Name("mcp")
		log.Debugln("MCP server mounted at /mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins...))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	version := s.versionInfo
	if version == "" {
		version = "unknown"
	}
	pkg.WriteTextResponseOK(w, version)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.backupScheduler != nil {
		s.backupScheduler.Start()
		log.Infof("backups scheduled [%s] into [%s]", s.config.BackupCron, s.config.BackupDir)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.backupScheduler != nil {
		s.backupScheduler.Stop(ctx)
		log.Debugln("backup scheduler stopped")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if err := s.engine.Close(); err != nil {
		log.Errorf("failed to close engine: %s", err)
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
