package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/navkit/navd/internal/api/http"
	"github.com/navkit/navd/internal/api/middleware"
	"github.com/navkit/navd/internal/api/ws"
	"github.com/navkit/navd/internal/domain/manifest"
	"github.com/navkit/navd/internal/domain/registry"
	"github.com/navkit/navd/internal/domain/rendezvous"
	"github.com/navkit/navd/internal/domain/stack"
	"github.com/navkit/navd/internal/infrastructure/config"
	"github.com/navkit/navd/internal/infrastructure/logging"
	"github.com/navkit/navd/internal/infrastructure/monitoring"
	"github.com/navkit/navd/internal/shared/types"
)

// Server wraps the HTTP server and the navigation controller it exposes
type Server struct {
	httpServer *http.Server
	stack      *stack.Manager
	rendezvous *rendezvous.Manager
	registry   *registry.Manager
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// New creates a fully wired server instance
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else if l, err := logging.New(logging.Config{Level: cfg.Logging.Level}); err == nil {
		logger = l
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing navd",
		zap.String("port", cfg.Server.Port),
		zap.String("root", cfg.Nav.RootKind),
	)

	metrics := monitoring.NewMetrics()

	// Optional page manifest: root page and view titles
	var mf *manifest.Manifest
	if cfg.Nav.ManifestPath != "" {
		parsed, err := manifest.ParseFile(cfg.Nav.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load page manifest: %w", err)
		}
		mf = parsed
		logger.Info("loaded page manifest", zap.String("path", cfg.Nav.ManifestPath))
	}

	root, err := rootPage(cfg, mf)
	if err != nil {
		return nil, err
	}

	// One controller instance; everything that navigates gets a reference
	stackMgr := stack.NewManager(root).WithLogger(logger).WithMetrics(metrics)
	rz := rendezvous.NewManager(stackMgr).WithLogger(logger).WithMetrics(metrics)

	reg := registry.NewManager()
	if err := registry.NewSeeder(reg, mf).Seed(); err != nil {
		return nil, fmt.Errorf("failed to seed renderers: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(stackMgr, rz, reg)
	wsHandler := ws.NewHandler(stackMgr, rz, reg, logger).WithMetrics(metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Stack queries and mutations
	router.GET("/stack", handlers.GetStack)
	router.GET("/stack/views", handlers.GetViews)
	router.GET("/stack/stats", handlers.GetStats)
	router.POST("/stack/push", handlers.Push)
	router.POST("/stack/pop", handlers.Pop)
	router.POST("/stack/replace", handlers.Replace)
	router.POST("/stack/reset", handlers.Reset)

	// Rendezvous
	router.POST("/rendezvous/return", handlers.Return)

	// Snapshot stream
	router.GET("/stream", wsHandler.HandleConnection)

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server initialized")

	return &Server{
		httpServer: httpServer,
		stack:      stackMgr,
		rendezvous: rz,
		registry:   reg,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
	}, nil
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("shutting down server")

	// Give a pending rendezvous a defined outcome before the process exits
	if s.rendezvous.Cancel() {
		s.logger.Info("canceled pending rendezvous waiter")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.logger.Sync()
	return err
}

// rootPage resolves the root page from the manifest or NAV_ROOT
func rootPage(cfg *config.Config, mf *manifest.Manifest) (types.Page, error) {
	if mf != nil {
		return mf.RootPage(), nil
	}
	switch types.Kind(cfg.Nav.RootKind) {
	case types.KindHome:
		return types.Home(), nil
	case types.KindLogin:
		return types.Login(), nil
	default:
		return types.Page{}, fmt.Errorf("NAV_ROOT %q must be home or login", cfg.Nav.RootKind)
	}
}
