// Package app wires the application together: configuration, logging,
// the session store, services, HTTP router and server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"mediapulse/internal/config"
	apierrors "mediapulse/internal/errors"
	"mediapulse/internal/infrastructure"
	"mediapulse/internal/metrics"
	custommw "mediapulse/internal/middleware"
	"mediapulse/internal/services"
	"mediapulse/internal/session"
	handlers "mediapulse/internal/transport/http"
	ws "mediapulse/internal/websocket"
)

// Version is the application version reported by the health endpoint.
const Version = "1.0.0"

// Application is the dependency container for the dashboard server.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Router    *chi.Mux
	Server    *http.Server
	Store     *session.Store
	Hub       *ws.Hub
	Metrics   *metrics.Metrics
	Dashboard *services.DashboardService
}

// NewApplication creates a fully wired application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Store:   session.NewStore(),
		Hub:     ws.NewHub(logger),
		Metrics: metrics.New(),
	}
	app.Dashboard = services.NewDashboardService(app.Store, logger)

	app.setupRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(a.observeRequests)

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	uploadLimiter := custommw.NewRateLimiter(
		a.Config.Upload.RateRPS,
		a.Config.Upload.RateBurst,
		a.Logger,
	)
	dashboard := handlers.NewDashboardHandler(
		a.Dashboard,
		a.Hub,
		a.Metrics,
		a.Logger,
		errorHandler,
		a.Config.Upload.MaxBytes,
		uploadLimiter.Handler,
	)
	health := handlers.NewHealthHandler(a.Store, Version)

	r.Mount("/api/dashboard", dashboard.Routes())
	r.Get("/healthz", health.ServeHTTP)
	r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())
	r.Get("/ws", ws.ServeWS(a.Hub, a.Logger))

	a.Router = r
}

// observeRequests records per-route request latency. Runs inside the
// chi routing context so the route pattern is resolved by the time the
// handler returns.
func (a *Application) observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		a.Metrics.ObserveRequest(route, r.Method, time.Since(start))
	})
}

// Run starts the websocket hub and the HTTP server, and blocks until a
// shutdown signal arrives or the server fails. Shutdown drains in-
// flight requests within the configured timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.Hub.Run()
	defer a.Hub.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down",
			slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.Logger.Info("shutdown complete", slog.Time("at", time.Now().UTC()))
	return nil
}
