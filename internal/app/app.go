// Package app wires configuration, services, transport and background
// workers into one runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"orderpulse/internal/config"
	apierrors "orderpulse/internal/errors"
	"orderpulse/internal/dataset"
	"orderpulse/internal/exporter"
	"orderpulse/internal/infrastructure"
	customMiddleware "orderpulse/internal/middleware"
	"orderpulse/internal/services"
	handlers "orderpulse/internal/transport/http"
	ws "orderpulse/internal/websocket"
	"orderpulse/pkg/contracts"
)

const AppName = "OrderPulse - E-Commerce Orders Dashboard"

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Store         *dataset.Store
	WebSocketHub  *ws.Hub
	Dashboard     *services.DashboardService
	Health        *services.HealthService
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	ErrorHandler  *apierrors.ErrorHandler
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.GetVersionString()))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution()

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		ErrorHandler:  apierrors.NewErrorHandler(logger, false),
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the dataset store, hub and services
func (a *Application) initializeServices() error {
	a.WebSocketHub = ws.NewHub(a.Logger)

	dataFile := a.Config.GetDataFile()
	if !config.FileExists(dataFile) {
		// Fatal: the dashboard is meaningless without its source table.
		return fmt.Errorf("orders dataset not found at %s", dataFile)
	}

	a.Store = dataset.NewStore(dataset.NewLoader(dataFile, a.Logger), a.Logger)

	loadCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := a.Store.Load(loadCtx); err != nil {
		return fmt.Errorf("failed to load orders dataset: %w", err)
	}

	metrics, err := infrastructure.CreateDashboardMetrics(a.OTelProviders.Meter)
	if err != nil {
		a.Logger.Warn("Failed to create dashboard metrics",
			slog.String("error", err.Error()))
	}

	a.Dashboard = services.NewDashboardService(a.Store, metrics, a.WebSocketHub, a.Logger)
	a.Health = services.NewHealthService(
		contracts.Version,
		contracts.BuildTime,
		nil,
		a.Store,
		a.WebSocketHub,
		a.Logger,
	)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Minimal middleware that won't interfere with WebSocket upgrades
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// WebSocket route stays outside the full middleware group
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(a.WebSocketHub, w, req, a.Logger)
	})

	// Prometheus metrics endpoint, also outside the group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
		if err != nil {
			a.Logger.Error("Failed to create OpenTelemetry middleware",
				slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
		a.setupHTMLRoutes(r)
	})

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger, a.ErrorHandler)
	healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)
	exportHandler := handlers.NewExportHandler(a.Dashboard, exporter.NewExcelWriter(a.Logger), a.Logger, a.ErrorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Mount("/dataset", dashboardHandler.DatasetRoutes())
		r.Mount("/export", exportHandler.Routes())

		r.Route("/health", func(r chi.Router) {
			r.Get("/", healthHandler.HealthCheck)
			r.Get("/ready", healthHandler.ReadinessCheck)
			r.Get("/live", healthHandler.LivenessCheck)
		})
		r.Get("/version", healthHandler.Version)
	})
}

// setupHTMLRoutes configures the dashboard page and static assets
func (a *Application) setupHTMLRoutes(r chi.Router) {
	webDir := a.Config.GetWebDir()

	r.Get("/", handlers.ServeDashboardPage(webDir))

	r.Route("/static", func(r chi.Router) {
		r.Use(chimiddleware.Compress(5))
		staticDir := http.Dir(webDir + "/static")
		r.Handle("/*", http.StripPrefix("/static/", http.FileServer(staticDir)))
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the background hub and HTTP server
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.Int("dataset_rows", a.Store.RowCount()))

	a.WebSocketHub.Start()

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.WebSocketHub.Stop()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry",
				slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}

	a.Logger.Info("Application stopped")
	return nil
}

// Run starts the application and blocks until a shutdown signal
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		a.Logger.Info("Shutdown signal received")
	case <-ctx.Done():
		a.Logger.Info("Context cancelled, shutting down")
	}

	return a.Stop(context.Background())
}
