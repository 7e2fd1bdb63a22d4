package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/config"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/infrastructure"
	custommw "github.com/grx1242064203-bit/net-worth-analysis-tool/internal/middleware"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/services"
	handlers "github.com/grx1242064203-bit/net-worth-analysis-tool/internal/transport/http"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts"
)

const AppName = "NAV Analysis Service"

// Application wires configuration, services and the HTTP server together.
type Application struct {
	Config   *config.Config
	Router   *chi.Mux
	Server   *http.Server
	Logger   *slog.Logger
	Metrics  *infrastructure.Metrics
	Products *services.ProductService
	Analysis *services.AnalysisService
}

// NewApplication creates a fully wired application instance.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: infrastructure.NewMetrics(),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeServices() {
	a.Products = services.NewProductServiceWithLogger(a.Metrics, a.Logger)
	a.Analysis = services.NewAnalysisServiceWithLogger(a.Products, a.Metrics, a.Logger)
}

// setupRouter configures the HTTP router with middleware and all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Metrics(a.Metrics))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Route("/api", func(r chi.Router) {
		productHandler := handlers.NewProductHandler(
			a.Products, a.Logger, a.Config.Upload.MaxBytes, a.Config.Upload.MaxProducts)
		r.Mount("/products", productHandler.Routes())

		analysisHandler := handlers.NewAnalysisHandler(a.Analysis, a.Metrics, a.Logger)
		r.Mount("/", analysisHandler.Routes())
	})

	r.Mount("/healthz", handlers.NewHealthHandler().Routes())
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

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

// Start launches the HTTP server. It returns immediately; server errors
// cancel the supplied context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting http server",
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "error closing log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
