// file: internal/gateway/app.go

package gateway

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pjkundert/hp-admin-crypto/config"
	"github.com/pjkundert/hp-admin-crypto/internal/keystore"
	"github.com/pjkundert/hp-admin-crypto/internal/logger"
	"github.com/pjkundert/hp-admin-crypto/internal/metrics"
	"github.com/pjkundert/hp-admin-crypto/internal/verify"
)

// App represents the hpos-admin-auth application with all its components
type App struct {
	config           *config.Config
	logger           *logger.Logger
	metrics          *metrics.Metrics
	metricsServer    *http.Server
	metricsCollector *metrics.MetricsCollector
	keys             *keystore.KeyStore
	server           *Server
}

// NewApp creates a new application instance. The admin key loads before the
// listener exists; if the state file is missing or corrupt the process never
// starts serving.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
	}

	// Initialize components in dependency order
	if err := app.setupLogger(); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	if err := app.setupMetrics(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics: %w", err)
	}

	if err := app.setupKeyStore(); err != nil {
		return nil, fmt.Errorf("failed to setup keystore: %w", err)
	}

	app.setupServer()

	return app, nil
}

// Run starts the application and waits for shutdown signal
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app.logger.Info("starting hpos-admin-auth",
		"address", app.config.Server.Address,
		"statePath", app.config.State.Path,
		"metricsEnabled", app.config.Metrics.Enabled)

	if err := app.server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start verification server: %w", err)
	}

	// Wait for shutdown signal
	<-ctx.Done()
	app.logger.Info("shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownGracePeriod)
	defer shutdownCancel()

	if err := app.server.Stop(shutdownCtx); err != nil {
		app.logger.Error("failed to stop verification server", "error", err)
	}

	app.logger.Info("shutdown complete")
	return nil
}

// Close gracefully shuts down all application components
func (app *App) Close() error {
	app.logger.Info("closing application components")

	var errors []error

	if app.metricsCollector != nil {
		app.metricsCollector.Stop()
	}

	if app.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.metricsServer.Shutdown(shutdownCtx); err != nil {
			errors = append(errors, fmt.Errorf("failed to shutdown metrics server: %w", err))
		}
	}

	if app.logger != nil {
		if err := app.logger.Sync(); err != nil {
			app.logger.Debug("logger sync completed", "error", err)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("cleanup errors: %v", errors)
	}

	return nil
}

// setupLogger initializes the logger
func (app *App) setupLogger() error {
	var err error
	app.logger, err = logger.NewLogger(&app.config.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// setupMetrics initializes metrics collection
func (app *App) setupMetrics() error {
	if !app.config.Metrics.Enabled {
		app.logger.Info("metrics disabled")
		return nil
	}

	reg := prometheus.NewRegistry()
	var err error
	app.metrics, err = metrics.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to create metrics service: %w", err)
	}

	app.metricsCollector = metrics.NewMetricsCollector(app.metrics, app.config.Metrics.UpdateInterval)
	app.metricsCollector.Start()

	if err := app.setupMetricsServer(reg); err != nil {
		return fmt.Errorf("failed to setup metrics server: %w", err)
	}

	app.logger.Info("metrics initialized successfully",
		"address", app.config.Metrics.Address,
		"path", app.config.Metrics.Path,
		"updateInterval", app.config.Metrics.UpdateInterval)

	return nil
}

// setupMetricsServer creates the Prometheus metrics HTTP server. It listens
// on its own port so the verification surface stays exactly one path.
func (app *App) setupMetricsServer(reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle(app.config.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry:          reg,
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	app.metricsServer = &http.Server{
		Addr:    app.config.Metrics.Address,
		Handler: mux,
	}

	go func() {
		app.logger.Info("starting metrics server",
			"address", app.config.Metrics.Address,
			"path", app.config.Metrics.Path)
		if err := app.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}

// setupKeyStore loads the admin public key from the state document
func (app *App) setupKeyStore() error {
	app.logger.Info("loading admin public key", "statePath", app.config.State.Path)

	keys, err := keystore.Load(app.config.State.Path)
	if err != nil {
		return err
	}
	app.keys = keys

	app.logger.Info("admin public key loaded")
	return nil
}

// setupServer wires the verification handler and HTTP server
func (app *App) setupServer() {
	handler := NewHandler(
		app.logger,
		app.metrics,
		verify.NewVerifier(app.keys.PublicKey()),
		app.config.Server.MaxBodyBytes,
	)

	app.server = NewServer(app.logger, handler, &app.config.Server)
}
