package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dental-center-management/config"
	deliveryHttp "dental-center-management/internal/delivery/http"
	"dental-center-management/internal/delivery/http/handler"
	"dental-center-management/internal/delivery/http/middleware"
	"dental-center-management/internal/infrastructure/storage"
	"dental-center-management/internal/policy"
	"dental-center-management/internal/store"
	"dental-center-management/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config  *config.Config
	Storage storage.Store
	Server  *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Open the persistence backend
	kv, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	app.Storage = kv
	logrus.Infof("Storage opened (driver: %s)", cfg.Storage.Driver)

	// Initialize stores: seed on first run, load persisted state
	log := logrus.StandardLogger()
	sessions := store.NewSessionStore(kv, log)
	entities := store.NewEntityStore(kv, log)

	ctx := context.Background()
	if err := sessions.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	if err := entities.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize entity store: %w", err)
	}

	// Initialize all layers
	server := initializeServer(cfg, sessions, entities)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, sessions *store.SessionStore, entities *store.EntityStore) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize access policy
	accessPolicy := policy.Policy{
		RestrictPatientRecords: cfg.Policy.RestrictPatientRecords,
	}

	// Initialize metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(sessions, customValidator)
	patientHandler := handler.NewPatientHandler(entities, accessPolicy, customValidator)
	incidentHandler := handler.NewIncidentHandler(entities, customValidator)
	dashboardHandler := handler.NewDashboardHandler(entities)

	// Initialize middleware
	policyMiddleware := middleware.NewPolicyMiddleware(sessions, accessPolicy)
	corsMiddleware := middleware.NewCORSMiddleware("")
	metricsMiddleware := middleware.NewMetricsMiddleware(registry)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		incidentHandler,
		dashboardHandler,
		policyMiddleware,
		corsMiddleware,
		metricsMiddleware,
		registry,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the persistence backend
func (app *App) Close() {
	if app.Storage != nil {
		if err := app.Storage.Close(); err != nil {
			logrus.Errorf("Failed to close storage: %v", err)
		}
	}
}
