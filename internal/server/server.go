// Package server provides the main server initialization and run logic.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventum-io/eventum/internal/api"
	"github.com/eventum-io/eventum/internal/api/handlers"
	"github.com/eventum-io/eventum/internal/audit"
	"github.com/eventum-io/eventum/internal/config"
	"github.com/eventum-io/eventum/internal/db"
	"github.com/eventum-io/eventum/internal/logger"
	"github.com/eventum-io/eventum/internal/queue"
)

// newAuditQueue picks the queue backend from configuration.
func newAuditQueue(cfg config.QueueConfig) (queue.Queue, error) {
	switch cfg.Driver {
	case "valkey":
		return queue.NewValkeyQueue(cfg.Address)
	case "", "memory":
		return queue.NewMemoryQueue(cfg.Buffer), nil
	default:
		return nil, fmt.Errorf("unsupported queue driver: %s", cfg.Driver)
	}
}

// Config holds the server start options.
type Config struct {
	Port    int    // Port to run the server on (0 = use config default)
	Mode    string // Gin mode override: development or production
	Version string // Version string to report
}

// Run starts the server with the given configuration and blocks until the
// context is canceled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Version != "" {
		handlers.Version = cfg.Version
	}

	// Load configuration
	appCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// CLI flag overrides
	if cfg.Port != 0 {
		appCfg.Server.Port = cfg.Port
	}
	if cfg.Mode != "" {
		appCfg.Server.Mode = cfg.Mode
	}

	// Initialize logger
	logger.Init(appCfg.Log.Format, appCfg.Log.Level)
	slog.Info("Starting Eventum server", "version", cfg.Version, "mode", appCfg.Server.Mode)

	// Initialize database
	database, err := db.New(appCfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Database initialized", "driver", appCfg.Database.Driver)

	// Run migrations
	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database migrations completed")

	// Create default admin user if configured
	if err := db.CreateDefaultAdmin(database); err != nil {
		return fmt.Errorf("failed to create default admin user: %w", err)
	}

	// Audit pipeline: handlers enqueue, the writer drains into the database
	auditQueue, err := newAuditQueue(appCfg.Queue)
	if err != nil {
		return fmt.Errorf("failed to initialize audit queue: %w", err)
	}
	defer auditQueue.Close()

	writer := audit.NewWriter(database, auditQueue)
	writerCtx, stopWriter := context.WithCancel(context.Background())
	defer stopWriter()
	go func() {
		if err := writer.Start(writerCtx); err != nil && err != context.Canceled {
			slog.Error("Audit writer failed", "error", err)
		}
	}()

	router := api.NewRouter(appCfg, database, audit.NewRecorder(auditQueue))

	addr := fmt.Sprintf(":%d", appCfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("Server stopped")

	return nil
}

// RunWithSignalHandling starts the server and handles OS signals for
// graceful shutdown.
func RunWithSignalHandling(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, cfg)
	}()

	select {
	case sig := <-quit:
		slog.Info("Received signal", "signal", sig)
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}
