package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

// GracefulServer wraps Echo server with graceful shutdown capabilities
type GracefulServer struct {
	echo            *echo.Echo
	logger          *logger.ZapLogger
	addr            string
	shutdownTimeout time.Duration
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, cfg models.ServerConfig) *GracefulServer {
	if cfg.ReadTimeout > 0 {
		e.Server.ReadTimeout = time.Duration(cfg.ReadTimeout) * time.Second
	}
	if cfg.WriteTimeout > 0 {
		e.Server.WriteTimeout = time.Duration(cfg.WriteTimeout) * time.Second
	}
	shutdownTimeout := 30 * time.Second
	if cfg.ShutdownTimeout > 0 {
		shutdownTimeout = time.Duration(cfg.ShutdownTimeout) * time.Second
	}

	return &GracefulServer{
		echo:            e,
		logger:          zapLogger,
		addr:            fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		shutdownTimeout: shutdownTimeout,
	}
}

// Start serves until SIGINT/SIGTERM or until ctx is canceled, then shuts down
func (s *GracefulServer) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", s.addr))
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("Received shutdown signal")
	}

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server
func (s *GracefulServer) Shutdown() error {
	s.logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
		return err
	}

	s.logger.Info("Server shutdown completed")
	return nil
}

// ShutdownManager runs cleanup functions in reverse registration order
type ShutdownManager struct {
	logger    *logger.ZapLogger
	functions []namedCleanup
}

type namedCleanup struct {
	name string
	fn   func(context.Context) error
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(zapLogger *logger.ZapLogger) *ShutdownManager {
	return &ShutdownManager{logger: zapLogger}
}

// Register adds a cleanup function to be called during shutdown
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	sm.functions = append(sm.functions, namedCleanup{name: name, fn: fn})
}

// Shutdown executes all registered cleanup functions, continuing past failures
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.logger.Info("Starting graceful shutdown of components", logger.Int("components", len(sm.functions)))

	var errs []error
	for i := len(sm.functions) - 1; i >= 0; i-- {
		c := sm.functions[i]
		if err := c.fn(ctx); err != nil {
			sm.logger.Error("Error during component shutdown",
				logger.String("component", c.name),
				logger.Err(err))
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}

	sm.logger.Info("All components shutdown completed")
	return errors.Join(errs...)
}
