package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/marmos91/sovdgw/internal/gateway"
	"github.com/marmos91/sovdgw/internal/logger"
	"github.com/marmos91/sovdgw/internal/translator"
	"github.com/marmos91/sovdgw/internal/uds/pool"
	"github.com/marmos91/sovdgw/internal/uds/session"
	"github.com/marmos91/sovdgw/internal/uds/transport"
	"github.com/marmos91/sovdgw/pkg/auth"
	"github.com/marmos91/sovdgw/pkg/config"
	"github.com/marmos91/sovdgw/pkg/metrics"
)

// Server provides the REST API HTTP server for the diagnostics gateway.
//
// It owns the ECU session pool for the lifetime of the process: Start
// serves requests that acquire pooled sessions on demand, and Stop
// disconnects every pooled session after the HTTP listener closes.
//
// The server supports graceful shutdown; when Start's context is
// cancelled, shutdown is bounded by a fixed 5-second timeout.
type Server struct {
	server       *http.Server
	pool         *pool.Pool
	config       config.ServerConfig
	shutdownOnce sync.Once
}

// NewServer creates a new API HTTP server bound to a NativeClient
// transport collaborator and the gateway's component/DID/actuator
// catalogue.
//
// The server is created in a stopped state. Call Start to begin
// serving requests.
func NewServer(cfg *config.Config, client transport.NativeClient, jwtService *auth.Service) *Server {
	catalogue := translator.New(cfg.Components)

	var metricsReg *metrics.Registry
	if cfg.Metrics.Enabled {
		metricsReg = metrics.New()
	}

	policy := session.Policy{
		Timeout:    cfg.UDS.Timeout,
		MaxRetries: cfg.UDS.MaxRetries,
	}
	p := pool.New(client, cfg.UDS.Interface, policy, cfg.Performance.ConnectionPoolSize, metricsReg)

	security := gateway.SecurityPolicy{
		Require: cfg.Security.RequireSecurityAccess,
		Level:   cfg.Security.SecurityLevel,
	}

	router := NewRouter(p, catalogue, security, cfg.Security.APIAuth, jwtService, metricsReg)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		server: httpServer,
		pool:   p,
		config: cfg.Server,
	}
}

// Start starts the API HTTP server and blocks until the context is
// cancelled or an error occurs.
//
// When the context is cancelled, Start initiates graceful shutdown and
// returns nil. On server startup failure, it returns a wrapped error.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "addr", s.server.Addr)
		logger.Debug("API endpoints available",
			"health", fmt.Sprintf("http://%s/health", s.server.Addr),
			"components", fmt.Sprintf("http://%s/api/v1/components", s.server.Addr),
		)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("API server shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("API server failed: %w", err)
	}
}

// Stop initiates graceful shutdown of the API server and disconnects
// every pooled ECU session.
//
// Stop is safe to call multiple times and safe to call concurrently
// with Start.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		logger.Debug("API server shutdown initiated")

		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("API server shutdown error: %w", err)
			logger.Error("API server shutdown error", "error", err)
		} else {
			logger.Info("API server stopped gracefully")
		}

		s.pool.CloseAll(ctx)
	})
	return shutdownErr
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() string {
	return s.server.Addr
}
