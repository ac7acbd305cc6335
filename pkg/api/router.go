package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/sovdgw/internal/gateway"
	"github.com/marmos91/sovdgw/internal/logger"
	"github.com/marmos91/sovdgw/internal/translator"
	"github.com/marmos91/sovdgw/internal/uds/pool"
	"github.com/marmos91/sovdgw/pkg/api/handlers"
	apiMiddleware "github.com/marmos91/sovdgw/pkg/api/middleware"
	"github.com/marmos91/sovdgw/pkg/auth"
	"github.com/marmos91/sovdgw/pkg/config"
	"github.com/marmos91/sovdgw/pkg/metrics"
)

// NewRouter creates and configures the chi router with all middleware
// and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET  /health                                     - Liveness probe
//   - GET  /health/ready                                - Readiness probe
//   - GET  /health/pool                                 - Session pool status
//   - GET  /api/v1/components                           - List components
//   - GET  /api/v1/components/{id}/data                 - List data items
//   - GET  /api/v1/components/{id}/data/{data_id}       - Read a data item
//   - POST /api/v1/components/{id}/actuators/control    - Control an actuator
//   - POST /api/v1/components/{id}/dtcs                 - Manage DTCs
//   - POST /api/v1/components/{id}/services             - Execute a diagnostic service
//
// When cfg.APIAuth.Enabled is true, every /api/v1 route requires a
// valid bearer service token; mutating routes additionally require the
// "diagnostics:write" scope.
func NewRouter(p *pool.Pool, catalogue *translator.Catalogue, security gateway.SecurityPolicy, authCfg config.APIAuthConfig, jwtService *auth.Service, metricsReg *metrics.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(metricsMiddleware(metricsReg))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	gw := gateway.New(p, catalogue, security)

	if metricsReg != nil {
		r.Handle("/metrics", metricsReg.Handler())
	}

	healthHandler := handlers.NewHealthHandler(p, catalogue)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
		r.Get("/pool", healthHandler.Pool)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	componentHandler := handlers.NewComponentHandler(gw)
	dataHandler := handlers.NewDataHandler(gw)
	actuatorHandler := handlers.NewActuatorHandler(gw)
	dtcHandler := handlers.NewDTCHandler(gw)
	serviceHandler := handlers.NewServiceHandler(gw)

	writeScope := "diagnostics:write"

	r.Route("/api/v1", func(r chi.Router) {
		if authCfg.Enabled && jwtService != nil {
			r.Use(apiMiddleware.JWTAuth(jwtService))
		}

		r.Route("/components", func(r chi.Router) {
			r.Get("/", componentHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/data", dataHandler.List)
				r.Get("/data/{data_id}", dataHandler.GetValue)

				r.Group(func(r chi.Router) {
					if authCfg.Enabled && jwtService != nil {
						r.Use(apiMiddleware.RequireScope(writeScope))
					}
					r.Post("/actuators/control", actuatorHandler.Control)
					r.Post("/dtcs", dtcHandler.Manage)
					r.Post("/services", serviceHandler.Execute)
				})
			})
		})
	})

	return r
}

// metricsMiddleware records each request's route, method, and status
// into the metrics registry. It is a no-op when metricsReg is nil.
func metricsMiddleware(metricsReg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if metricsReg == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			metricsReg.RecordHTTPRequest(route, r.Method, fmt.Sprintf("%d", ww.Status()), time.Since(start))
		})
	}
}

// requestLogger is a custom middleware that logs requests using the
// internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logger.Info("API request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		)
	})
}
