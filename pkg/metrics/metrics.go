// Package metrics provides Prometheus observability for the
// diagnostics gateway: UDS request outcomes by SID and negative
// response code, retry counts, session pool occupancy, and HTTP
// request latency.
//
// Collection is optional. Pass a nil *Registry anywhere a Registry is
// accepted and every Record/Observe method becomes a no-op, mirroring
// how the adapter layers in this codebase treat their metrics
// collaborators as optional.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns every Prometheus collector the gateway exposes.
type Registry struct {
	reg *prometheus.Registry

	udsRequests        *prometheus.CounterVec
	udsRequestDuration *prometheus.HistogramVec
	udsRetries         *prometheus.CounterVec
	poolSize           prometheus.Gauge
	poolEvictions      prometheus.Counter
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates a Registry with every collector registered against a
// fresh Prometheus registry.
func New() *Registry {
	reg := prometheus.NewRegistry()

	return &Registry{
		reg: reg,
		udsRequests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sovdgw_uds_requests_total",
				Help: "Total number of UDS requests by service id and outcome",
			},
			[]string{"sid", "outcome"}, // outcome: "positive", "negative", "transport_error"
		),
		udsRequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sovdgw_uds_request_duration_seconds",
				Help:    "Duration of a UDS request/response round trip, including retries",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"sid"},
		),
		udsRetries: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sovdgw_uds_retries_total",
				Help: "Total number of UDS request retries by reason",
			},
			[]string{"reason"}, // reason: "transport_error", "busy_repeat_request"
		),
		poolSize: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "sovdgw_session_pool_size",
				Help: "Current number of pooled ECU sessions",
			},
		),
		poolEvictions: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "sovdgw_session_pool_evictions_total",
				Help: "Total number of least-recently-used session pool evictions",
			},
		),
		httpRequests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sovdgw_http_requests_total",
				Help: "Total number of REST API requests by route, method, and status code",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sovdgw_http_request_duration_seconds",
				Help:    "Duration of a REST API request",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}
}

// Handler returns the HTTP handler that exposes the registry in the
// Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// RecordUDSRequest records one completed UDS request with its service
// id, outcome, and total duration (including any retries).
func (r *Registry) RecordUDSRequest(sid byte, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	sidLabel := sidLabel(sid)
	r.udsRequests.WithLabelValues(sidLabel, outcome).Inc()
	r.udsRequestDuration.WithLabelValues(sidLabel).Observe(duration.Seconds())
}

// RecordRetry records a single UDS request retry attempt.
func (r *Registry) RecordRetry(reason string) {
	if r == nil {
		return
	}
	r.udsRetries.WithLabelValues(reason).Inc()
}

// SetPoolSize updates the session pool occupancy gauge.
func (r *Registry) SetPoolSize(size int) {
	if r == nil {
		return
	}
	r.poolSize.Set(float64(size))
}

// RecordPoolEviction records one least-recently-used session eviction.
func (r *Registry) RecordPoolEviction() {
	if r == nil {
		return
	}
	r.poolEvictions.Inc()
}

// RecordHTTPRequest records one completed REST API request.
func (r *Registry) RecordHTTPRequest(route, method, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, status).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func sidLabel(sid byte) string {
	const hexDigits = "0123456789ABCDEF"
	return string([]byte{'0', 'x', hexDigits[sid>>4], hexDigits[sid&0x0F]})
}
