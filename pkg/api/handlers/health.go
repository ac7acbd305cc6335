package handlers

import (
	"net/http"
	"time"

	"github.com/marmos91/sovdgw/internal/translator"
	"github.com/marmos91/sovdgw/internal/uds/pool"
	"github.com/marmos91/sovdgw/pkg/api/httperr"
)

// HealthCheckTimeout bounds how long the readiness probe waits on
// anything that could block (currently nothing does; kept for parity
// with liveness/readiness conventions elsewhere in this codebase).
const HealthCheckTimeout = 5 * time.Second

// HealthHandler serves the gateway's liveness/readiness/pool status
// endpoints. These are unauthenticated.
type HealthHandler struct {
	pool      *pool.Pool
	catalogue *translator.Catalogue
}

// NewHealthHandler creates a health handler bound to the live ECU
// session pool and component catalogue.
func NewHealthHandler(p *pool.Pool, catalogue *translator.Catalogue) *HealthHandler {
	return &HealthHandler{pool: p, catalogue: catalogue}
}

// Liveness handles GET /health - simple liveness probe. Always returns
// 200 OK as long as the HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	httperr.WriteJSONOK(w, map[string]string{
		"status":  "healthy",
		"service": "sovdgw",
	})
}

// Readiness handles GET /health/ready - readiness probe. Returns 503
// if no components are configured, since the gateway cannot serve any
// diagnostic request in that state.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	componentIDs := h.catalogue.ComponentIDs()
	if len(componentIDs) == 0 {
		httperr.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unhealthy",
			"reason": "no components configured",
		})
		return
	}

	httperr.WriteJSONOK(w, map[string]any{
		"status":     "healthy",
		"components": len(componentIDs),
	})
}

// componentPoolStatus describes one configured component's live session
// state.
type componentPoolStatus struct {
	ComponentID string `json:"component_id"`
	Address     string `json:"address"`
	Connected   bool   `json:"connected"`
}

// poolResponse is the detailed session pool status response.
type poolResponse struct {
	Size       int                    `json:"size"`
	Components []componentPoolStatus  `json:"components"`
}

// Pool handles GET /health/pool - per-component session connectivity
// and current pool occupancy.
func (h *HealthHandler) Pool(w http.ResponseWriter, r *http.Request) {
	resp := poolResponse{
		Size:       h.pool.Size(),
		Components: make([]componentPoolStatus, 0, len(h.catalogue.ComponentIDs())),
	}

	for _, id := range h.catalogue.ComponentIDs() {
		addr, err := h.catalogue.ComponentAddress(id)
		if err != nil {
			continue
		}
		resp.Components = append(resp.Components, componentPoolStatus{
			ComponentID: id,
			Address:     formatAddress(addr),
			Connected:   h.pool.Connected(addr),
		})
	}

	httperr.WriteJSONOK(w, resp)
}
