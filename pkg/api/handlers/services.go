package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/sovdgw/internal/gateway"
	"github.com/marmos91/sovdgw/pkg/api/httperr"
)

// ServiceHandler serves the generic diagnostic service dispatch
// endpoint.
type ServiceHandler struct {
	gw *gateway.Gateway
}

// NewServiceHandler creates a service handler bound to the gateway
// facade.
func NewServiceHandler(gw *gateway.Gateway) *ServiceHandler {
	return &ServiceHandler{gw: gw}
}

type serviceRequest struct {
	ServiceType string         `json:"service_type"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type serviceResponse struct {
	ServiceType string         `json:"service_type"`
	Status      string         `json:"status"`
	Results     map[string]any `json:"results,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Execute handles POST /api/v1/components/{id}/services.
func (h *ServiceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	componentID := chi.URLParam(r, "id")

	var req serviceRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	result, err := h.gw.ExecuteService(r.Context(), componentID, req.ServiceType, req.Parameters)
	if err != nil {
		httperr.HandleError(w, err)
		return
	}

	httperr.WriteJSONOK(w, serviceResponse{
		ServiceType: result.ServiceType,
		Status:      "success",
		Results:     result.Results,
		Timestamp:   time.Now().UTC(),
	})
}
