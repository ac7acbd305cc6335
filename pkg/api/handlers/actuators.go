package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/sovdgw/internal/gateway"
	"github.com/marmos91/sovdgw/pkg/api/httperr"
)

// ActuatorHandler serves the actuator control endpoint.
type ActuatorHandler struct {
	gw *gateway.Gateway
}

// NewActuatorHandler creates an actuator handler bound to the gateway
// facade.
func NewActuatorHandler(gw *gateway.Gateway) *ActuatorHandler {
	return &ActuatorHandler{gw: gw}
}

type actuatorControlRequest struct {
	ActuatorID string `json:"actuator_id"`
	Action     string `json:"action"`
	Value      any    `json:"value,omitempty"`
	Duration   *int   `json:"duration,omitempty"`
}

type actuatorControlResponse struct {
	ActuatorID string    `json:"actuator_id"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	Value      any       `json:"value,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Control handles POST /api/v1/components/{id}/actuators/control.
func (h *ActuatorHandler) Control(w http.ResponseWriter, r *http.Request) {
	componentID := chi.URLParam(r, "id")

	var req actuatorControlRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	result, err := h.gw.ControlActuator(r.Context(), componentID, req.ActuatorID, req.Action, req.Value)
	if err != nil {
		httperr.HandleError(w, err)
		return
	}

	httperr.WriteJSONOK(w, actuatorControlResponse{
		ActuatorID: result.ActuatorID,
		Action:     result.Action,
		Status:     "success",
		Value:      result.Value,
		Timestamp:  time.Now().UTC(),
	})
}
