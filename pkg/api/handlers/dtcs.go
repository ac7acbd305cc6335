package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/sovdgw/internal/gateway"
	"github.com/marmos91/sovdgw/pkg/api/httperr"
)

// DTCHandler serves the diagnostic trouble code management endpoint.
type DTCHandler struct {
	gw *gateway.Gateway
}

// NewDTCHandler creates a DTC handler bound to the gateway facade.
func NewDTCHandler(gw *gateway.Gateway) *DTCHandler {
	return &DTCHandler{gw: gw}
}

type dtcManagementRequest struct {
	Action string   `json:"action"`
	DTCs   []string `json:"dtcs,omitempty"`
}

type dtcRecordDTO struct {
	Code        string `json:"code"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type dtcManagementResponse struct {
	Action    string         `json:"action"`
	Status    string         `json:"status"`
	Results   map[string]any `json:"results,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Manage handles POST /api/v1/components/{id}/dtcs.
func (h *DTCHandler) Manage(w http.ResponseWriter, r *http.Request) {
	componentID := chi.URLParam(r, "id")

	var req dtcManagementRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	result, err := h.gw.ManageDTCs(r.Context(), componentID, req.Action, req.DTCs)
	if err != nil {
		httperr.HandleError(w, err)
		return
	}

	resp := dtcManagementResponse{Action: result.Action, Status: "success", Timestamp: time.Now().UTC()}

	switch result.Action {
	case "read":
		records := make([]dtcRecordDTO, 0, len(result.DTCs))
		for _, dtc := range result.DTCs {
			records = append(records, dtcRecordDTO{
				Code:        dtc.Code,
				Status:      fmt.Sprintf("0x%02X", dtc.Status),
				Description: "Diagnostic trouble code",
			})
		}
		resp.Results = map[string]any{"dtcs": records}
	case "freeze_frame":
		resp.Results = map[string]any{"freeze_frame_data": result.FreezeFrameHex}
	}

	httperr.WriteJSONOK(w, resp)
}
