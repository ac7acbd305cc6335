package handlers

import (
	"net/http"

	"github.com/marmos91/sovdgw/internal/gateway"
	"github.com/marmos91/sovdgw/pkg/api/httperr"
)

// ComponentHandler serves the component listing endpoint.
type ComponentHandler struct {
	gw *gateway.Gateway
}

// NewComponentHandler creates a component handler bound to the gateway
// facade.
func NewComponentHandler(gw *gateway.Gateway) *ComponentHandler {
	return &ComponentHandler{gw: gw}
}

type componentDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type componentsResponse struct {
	Components []componentDTO `json:"components"`
}

// List handles GET /api/v1/components.
func (h *ComponentHandler) List(w http.ResponseWriter, r *http.Request) {
	components := h.gw.ListComponents()
	dto := make([]componentDTO, 0, len(components))
	for _, c := range components {
		dto = append(dto, componentDTO{ID: c.ID, Name: c.Name, Description: c.Description})
	}

	httperr.WriteJSONOK(w, componentsResponse{Components: dto})
}
