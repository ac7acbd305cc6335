package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/sovdgw/internal/gateway"
	"github.com/marmos91/sovdgw/pkg/api/httperr"
)

// DataHandler serves the component data item endpoints.
type DataHandler struct {
	gw *gateway.Gateway
}

// NewDataHandler creates a data handler bound to the gateway facade.
func NewDataHandler(gw *gateway.Gateway) *DataHandler {
	return &DataHandler{gw: gw}
}

type dataItemDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	DataType    string `json:"data_type,omitempty"`
	Description string `json:"description,omitempty"`
}

type dataItemsResponse struct {
	Items []dataItemDTO `json:"items"`
}

// List handles GET /api/v1/components/{id}/data?categories=a,b.
//
// The componentID path parameter is accepted but not otherwise
// validated here: the catalogue is shared across components, so an
// unknown component only surfaces an error once a value is actually
// read from it.
func (h *DataHandler) List(w http.ResponseWriter, r *http.Request) {
	var categories []string
	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			categories = append(categories, strings.TrimSpace(c))
		}
	}

	items := h.gw.ListDataItems(categories)
	dto := make([]dataItemDTO, 0, len(items))
	for _, item := range items {
		dto = append(dto, dataItemDTO{ID: item.ID, Name: item.Name, Category: item.Category, DataType: item.DataType})
	}

	httperr.WriteJSONOK(w, dataItemsResponse{Items: dto})
}

type dataItemValueDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
	Quality   string    `json:"quality"`
}

// GetValue handles GET /api/v1/components/{id}/data/{data_id}.
func (h *DataHandler) GetValue(w http.ResponseWriter, r *http.Request) {
	componentID := chi.URLParam(r, "id")
	dataID := chi.URLParam(r, "data_id")

	value, err := h.gw.ReadDataItem(r.Context(), componentID, dataID)
	if err != nil {
		httperr.HandleError(w, err)
		return
	}

	httperr.WriteJSONOK(w, dataItemValueDTO{
		ID:        value.ID,
		Name:      value.Name,
		Category:  value.Category,
		Data:      value.Data,
		Timestamp: time.Now().UTC(),
		Quality:   "good",
	})
}
