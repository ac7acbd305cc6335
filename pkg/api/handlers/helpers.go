package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/marmos91/sovdgw/pkg/api/httperr"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (a 400 problem
// response has already been written).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httperr.BadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// formatAddress renders a UDS ECU address in its conventional hex form.
func formatAddress(address uint32) string {
	return fmt.Sprintf("0x%X", address)
}
