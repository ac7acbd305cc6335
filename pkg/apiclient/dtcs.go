package apiclient

import (
	"fmt"
	"net/url"
)

// DTCRecord is a single diagnostic trouble code as reported by the
// gateway's "read" action.
type DTCRecord struct {
	Code        string `json:"code"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// DTCManagementResult is the gateway's response to a DTC management
// request. Results is interpreted according to Action: "read" carries
// a "dtcs" key with a []DTCRecord-shaped value, "freeze_frame" carries
// a "freeze_frame_data" key with a hex string.
type DTCManagementResult struct {
	Action    string         `json:"action"`
	Status    string         `json:"status"`
	Results   map[string]any `json:"results,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// ManageDTCs calls POST /api/v1/components/{id}/dtcs with the given
// action ("read", "clear", or "freeze_frame") and the list of codes.
// The gateway reads only the first code, for "freeze_frame"; "clear"
// always clears every DTC.
func (c *Client) ManageDTCs(componentID, action string, codes []string) (*DTCManagementResult, error) {
	path := fmt.Sprintf("/api/v1/components/%s/dtcs", url.PathEscape(componentID))

	body := struct {
		Action string   `json:"action"`
		DTCs   []string `json:"dtcs,omitempty"`
	}{Action: action, DTCs: codes}

	var result DTCManagementResult
	if err := c.post(path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
