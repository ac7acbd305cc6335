package apiclient

import (
	"fmt"
	"net/url"
)

// ServiceResult is the gateway's response to an executed diagnostic
// service.
type ServiceResult struct {
	ServiceType string         `json:"service_type"`
	Status      string         `json:"status"`
	Results     map[string]any `json:"results,omitempty"`
	Timestamp   string         `json:"timestamp"`
}

// ExecuteService calls POST /api/v1/components/{id}/services.
func (c *Client) ExecuteService(componentID, serviceType string, parameters map[string]any) (*ServiceResult, error) {
	path := fmt.Sprintf("/api/v1/components/%s/services", url.PathEscape(componentID))

	body := struct {
		ServiceType string         `json:"service_type"`
		Parameters  map[string]any `json:"parameters,omitempty"`
	}{ServiceType: serviceType, Parameters: parameters}

	var result ServiceResult
	if err := c.post(path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
