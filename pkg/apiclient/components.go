package apiclient

import (
	"fmt"
	"net/url"
	"strings"
)

// Component describes a diagnosable ECU as listed by the gateway.
type Component struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type componentsResponse struct {
	Components []Component `json:"components"`
}

// ListComponents calls GET /api/v1/components.
func (c *Client) ListComponents() ([]Component, error) {
	var resp componentsResponse
	if err := c.get("/api/v1/components", &resp); err != nil {
		return nil, err
	}
	return resp.Components, nil
}

// DataItem describes an identification/measurement data item exposed
// by a component.
type DataItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	DataType    string `json:"data_type,omitempty"`
	Description string `json:"description,omitempty"`
}

type dataItemsResponse struct {
	Items []DataItem `json:"items"`
}

// ListDataItems calls GET /api/v1/components/{id}/data, optionally
// filtered by category.
func (c *Client) ListDataItems(componentID string, categories []string) ([]DataItem, error) {
	path := fmt.Sprintf("/api/v1/components/%s/data", url.PathEscape(componentID))
	if len(categories) > 0 {
		path += "?categories=" + url.QueryEscape(strings.Join(categories, ","))
	}

	var resp dataItemsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// DataItemValue is a single data item reading.
type DataItemValue struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
	Quality   string `json:"quality"`
}

// GetDataItem calls GET /api/v1/components/{id}/data/{data_id}.
func (c *Client) GetDataItem(componentID, dataID string) (*DataItemValue, error) {
	path := fmt.Sprintf("/api/v1/components/%s/data/%s", url.PathEscape(componentID), url.PathEscape(dataID))

	var value DataItemValue
	if err := c.get(path, &value); err != nil {
		return nil, err
	}
	return &value, nil
}
