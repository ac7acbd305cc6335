package apiclient

import (
	"fmt"
	"net/url"
)

// ActuatorControlRequest parameterizes a POST
// /api/v1/components/{id}/actuators/control call.
type ActuatorControlRequest struct {
	ActuatorID string `json:"actuator_id"`
	Action     string `json:"action"`
	Value      any    `json:"value,omitempty"`
	Duration   *int   `json:"duration,omitempty"`
}

// ActuatorControlResult is the gateway's response to an actuator
// control request.
type ActuatorControlResult struct {
	ActuatorID string `json:"actuator_id"`
	Action     string `json:"action"`
	Status     string `json:"status"`
	Value      any    `json:"value,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// ControlActuator calls POST /api/v1/components/{id}/actuators/control.
func (c *Client) ControlActuator(componentID string, req ActuatorControlRequest) (*ActuatorControlResult, error) {
	path := fmt.Sprintf("/api/v1/components/%s/actuators/control", url.PathEscape(componentID))

	var result ActuatorControlResult
	if err := c.post(path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
