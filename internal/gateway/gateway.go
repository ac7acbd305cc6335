// Package gateway wires the session pool and translator catalogue
// together into the operations the REST handlers call: the same
// seam the original SOVD-to-UDS adapter exposes as its translator
// layer, generalised to also own session acquisition and the
// security-access gate.
package gateway

import (
	"context"
	"fmt"

	"github.com/marmos91/sovdgw/internal/translator"
	"github.com/marmos91/sovdgw/internal/uds"
	"github.com/marmos91/sovdgw/internal/uds/pool"
	"github.com/marmos91/sovdgw/internal/uds/session"
)

// KeyDeriver computes a security-access key from a seed. Production
// deployments inject an OEM-specific implementation; Default is a
// placeholder.
type KeyDeriver func(seed []byte) []byte

// Default XORs every seed byte with 0xAA. It exists only so the
// security-access handshake has something to call out of the box; it
// is not a real key derivation algorithm.
func Default(seed []byte) []byte {
	key := make([]byte, len(seed))
	for i, b := range seed {
		key[i] = b ^ 0xAA
	}
	return key
}

// SecurityPolicy controls when the write-access gate engages.
type SecurityPolicy struct {
	Require bool
	Level   byte
	Derive  KeyDeriver
}

// Gateway is the facade REST handlers call into: it resolves a SOVD
// component id to a pooled ECU session, then drives that session
// through the translator's catalogue.
type Gateway struct {
	Pool      *pool.Pool
	Catalogue *translator.Catalogue
	Security  SecurityPolicy
}

// New builds a Gateway over an already-constructed pool and catalogue.
func New(p *pool.Pool, catalogue *translator.Catalogue, security SecurityPolicy) *Gateway {
	if security.Derive == nil {
		security.Derive = Default
	}
	return &Gateway{Pool: p, Catalogue: catalogue, Security: security}
}

func (g *Gateway) session(ctx context.Context, componentID string) (*session.Session, error) {
	addr, err := g.Catalogue.ComponentAddress(componentID)
	if err != nil {
		return nil, err
	}
	return g.Pool.Acquire(ctx, componentID, addr)
}

func (g *Gateway) ensureWriteAccess(ctx context.Context, s *session.Session) error {
	if !g.Security.Require {
		return nil
	}
	return s.EnsureSecurityAccess(ctx, g.Security.Level, g.Security.Derive)
}

// Component describes one SOVD component for the component listing
// endpoint.
type Component struct {
	ID          string
	Name        string
	Description string
}

var componentCatalogue = map[string]Component{
	"engine":       {ID: "engine", Name: "Engine Control Unit", Description: "Main engine control unit"},
	"transmission": {ID: "transmission", Name: "Transmission Control Unit", Description: "Automatic transmission control"},
	"abs":          {ID: "abs", Name: "ABS Control Unit", Description: "Anti-lock braking system"},
	"airbag":       {ID: "airbag", Name: "Airbag Control Unit", Description: "Airbag and restraint system"},
}

// ListComponents returns every configured component with its display
// metadata, falling back to a bare id/name for components the static
// catalogue doesn't describe.
func (g *Gateway) ListComponents() []Component {
	ids := g.Catalogue.ComponentIDs()
	out := make([]Component, 0, len(ids))
	for _, id := range ids {
		if c, ok := componentCatalogue[id]; ok {
			out = append(out, c)
			continue
		}
		out = append(out, Component{ID: id, Name: id})
	}
	return out
}

// DataItemInfo describes one data item's catalogue entry for the data
// item listing endpoint.
type DataItemInfo struct {
	ID          string
	Name        string
	Category    string
	DataType    string
	Description string
}

// ListDataItems returns the data item catalogue, optionally filtered
// to the given categories (empty means every category).
func (g *Gateway) ListDataItems(categories []string) []DataItemInfo {
	var ids []string
	if len(categories) == 0 {
		ids = g.Catalogue.DataItemIDs("")
	} else {
		seen := make(map[string]bool)
		for _, cat := range categories {
			for _, id := range g.Catalogue.DataItemIDs(cat) {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}

	out := make([]DataItemInfo, 0, len(ids))
	for _, id := range ids {
		item, _ := g.Catalogue.DataItemByID(id)
		out = append(out, DataItemInfo{
			ID:       item.ID,
			Name:     item.DisplayName,
			Category: item.Category,
			DataType: string(item.DataType),
		})
	}
	return out
}

// DataItemValue is the result of reading a single data item.
type DataItemValue struct {
	ID       string
	Name     string
	Category string
	Data     any
}

// ReadDataItem resolves a SOVD data item id to its UDS DID, reads it
// from the component's ECU session, and coerces the raw bytes to the
// item's declared JSON shape. The two-byte DID echoed at the front of
// the ReadDataByIdentifier response is stripped before conversion.
func (g *Gateway) ReadDataItem(ctx context.Context, componentID, dataItemID string) (*DataItemValue, error) {
	item, ok := g.Catalogue.DataItemByID(dataItemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", uds.ErrDataItemNotFound, dataItemID)
	}

	s, err := g.session(ctx, componentID)
	if err != nil {
		return nil, err
	}

	resp, err := s.Send(ctx, uds.ReadDataByIdentifierRequest(item.DID))
	if err != nil {
		return nil, err
	}

	raw := resp.Data
	if len(raw) >= 2 {
		raw = raw[2:]
	}

	return &DataItemValue{
		ID:       item.ID,
		Name:     item.DisplayName,
		Category: item.Category,
		Data:     translator.ToSOVDValue(raw, item.DataType),
	}, nil
}

// WriteDataItem writes a JSON value to a SOVD data item's DID,
// gating on security access first if the gateway requires it.
func (g *Gateway) WriteDataItem(ctx context.Context, componentID, dataItemID string, value any) error {
	item, ok := g.Catalogue.DataItemByID(dataItemID)
	if !ok {
		return fmt.Errorf("%w: %s", uds.ErrDataItemNotFound, dataItemID)
	}

	raw, err := translator.FromSOVDValue(value)
	if err != nil {
		return err
	}

	s, err := g.session(ctx, componentID)
	if err != nil {
		return err
	}

	if err := g.ensureWriteAccess(ctx, s); err != nil {
		return err
	}

	_, err = s.Send(ctx, uds.WriteDataByIdentifierRequest(item.DID, raw))
	return err
}

// ActuatorResult is the outcome of an actuator control request.
type ActuatorResult struct {
	ActuatorID string
	Action     string
	Value      any
}

// ControlActuator maps an actuator id to its UDS routine and issues a
// RoutineControl start/stop request with the optional value serialised
// as the routine's parameter bytes.
func (g *Gateway) ControlActuator(ctx context.Context, componentID, actuatorID, action string, value any) (*ActuatorResult, error) {
	actuator, ok := g.Catalogue.ActuatorByID(actuatorID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", uds.ErrActuatorNotFound, actuatorID)
	}

	var routineType uds.RoutineControlType
	switch action {
	case "start":
		routineType = uds.RoutineStart
	case "stop":
		routineType = uds.RoutineStop
	default:
		return nil, fmt.Errorf("%w: unknown actuator action %q", translator.ErrInvalidRequest, action)
	}

	var params []byte
	if value != nil {
		raw, err := translator.FromSOVDValue(value)
		if err != nil {
			return nil, err
		}
		params = raw
	}

	s, err := g.session(ctx, componentID)
	if err != nil {
		return nil, err
	}

	if err := g.ensureWriteAccess(ctx, s); err != nil {
		return nil, err
	}

	if _, err := s.Send(ctx, uds.RoutineControlRequest(routineType, actuator.RoutineID, params)); err != nil {
		return nil, err
	}

	return &ActuatorResult{ActuatorID: actuatorID, Action: action, Value: value}, nil
}

// DTCResult is the outcome of a DTC management request.
type DTCResult struct {
	Action         string
	DTCs           []translator.DTCRecord
	FreezeFrameHex string
}

// ManageDTCs dispatches a DTC management action: clear erases all DTC
// groups, read reports every DTC matching the status mask, and
// freeze_frame returns the snapshot record payload for the single DTC
// named in dtcCodes as hex.
func (g *Gateway) ManageDTCs(ctx context.Context, componentID, action string, dtcCodes []string) (*DTCResult, error) {
	s, err := g.session(ctx, componentID)
	if err != nil {
		return nil, err
	}

	switch action {
	case "clear":
		if _, err := s.Send(ctx, uds.ClearDiagnosticInfoRequest(uds.ClearAllDTCs)); err != nil {
			return nil, err
		}
		return &DTCResult{Action: action}, nil

	case "read":
		resp, err := s.Send(ctx, uds.ReadDTCByStatusMaskRequest(0xFF))
		if err != nil {
			return nil, err
		}
		return &DTCResult{Action: action, DTCs: translator.ParseDTCRecords(resp.Data)}, nil

	case "freeze_frame":
		if len(dtcCodes) == 0 {
			return nil, fmt.Errorf("%w: freeze_frame requires a dtc code", translator.ErrInvalidRequest)
		}
		raw, err := translator.ParseDTCCode(dtcCodes[0])
		if err != nil {
			return nil, err
		}
		resp, err := s.Send(ctx, uds.ReadDTCSnapshotRequest(raw, dtcSnapshotAllRecords))
		if err != nil {
			return nil, err
		}
		return &DTCResult{Action: action, FreezeFrameHex: translator.ToHexString(resp.Data)}, nil

	default:
		return nil, fmt.Errorf("%w: unknown DTC action %q", translator.ErrInvalidRequest, action)
	}
}

// dtcSnapshotAllRecords requests every stored snapshot record for a
// DTC rather than a single numbered one, per ISO 14229-1.
const dtcSnapshotAllRecords byte = 0xFF

// ServiceResult is the outcome of a generic diagnostic service call.
type ServiceResult struct {
	ServiceType string
	Results     map[string]any
}

// ExecuteService dispatches one of the gateway's generic diagnostic
// services not otherwise covered by the data/actuator/DTC endpoints:
// session_control changes the ECU's diagnostic session, ecu_reset
// issues a reset, security_access runs the seed/key handshake on
// demand, and clear_dtcs mirrors the DTC-management clear action for
// callers that prefer the generic service surface.
func (g *Gateway) ExecuteService(ctx context.Context, componentID, serviceType string, parameters map[string]any) (*ServiceResult, error) {
	s, err := g.session(ctx, componentID)
	if err != nil {
		return nil, err
	}

	switch serviceType {
	case "session_control":
		sessionType, err := paramByte(parameters, "session_type")
		if err != nil {
			return nil, err
		}
		if _, err := s.Send(ctx, uds.SessionControlRequest(uds.DiagnosticSessionType(sessionType))); err != nil {
			return nil, err
		}
		return &ServiceResult{ServiceType: serviceType, Results: map[string]any{
			"session_type": fmt.Sprintf("0x%02X", sessionType),
		}}, nil

	case "ecu_reset":
		resetType, err := paramByte(parameters, "reset_type")
		if err != nil {
			return nil, err
		}
		if _, err := s.Send(ctx, uds.ECUResetRequest(uds.ECUResetType(resetType))); err != nil {
			return nil, err
		}
		return &ServiceResult{ServiceType: serviceType}, nil

	case "security_access":
		level := g.Security.Level
		if v, ok := parameters["level"]; ok {
			b, err := paramByte(map[string]any{"level": v}, "level")
			if err != nil {
				return nil, err
			}
			level = b
		}
		if err := s.EnsureSecurityAccess(ctx, level, g.Security.Derive); err != nil {
			return nil, err
		}
		return &ServiceResult{ServiceType: serviceType, Results: map[string]any{
			"level": fmt.Sprintf("0x%02X", level),
		}}, nil

	case "clear_dtcs":
		if _, err := s.Send(ctx, uds.ClearDiagnosticInfoRequest(uds.ClearAllDTCs)); err != nil {
			return nil, err
		}
		return &ServiceResult{ServiceType: serviceType}, nil

	default:
		return nil, fmt.Errorf("%w: unknown service type %q", translator.ErrInvalidRequest, serviceType)
	}
}

func paramByte(parameters map[string]any, key string) (byte, error) {
	v, ok := parameters[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s parameter", translator.ErrInvalidRequest, key)
	}
	n, ok := v.(float64)
	if !ok || n < 0 || n > 255 {
		return 0, fmt.Errorf("%w: invalid %s parameter", translator.ErrInvalidRequest, key)
	}
	return byte(n), nil
}
