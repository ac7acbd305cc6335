package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for UDS/SOVD operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// ========================================================================
	// Client attributes (HTTP layer)
	// ========================================================================
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"
	AttrClientPort = "client.port"
	AttrClientHost = "client.host"

	// ========================================================================
	// Protocol/operation attributes
	// ========================================================================
	AttrProtocol  = "protocol.name" // uds, sovd
	AttrOperation = "sovd.operation"

	// ========================================================================
	// SOVD attributes
	// ========================================================================
	AttrComponentID = "sovd.component_id"
	AttrDataItemID  = "sovd.data_item_id"
	AttrActuatorID  = "sovd.actuator_id"
	AttrServiceType = "sovd.service_type"
	AttrDTCAction   = "sovd.dtc_action"
	AttrStatus      = "sovd.status"
	AttrStatusMsg   = "sovd.status_msg"

	// ========================================================================
	// UDS attributes
	// ========================================================================
	AttrECUAddress = "uds.ecu_address"
	AttrInterface  = "uds.interface"
	AttrUDSSID     = "uds.sid"
	AttrUDSSubFn   = "uds.subfunction"
	AttrUDSNRC     = "uds.nrc"
	AttrUDSDID     = "uds.did"
	AttrUDSSession = "uds.session_type"
	AttrDTC        = "uds.dtc"
	AttrAttempt    = "uds.attempt"

	// ========================================================================
	// Session pool attributes
	// ========================================================================
	AttrPoolSize = "pool.size"
)

// Span names for operations.
const (
	// SpanHTTPRequest is the root span for an inbound REST request.
	SpanHTTPRequest = "sovd.http_request"

	// REST operations
	SpanListComponents    = "sovd.list_components"
	SpanListDataItems     = "sovd.list_data_items"
	SpanReadDataItem      = "sovd.read_data_item"
	SpanControlActuator   = "sovd.control_actuator"
	SpanManageDTCs        = "sovd.manage_dtcs"
	SpanInvokeService     = "sovd.invoke_service"

	// UDS round trips
	SpanUDSRequest        = "uds.request"
	SpanSecurityAccess    = "uds.security_access"
	SpanSessionControl    = "uds.session_control"
	SpanECUReset          = "uds.ecu_reset"
	SpanReadDataByID      = "uds.read_data_by_identifier"
	SpanWriteDataByID     = "uds.write_data_by_identifier"
	SpanReadDTCInfo       = "uds.read_dtc_information"
	SpanClearDiagInfo     = "uds.clear_diagnostic_information"
	SpanRoutineControl    = "uds.routine_control"

	// Pool/session lifecycle
	SpanPoolAcquire = "pool.acquire"
	SpanPoolEvict   = "pool.evict"
)

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for full client address
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// ClientPort returns an attribute for client source port
func ClientPort(port int) attribute.KeyValue {
	return attribute.Int(AttrClientPort, port)
}

// Protocol returns an attribute for protocol name (uds, sovd)
func Protocol(name string) attribute.KeyValue {
	return attribute.String(AttrProtocol, name)
}

// Operation returns an attribute for the SOVD operation name
func Operation(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// ComponentID returns an attribute for the SOVD component id
func ComponentID(id string) attribute.KeyValue {
	return attribute.String(AttrComponentID, id)
}

// DataItemID returns an attribute for the SOVD data item id
func DataItemID(id string) attribute.KeyValue {
	return attribute.String(AttrDataItemID, id)
}

// ActuatorID returns an attribute for the SOVD actuator id
func ActuatorID(id string) attribute.KeyValue {
	return attribute.String(AttrActuatorID, id)
}

// ServiceType returns an attribute for the generic service dispatch type
func ServiceType(t string) attribute.KeyValue {
	return attribute.String(AttrServiceType, t)
}

// DTCAction returns an attribute for a DTC management action
func DTCAction(action string) attribute.KeyValue {
	return attribute.String(AttrDTCAction, action)
}

// Status returns an attribute for operation status
func Status(status int) attribute.KeyValue {
	return attribute.Int(AttrStatus, status)
}

// StatusMsg returns an attribute for status message
func StatusMsg(msg string) attribute.KeyValue {
	return attribute.String(AttrStatusMsg, msg)
}

// ECUAddress returns an attribute for the UDS target address, formatted as hex
func ECUAddress(addr uint32) attribute.KeyValue {
	return attribute.String(AttrECUAddress, fmt.Sprintf("0x%X", addr))
}

// Interface returns an attribute for the transport interface name
func Interface(name string) attribute.KeyValue {
	return attribute.String(AttrInterface, name)
}

// UDSSID returns an attribute for a UDS service identifier
func UDSSID(sid byte) attribute.KeyValue {
	return attribute.String(AttrUDSSID, fmt.Sprintf("0x%02X", sid))
}

// UDSSubFunction returns an attribute for a UDS sub-function byte
func UDSSubFunction(sub byte) attribute.KeyValue {
	return attribute.String(AttrUDSSubFn, fmt.Sprintf("0x%02X", sub))
}

// UDSNRC returns an attribute for a negative response code
func UDSNRC(nrc byte) attribute.KeyValue {
	return attribute.String(AttrUDSNRC, fmt.Sprintf("0x%02X", nrc))
}

// UDSDID returns an attribute for a data identifier
func UDSDID(did uint16) attribute.KeyValue {
	return attribute.String(AttrUDSDID, fmt.Sprintf("0x%04X", did))
}

// UDSSession returns an attribute for the diagnostic session type
func UDSSession(sessionType byte) attribute.KeyValue {
	return attribute.String(AttrUDSSession, fmt.Sprintf("0x%02X", sessionType))
}

// DTC returns an attribute for a DTC code string
func DTC(code string) attribute.KeyValue {
	return attribute.String(AttrDTC, code)
}

// Attempt returns an attribute for the retry attempt number
func Attempt(n int) attribute.KeyValue {
	return attribute.Int(AttrAttempt, n)
}

// PoolSize returns an attribute for the current session pool size
func PoolSize(n int) attribute.KeyValue {
	return attribute.Int(AttrPoolSize, n)
}

// StartHTTPSpan starts the root span for an inbound REST request.
func StartHTTPSpan(ctx context.Context, method, route string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{Operation(method + " " + route)}, attrs...)
	return StartSpan(ctx, SpanHTTPRequest, trace.WithAttributes(allAttrs...))
}

// StartUDSSpan starts a span for a single UDS request/response round trip.
func StartUDSSpan(ctx context.Context, name string, componentID string, sid byte, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{ComponentID(componentID), UDSSID(sid)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, name, trace.WithAttributes(allAttrs...))
}

// StartPoolSpan starts a span for a session pool operation.
func StartPoolSpan(ctx context.Context, name string, componentID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{ComponentID(componentID)}, attrs...)
	return StartSpan(ctx, name, trace.WithAttributes(allAttrs...))
}
