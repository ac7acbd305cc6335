package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Component & ECU identification
	// ========================================================================
	KeyComponentID = "component_id" // SOVD component identifier (engine, abs, ...)
	KeyECUAddress  = "ecu_address"  // UDS target address (hex)
	KeyInterface   = "interface"    // transport interface name (can0, doip, ...)

	// ========================================================================
	// UDS protocol
	// ========================================================================
	KeySID        = "uds_sid"        // UDS service identifier
	KeySubFn      = "uds_subfunction" // UDS sub-function byte
	KeyNRC        = "uds_nrc"        // negative response code
	KeyDID        = "uds_did"        // data identifier
	KeySession    = "uds_session"    // diagnostic session type
	KeyDTC        = "dtc"            // DTC code (P0100 form)
	KeyStatus     = "status"         // operation status code
	KeyStatusMsg  = "status_msg"     // human-readable status message

	// ========================================================================
	// SOVD request
	// ========================================================================
	KeyDataItem   = "data_item_id"  // SOVD data item id
	KeyActuator   = "actuator_id"   // SOVD actuator id
	KeyServiceTyp = "service_type"  // generic service dispatch type
	KeyAction     = "action"        // dtc/actuator action verb

	// ========================================================================
	// Client identification (HTTP layer)
	// ========================================================================
	KeyClientIP   = "client_ip"   // client IP address
	KeyClientPort = "client_port" // client source port
	KeyClientHost = "client_host" // client hostname (if resolved)

	// ========================================================================
	// Session & connection
	// ========================================================================
	KeyRequestID = "request_id" // HTTP request ID (from middleware)

	// ========================================================================
	// Operation metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
	KeyErrorCode  = "error_code"  // numeric error code
	KeyOperation  = "operation"   // sub-operation type for complex operations
	KeyAttempt    = "attempt"     // retry attempt number
	KeyMaxRetries = "max_retries" // maximum retry attempts

	// ========================================================================
	// Pool
	// ========================================================================
	KeyPoolSize = "pool_size" // current session pool size
)

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// ComponentID returns a slog.Attr for the SOVD component id
func ComponentID(id string) slog.Attr {
	return slog.String(KeyComponentID, id)
}

// ECUAddress returns a slog.Attr for the UDS target address, formatted as hex
func ECUAddress(addr uint32) slog.Attr {
	return slog.String(KeyECUAddress, fmt.Sprintf("0x%X", addr))
}

// Interface returns a slog.Attr for the transport interface name
func Interface(name string) slog.Attr {
	return slog.String(KeyInterface, name)
}

// SID returns a slog.Attr for a UDS service identifier, formatted as hex
func SID(sid byte) slog.Attr {
	return slog.String(KeySID, fmt.Sprintf("0x%02X", sid))
}

// NRC returns a slog.Attr for a UDS negative response code, formatted as hex
func NRC(nrc byte) slog.Attr {
	return slog.String(KeyNRC, fmt.Sprintf("0x%02X", nrc))
}

// DID returns a slog.Attr for a UDS data identifier, formatted as hex
func DID(did uint16) slog.Attr {
	return slog.String(KeyDID, fmt.Sprintf("0x%04X", did))
}

// Session returns a slog.Attr for the active diagnostic session type
func Session(sessionType byte) slog.Attr {
	return slog.String(KeySession, fmt.Sprintf("0x%02X", sessionType))
}

// DTC returns a slog.Attr for a DTC code string
func DTC(code string) slog.Attr {
	return slog.String(KeyDTC, code)
}

// Status returns a slog.Attr for operation status code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// StatusMsg returns a slog.Attr for human-readable status message
func StatusMsg(msg string) slog.Attr {
	return slog.String(KeyStatusMsg, msg)
}

// DataItem returns a slog.Attr for a SOVD data item id
func DataItem(id string) slog.Attr {
	return slog.String(KeyDataItem, id)
}

// Actuator returns a slog.Attr for a SOVD actuator id
func Actuator(id string) slog.Attr {
	return slog.String(KeyActuator, id)
}

// ServiceType returns a slog.Attr for the generic service dispatch type
func ServiceType(t string) slog.Attr {
	return slog.String(KeyServiceTyp, t)
}

// Action returns a slog.Attr for a DTC/actuator action verb
func Action(a string) slog.Attr {
	return slog.String(KeyAction, a)
}

// ClientIP returns a slog.Attr for client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// ClientPort returns a slog.Attr for client source port
func ClientPort(port int) slog.Attr {
	return slog.Int(KeyClientPort, port)
}

// ClientHost returns a slog.Attr for client hostname
func ClientHost(host string) slog.Attr {
	return slog.String(KeyClientHost, host)
}

// RequestID returns a slog.Attr for the HTTP request ID
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for numeric error code
func ErrorCode(code int) slog.Attr {
	return slog.Int(KeyErrorCode, code)
}

// Operation returns a slog.Attr for sub-operation type
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Attempt returns a slog.Attr for retry attempt number
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// MaxRetries returns a slog.Attr for maximum retry attempts
func MaxRetries(n int) slog.Attr {
	return slog.Int(KeyMaxRetries, n)
}

// PoolSize returns a slog.Attr for the current session pool size
func PoolSize(n int) slog.Attr {
	return slog.Int(KeyPoolSize, n)
}
