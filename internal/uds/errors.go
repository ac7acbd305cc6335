package uds

import "fmt"

// Error wraps a UDS negative response (or transport failure) with the
// service and ECU address it occurred against. It implements error and
// supports errors.Is()/errors.As() via Unwrap, the same shape as this
// corpus's other protocol-error types: a numeric code, a message, and
// an underlying cause.
type Error struct {
	Service ServiceID
	Address uint32
	NRC     NegativeResponseCode
	cause   error
}

// NewNegativeResponseError builds an Error from a decoded negative
// response frame.
func NewNegativeResponseError(service ServiceID, address uint32, nrc NegativeResponseCode) *Error {
	return &Error{Service: service, Address: address, NRC: nrc}
}

// NewTransportError wraps a NativeClient failure (timeout, link down)
// that never produced a UDS frame at all.
func NewTransportError(service ServiceID, address uint32, cause error) *Error {
	return &Error{Service: service, Address: address, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("uds: %s to 0x%X: %v", e.Service, e.Address, e.cause)
	}
	return fmt.Sprintf("uds: %s to 0x%X: %s (0x%02X)", e.Service, e.Address, e.NRC.Description(), byte(e.NRC))
}

// Code returns the negative response code, or 0 if this is a transport
// failure rather than a negative response.
func (e *Error) Code() byte {
	return byte(e.NRC)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsTransportError reports whether this error never reached a UDS frame.
func (e *Error) IsTransportError() bool {
	return e.cause != nil
}

// IsRetryable reports whether this negative response code is one worth
// retrying. It is false for transport errors, whose retries the session
// governs separately.
func (e *Error) IsRetryable() bool {
	if e.cause != nil {
		return false
	}
	return e.NRC.IsRetryable()
}

// Sentinel errors for conditions that are not a specific NRC.
var (
	// ErrComponentNotFound means the requested SOVD component id has no
	// entry in the configured component catalogue.
	ErrComponentNotFound = fmt.Errorf("uds: component not found")

	// ErrSecurityAccessRequired means the operation needs a granted
	// security access level the current session does not hold.
	ErrSecurityAccessRequired = fmt.Errorf("uds: security access required")

	// ErrRequestInFlight means a second request arrived for an ECU that
	// already has one in flight; this gateway allows at most one
	// outstanding request per ECU session at a time.
	ErrRequestInFlight = fmt.Errorf("uds: request already in flight for this ECU")

	// ErrDataItemNotFound means the requested SOVD data item id has no
	// entry in the configured data item catalogue.
	ErrDataItemNotFound = fmt.Errorf("uds: data item not found")

	// ErrActuatorNotFound means the requested SOVD actuator id has no
	// entry in the configured actuator catalogue.
	ErrActuatorNotFound = fmt.Errorf("uds: actuator not found")
)
