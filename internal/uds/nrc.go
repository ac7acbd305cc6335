package uds

import "fmt"

// NegativeResponseCode is the third byte of a UDS negative response frame
// (ISO 14229-1 Table A.1).
type NegativeResponseCode byte

const (
	NRCGeneralReject                    NegativeResponseCode = 0x10
	NRCServiceNotSupported              NegativeResponseCode = 0x11
	NRCSubFunctionNotSupported          NegativeResponseCode = 0x12
	NRCIncorrectMessageLength           NegativeResponseCode = 0x13
	NRCResponseTooLong                  NegativeResponseCode = 0x14
	NRCBusyRepeatRequest                NegativeResponseCode = 0x21
	NRCConditionsNotCorrect             NegativeResponseCode = 0x22
	NRCRequestSequenceError             NegativeResponseCode = 0x24
	NRCNoResponseFromSubnet             NegativeResponseCode = 0x25
	NRCFailurePreventsExecution         NegativeResponseCode = 0x26
	NRCRequestOutOfRange                NegativeResponseCode = 0x31
	NRCSecurityAccessDenied             NegativeResponseCode = 0x33
	NRCInvalidKey                       NegativeResponseCode = 0x35
	NRCExceedNumberOfAttempts           NegativeResponseCode = 0x36
	NRCRequiredTimeDelayNotExpired      NegativeResponseCode = 0x37
	NRCUploadDownloadNotAccepted        NegativeResponseCode = 0x70
	NRCTransferDataSuspended            NegativeResponseCode = 0x71
	NRCGeneralProgrammingFailure        NegativeResponseCode = 0x72
	NRCWrongBlockSequenceCounter        NegativeResponseCode = 0x73
	NRCRequestCorrectlyReceivedPending  NegativeResponseCode = 0x78
	NRCSubFunctionNotSupportedInSession NegativeResponseCode = 0x7E
	NRCServiceNotSupportedInSession     NegativeResponseCode = 0x7F
)

// IsPending reports whether this NRC is the 0x78 "response pending"
// code that extends, rather than fails, the request.
func (c NegativeResponseCode) IsPending() bool {
	return c == NRCRequestCorrectlyReceivedPending
}

// IsRetryable reports whether a fresh attempt of the same request is
// worth making after this NRC.
func (c NegativeResponseCode) IsRetryable() bool {
	switch c {
	case NRCBusyRepeatRequest, NRCNoResponseFromSubnet:
		return true
	default:
		return false
	}
}

// Description returns the ISO 14229-1 textual description of the code.
func (c NegativeResponseCode) Description() string {
	switch c {
	case NRCGeneralReject:
		return "general reject"
	case NRCServiceNotSupported:
		return "service not supported"
	case NRCSubFunctionNotSupported:
		return "sub-function not supported"
	case NRCIncorrectMessageLength:
		return "incorrect message length or invalid format"
	case NRCResponseTooLong:
		return "response too long"
	case NRCBusyRepeatRequest:
		return "busy, repeat request"
	case NRCConditionsNotCorrect:
		return "conditions not correct"
	case NRCRequestSequenceError:
		return "request sequence error"
	case NRCNoResponseFromSubnet:
		return "no response from subnet component"
	case NRCFailurePreventsExecution:
		return "failure prevents execution of requested action"
	case NRCRequestOutOfRange:
		return "request out of range"
	case NRCSecurityAccessDenied:
		return "security access denied"
	case NRCInvalidKey:
		return "invalid key"
	case NRCExceedNumberOfAttempts:
		return "exceeded number of attempts"
	case NRCRequiredTimeDelayNotExpired:
		return "required time delay not expired"
	case NRCUploadDownloadNotAccepted:
		return "upload/download not accepted"
	case NRCTransferDataSuspended:
		return "transfer data suspended"
	case NRCGeneralProgrammingFailure:
		return "general programming failure"
	case NRCWrongBlockSequenceCounter:
		return "wrong block sequence counter"
	case NRCRequestCorrectlyReceivedPending:
		return "request correctly received, response pending"
	case NRCSubFunctionNotSupportedInSession:
		return "sub-function not supported in active session"
	case NRCServiceNotSupportedInSession:
		return "service not supported in active session"
	default:
		return fmt.Sprintf("unknown negative response code 0x%02X", byte(c))
	}
}

// ParseNRC maps a raw byte to a NegativeResponseCode, always succeeding:
// unrecognised codes still round-trip through Description.
func ParseNRC(b byte) NegativeResponseCode {
	return NegativeResponseCode(b)
}
