package uds

import (
	"errors"
	"testing"
)

func TestErrorIsRetryable(t *testing.T) {
	negErr := NewNegativeResponseError(SIDReadDataByIdentifier, 0x7A1, NRCBusyRepeatRequest)
	if !negErr.IsRetryable() {
		t.Error("busy-repeat negative response should be retryable")
	}
	if negErr.IsTransportError() {
		t.Error("negative response is not a transport error")
	}

	transportErr := NewTransportError(SIDReadDataByIdentifier, 0x7A1, errors.New("link down"))
	if transportErr.IsRetryable() {
		t.Error("Error.IsRetryable() only governs NRC retry policy; transport retries are handled by the caller")
	}
	if !transportErr.IsTransportError() {
		t.Error("expected IsTransportError() == true")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewTransportError(SIDECUReset, 0x10, cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestErrorMessageFormatting(t *testing.T) {
	err := NewNegativeResponseError(SIDSecurityAccess, 0x20, NRCSecurityAccessDenied)
	msg := err.Error()
	if msg == "" {
		t.Fatal("Error() returned empty string")
	}
}
