package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marmos91/sovdgw/internal/translator"
	"github.com/marmos91/sovdgw/internal/uds"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) Problem {
	t.Helper()
	var p Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode problem response: %v", err)
	}
	return p
}

func TestWriteProblemSetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteProblem(rec, http.StatusTeapot, "I'm a teapot", "brewing")

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if ct := rec.Header().Get("Content-Type"); ct != ContentTypeProblemJSON {
		t.Errorf("Content-Type = %s, want %s", ct, ContentTypeProblemJSON)
	}

	p := decodeProblem(t, rec)
	if p.Title != "I'm a teapot" || p.Detail != "brewing" || p.Status != http.StatusTeapot {
		t.Errorf("Problem = %+v", p)
	}
}

func TestHandleErrorMapsNotFoundSentinels(t *testing.T) {
	cases := []error{
		fmt.Errorf("%w: engine", uds.ErrComponentNotFound),
		fmt.Errorf("%w: vin", uds.ErrDataItemNotFound),
		fmt.Errorf("%w: fuel_pump", uds.ErrActuatorNotFound),
	}
	for _, err := range cases {
		rec := httptest.NewRecorder()
		HandleError(rec, err)
		if rec.Code != http.StatusNotFound {
			t.Errorf("HandleError(%v) status = %d, want 404", err, rec.Code)
		}
	}
}

func TestHandleErrorMapsSecurityAccessRequiredToUnauthorized(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, uds.ErrSecurityAccessRequired)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHandleErrorMapsRequestInFlightToConflict(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, uds.ErrRequestInFlight)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestHandleErrorMapsDeadlineExceededToRequestTimeout(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, context.DeadlineExceeded)
	if rec.Code != http.StatusRequestTimeout {
		t.Errorf("status = %d, want 408", rec.Code)
	}
}

func TestHandleErrorMapsInvalidRequestToBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("wrapped: %w", translator.ErrInvalidRequest))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleErrorMapsUnknownErrorToInternalServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("something broke"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandleErrorMapsUDSTransportErrorToRequestTimeout(t *testing.T) {
	err := uds.NewTransportError(uds.SIDReadDataByIdentifier, 0x701, errors.New("link down"))
	rec := httptest.NewRecorder()
	HandleError(rec, err)
	if rec.Code != http.StatusRequestTimeout {
		t.Errorf("status = %d, want 408", rec.Code)
	}
}

func TestHandleErrorMapsUDSNegativeResponsesByNRC(t *testing.T) {
	cases := []struct {
		nrc  uds.NegativeResponseCode
		want int
	}{
		{uds.NRCRequestOutOfRange, http.StatusNotFound},
		{uds.NRCIncorrectMessageLength, http.StatusBadRequest},
		{uds.NRCSubFunctionNotSupported, http.StatusBadRequest},
		{uds.NRCServiceNotSupported, http.StatusBadRequest},
		{uds.NRCSecurityAccessDenied, http.StatusUnauthorized},
		{uds.NRCInvalidKey, http.StatusUnauthorized},
		{uds.NRCGeneralReject, http.StatusInternalServerError},
	}
	for _, c := range cases {
		err := uds.NewNegativeResponseError(uds.SIDReadDataByIdentifier, 0x701, c.nrc)
		rec := httptest.NewRecorder()
		HandleError(rec, err)
		if rec.Code != c.want {
			t.Errorf("HandleError(NRC 0x%02X) status = %d, want %d", byte(c.nrc), rec.Code, c.want)
		}
	}
}

func TestWriteJSONOKWritesStatus200(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONOK(rec, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", ct)
	}
}
