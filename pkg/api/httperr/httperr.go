// Package httperr maps the gateway's internal error taxonomy to HTTP
// status codes and writes RFC 7807 problem responses, the single
// outermost error boundary every REST handler funnels through.
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marmos91/sovdgw/internal/translator"
	"github.com/marmos91/sovdgw/internal/uds"
)

// Problem represents an RFC 7807 "problem details" response.
// https://tools.ietf.org/html/rfc7807
type Problem struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// ContentTypeProblemJSON is the Content-Type for RFC 7807 problem
// responses.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes an RFC 7807 problem response with the given
// status and title.
func WriteProblem(w http.ResponseWriter, status int, title, detail string) {
	problem := &Problem{Type: "about:blank", Title: title, Status: status, Detail: detail}
	w.Header().Set("Content-Type", ContentTypeProblemJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem)
}

// BadRequest writes a 400 Bad Request problem response.
func BadRequest(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusBadRequest, "Bad Request", detail)
}

// Unauthorized writes a 401 Unauthorized problem response.
func Unauthorized(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusUnauthorized, "Unauthorized", detail)
}

// NotFound writes a 404 Not Found problem response.
func NotFound(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusNotFound, "Not Found", detail)
}

// RequestTimeout writes a 408 Request Timeout problem response.
func RequestTimeout(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusRequestTimeout, "Request Timeout", detail)
}

// InternalServerError writes a 500 Internal Server Error problem
// response.
func InternalServerError(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", detail)
}

// WriteJSON writes a plain JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONOK writes a 200 OK JSON response.
func WriteJSONOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// HandleError maps an internal error to the appropriate HTTP problem
// response: component/data-item/actuator not found maps to 404, missing
// security access to 401, a request in flight to 409, a context
// deadline to 408, an invalid request to 400, a UDS error by its NRC
// (transport failures to 408), and everything else to 500.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, uds.ErrComponentNotFound), errors.Is(err, uds.ErrDataItemNotFound), errors.Is(err, uds.ErrActuatorNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, uds.ErrSecurityAccessRequired):
		Unauthorized(w, err.Error())
	case errors.Is(err, uds.ErrRequestInFlight):
		WriteProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		RequestTimeout(w, err.Error())
	case errors.Is(err, translator.ErrInvalidRequest):
		BadRequest(w, err.Error())
	default:
		var udsErr *uds.Error
		if errors.As(err, &udsErr) {
			handleUDSError(w, udsErr)
			return
		}

		var translatorErr *translator.InvalidRequestError
		if errors.As(err, &translatorErr) {
			BadRequest(w, err.Error())
			return
		}

		InternalServerError(w, err.Error())
	}
}

func handleUDSError(w http.ResponseWriter, err *uds.Error) {
	if err.IsTransportError() {
		RequestTimeout(w, err.Error())
		return
	}

	switch err.NRC {
	case uds.NRCRequestOutOfRange:
		NotFound(w, err.Error())
	case uds.NRCIncorrectMessageLength, uds.NRCSubFunctionNotSupported, uds.NRCServiceNotSupported:
		BadRequest(w, err.Error())
	case uds.NRCSecurityAccessDenied, uds.NRCInvalidKey:
		Unauthorized(w, err.Error())
	default:
		InternalServerError(w, err.Error())
	}
}
