package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)

// HTTPError carries the status code to answer with and a message safe to
// show the user. The wrapped cause is only logged.
type HTTPError struct {
	Code    int
	Message string
	Cause   error
}

func (e HTTPError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e HTTPError) Unwrap() error { return e.Cause }

// NewHTTPError returns an HTTPError without a cause.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

// BadRequest marks err as a 400.
func BadRequest(err error) HTTPError {
	return HTTPError{Code: http.StatusBadRequest, Message: "Solicitud no válida", Cause: err}
}

var (
	ErrNotFound   = HTTPError{Code: http.StatusNotFound, Message: "Página no encontrada"}
	ErrBadRequest = HTTPError{Code: http.StatusBadRequest, Message: "Solicitud no válida"}
	ErrInternal   = HTTPError{Code: http.StatusInternalServerError, Message: "Error interno del servidor"}
)
