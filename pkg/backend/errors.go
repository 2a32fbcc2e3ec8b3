package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingURL      = errors.New("backend: url is required")
	ErrMissingAnonKey  = errors.New("backend: anon key is required")
	ErrInvalidURL      = errors.New("backend: invalid url")
	ErrRequestFailed   = errors.New("backend request failed")
	ErrDecodeResponse  = errors.New("backend: failed to decode response")
	ErrInvalidSession  = errors.New("backend: invalid session")
	ErrNoRefreshToken  = errors.New("backend: session has no refresh token")
	ErrClientClosed    = errors.New("backend: client closed")
	ErrInvalidArgument = errors.New("backend: invalid argument")
)

// APIError is a non-2xx answer from the auth or data API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}
