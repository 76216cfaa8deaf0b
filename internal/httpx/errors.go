package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the single error shape surfaced by the REST client. It keeps
// the backend's message verbatim so callers can show it inline without
// rewording, and separates transport failures (Status == 0) from non-2xx
// application responses.
type APIError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NetworkError(err error) *APIError {
	return &APIError{
		Code:    "NETWORK",
		Message: "network error, please try again",
		Err:     err,
	}
}

func FromStatus(status int, message string) *APIError {
	code := "SERVER_ERROR"
	switch status {
	case http.StatusBadRequest:
		code = "BAD_REQUEST"
	case http.StatusUnauthorized:
		code = "UNAUTHORIZED"
	case http.StatusForbidden:
		code = "FORBIDDEN"
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusConflict:
		code = "CONFLICT"
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// IsNetwork reports whether err was a transport failure rather than an
// application response. Listing falls back to the cache on either, but some
// callers word their status line differently.
func IsNetwork(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == 0
	}
	return false
}

// Message extracts the user-facing message from any error returned by the
// client, suitable for an inline status area.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
