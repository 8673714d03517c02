package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError mirrors the backend's error body: HTTP status plus the
// server-provided detail string, surfaced verbatim where feasible.
type APIError struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

// NetworkError wraps transport-level failures (connection refused, timeouts).
// Callers may retry these; 4xx/5xx responses are never wrapped here.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err is an HTTP 401 from the backend.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is an HTTP 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsRetryable reports whether err is a transient transport failure that a
// read may retry. Server responses, auth failures included, are not retryable.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
