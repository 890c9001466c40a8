package collection

import (
	"errors"
	"fmt"
)

// ErrUnauthorized maps a 401 response. The console reports it as a
// credential problem; re-authentication is outside the grid's concern.
var ErrUnauthorized = errors.New("unauthorized: check the configured credentials")

// ErrNotConfigured reports a collection name missing from the config.
var ErrNotConfigured = errors.New("collection is not configured")

// APIError is a non-2xx, non-401 backend response. The message is whatever
// the backend sent, surfaced unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// NetworkError is a transport-level failure: the request never produced a
// response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
