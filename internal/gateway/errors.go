package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse means the backend returned a zero-length body.
	ErrEmptyResponse = errors.New("empty response from server")
	// ErrMalformedResponse means the body was not valid JSON.
	ErrMalformedResponse = errors.New("malformed response from server")
)

// APIError is a structured failure envelope ({success:false, error}) from
// the backend.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthExpiredError is an HTTP 401 carrying one of the recognized expiry
// codes. The central error handler reacts by clearing the session and
// redirecting to sign-in.
type AuthExpiredError struct {
	Code    string
	Message string
}

func (e *AuthExpiredError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "session expired"
}

// NetworkError wraps a transport failure (no response received).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func isExpiryCode(code string) bool {
	switch code {
	case "TOKEN_EXPIRED", "TOKEN_INVALID", "TOKEN_MISSING":
		return true
	}
	return false
}
