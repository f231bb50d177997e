package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed call
type Kind string

const (
	// KindNetwork means the request never got a response
	KindNetwork Kind = "network"
	// KindAPI means the backend answered with an error or an unreadable body
	KindAPI Kind = "api"
	// KindAuthExpired means the backend rejected the token (401 outside login)
	KindAuthExpired Kind = "auth_expired"
)

// NetworkErrorMessage is the message of every KindNetwork error
const NetworkErrorMessage = "server unavailable (network error)"

// Sentinels matched by *Error through errors.Is
var (
	ErrNetwork     = errors.New("network error")
	ErrAuthExpired = errors.New("session expired")
)

// Error is the uniform failure of a backend call
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for network errors
	Code    string // the "error" field of the payload
	Message string
	Fields  map[string]any // the whole error payload
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel of the error kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrAuthExpired:
		return e.Kind == KindAuthExpired
	}
	return false
}

// AsError unwraps err into an *Error
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthExpired reports whether err means the session must be dropped
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

// CodeOf returns the server error code carried by err, or ""
func CodeOf(err error) string {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Code
	}
	return ""
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Status
	}
	return 0
}
