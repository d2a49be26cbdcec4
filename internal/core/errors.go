package core

import (
	"errors"
	"fmt"
)

// Sentinel failures surfaced to the transport layer. A failed inference
// never rolls back the message that triggered it.
var (
	// ErrInvalidInput marks a malformed inbound payload or a missing
	// required field. Nothing is written to the log before input
	// validation passes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedBackend is returned when the configured provider
	// names no known backend. Raised before any network call.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrMissingCredential is returned by hosted backends when no API
	// key is configured. Raised before any network call.
	ErrMissingCredential = errors.New("missing credential")
)

// BackendUnavailableError wraps a transport-level failure: a connection
// error or a non-2xx status from the backend.
type BackendUnavailableError struct {
	Backend string
	Err     error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("backend %s unavailable: %v", e.Backend, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}

// BackendProtocolError marks a successful network exchange whose body
// lacked the expected reply field or could not be decoded.
type BackendProtocolError struct {
	Backend string
	Err     error
}

func (e *BackendProtocolError) Error() string {
	return fmt.Sprintf("backend %s protocol error: %v", e.Backend, e.Err)
}

func (e *BackendProtocolError) Unwrap() error {
	return e.Err
}
