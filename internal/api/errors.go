package api

import (
	"errors"
	"fmt"

	"mediassist/internal/clinic"
)

// ErrTransport matches every *TransportError.
var ErrTransport = errors.New("transport failure")

// TransportError is a call that never produced a usable envelope: the request
// failed, the status was not 2xx, or the body did not decode. Message holds the
// backend's message when a non-2xx body carried one.
type TransportError struct {
	Kind       clinic.Kind
	Op         clinic.Operation
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	target := e.Path
	if e.Kind != "" {
		target = fmt.Sprintf("%s %s", e.Op, e.Kind)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", target, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", target, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// RejectedError is a well-formed response with success:false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "request rejected"
	}
	return "request rejected: " + e.Message
}

// RejectionMessage returns the backend message carried by err, if any.
func RejectionMessage(err error) string {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Message
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Message
	}
	return ""
}
