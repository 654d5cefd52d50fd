package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrSignatureMismatch = errors.New("callback signature mismatch")
	ErrNotFound          = errors.New("transaction not found")
)

// TransportError reports a non-2xx reply from the gateway. It keeps the
// request coordinates and the raw body so callers can diagnose failures
// without re-issuing the call.
type TransportError struct {
	Method string
	URL    string
	Status int
	Body   []byte
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway %s %s: expected 2xx, got %d", e.Method, e.URL, e.Status)
}

// DecodeError reports a gateway reply that could not be parsed, or whose
// root marker is not one of the recognized response shapes.
type DecodeError struct {
	Root    string // root element name, empty when the document did not parse
	Content []byte // raw reply as received
	Reason  string
}

func (e *DecodeError) Error() string {
	if e.Reason != "" {
		return "decode gateway response: " + e.Reason
	}
	return fmt.Sprintf("decode gateway response: unexpected root element %q", e.Root)
}
