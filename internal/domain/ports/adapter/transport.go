package adapter

import (
	"context"
	"net/url"
)

// Request is one outbound exchange with the gateway. Exactly one of Form or
// JSON is set: Form is sent urlencoded, JSON is marshalled as a JSON body.
// BasicUser/BasicPass enable HTTP basic auth for the v2 JSON endpoints.
type Request struct {
	Method    string
	URL       string
	Form      url.Values
	JSON      any
	BasicUser string
	BasicPass string

	// Accept widens the set of acceptable status codes beyond 2xx. The
	// payout endpoint answers 400/500 with a structured error body that
	// must reach the decoder instead of becoming a transport error.
	Accept func(status int) bool
}

// Transport performs a single synchronous HTTP exchange and returns the raw
// response body. A non-acceptable status surfaces as *domain.TransportError.
// Retry, backoff and timeouts beyond the per-call deadline belong here, not
// in the protocol core.
type Transport interface {
	Do(ctx context.Context, req Request) ([]byte, error)
}
