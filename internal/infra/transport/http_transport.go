// Package transport is the default HTTP implementation of the Transport
// port. Timeouts live here; the protocol core stays free of deadlines and
// retry policy.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cardpay-client/internal/domain"
	"cardpay-client/internal/domain/ports/adapter"
)

var _ adapter.Transport = (*HTTPTransport)(nil)

const defaultTimeout = 15 * time.Second

type HTTPTransport struct {
	client *http.Client
	log    *zerolog.Logger
}

func NewHTTPTransport(timeout time.Duration, logger *zerolog.Logger) *HTTPTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPTransport{
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

// Do performs one exchange and returns the raw body. Request bodies are
// never logged: order submissions can carry full card data.
func (t *HTTPTransport) Do(ctx context.Context, req adapter.Request) ([]byte, error) {
	var body io.Reader
	var contentType string
	switch {
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.JSON != nil:
		b, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.BasicUser != "" {
		httpReq.SetBasicAuth(req.BasicUser, req.BasicPass)
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if t.log != nil {
		t.log.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("gateway exchange")
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok && req.Accept != nil {
		ok = req.Accept(resp.StatusCode)
	}
	if !ok {
		return nil, &domain.TransportError{
			Method: req.Method,
			URL:    req.URL,
			Status: resp.StatusCode,
			Body:   raw,
		}
	}
	return raw, nil
}
