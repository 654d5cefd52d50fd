// Package web hosts the inbound side of the integration: the HTTP endpoint
// the gateway calls with asynchronous payment notifications, plus health
// and metrics routes.
package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"cardpay-client/internal/domain"
	"cardpay-client/internal/domain/model"
	"cardpay-client/internal/infra/callback"
	"cardpay-client/internal/infra/metrics"
)

// NotificationHandler consumes one verified outcome. It runs on the request
// goroutine; notifications for independent transactions may arrive
// concurrently.
type NotificationHandler func(outcome model.Outcome)

// Server receives gateway notifications on cbPath and hands verified
// outcomes to the configured handler.
type Server struct {
	verifier *callback.Verifier
	handle   NotificationHandler
	cbPath   string
	log      *zerolog.Logger
}

func NewServer(verifier *callback.Verifier, handler NotificationHandler, callbackPath string, logger *zerolog.Logger) *Server {
	if callbackPath == "" {
		callbackPath = "/cardpay/callback"
	}
	return &Server{verifier: verifier, handle: handler, cbPath: callbackPath, log: logger}
}

// Router builds the chi router with the callback, health and metrics routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Post(s.cbPath, s.handleCallback)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// handleCallback verifies before it parses: an unverifiable payload is
// rejected with 403 and never reaches the decoder.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	encoded := r.PostFormValue("orderXML")
	digest := r.PostFormValue("sha512")
	if encoded == "" || digest == "" {
		metrics.IncCallbackVerification("decode_error")
		http.Error(w, "missing orderXML or sha512", http.StatusBadRequest)
		return
	}

	outcome, err := s.verifier.Parse(encoded, digest)
	switch {
	case errors.Is(err, domain.ErrSignatureMismatch):
		metrics.IncCallbackVerification("signature_mismatch")
		if s.log != nil {
			s.log.Warn().Str("remote", r.RemoteAddr).Msg("callback signature mismatch")
		}
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		metrics.IncCallbackVerification("decode_error")
		if s.log != nil {
			s.log.Warn().Err(err).Msg("callback decode failed")
		}
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	metrics.IncCallbackVerification("ok")
	if s.handle != nil {
		s.handle(outcome)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
