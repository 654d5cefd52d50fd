package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		gatewayRequestsTotal,
		gatewayRequestDuration,
		callbackVerificationsTotal,
	)
}

var (
	gatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardpay_gateway_requests_total",
			Help: "Gateway calls by operation and result (ok/rejected/transport_error/decode_error).",
		},
		[]string{"operation", "result"},
	)

	gatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardpay_gateway_request_seconds",
			Help:    "Wall time of one gateway exchange.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	callbackVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardpay_callback_verifications_total",
			Help: "Callback notifications by verification result (ok/signature_mismatch/decode_error).",
		},
		[]string{"result"},
	)
)

func ObserveGatewayRequest(operation, result string, elapsed time.Duration) {
	gatewayRequestsTotal.WithLabelValues(norm(operation), norm(result)).Inc()
	gatewayRequestDuration.WithLabelValues(norm(operation)).Observe(elapsed.Seconds())
}

func IncCallbackVerification(result string) {
	callbackVerificationsTotal.WithLabelValues(norm(result)).Inc()
}
