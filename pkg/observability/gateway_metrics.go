package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gateway call outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeGatewayError   = "gateway_error"
	OutcomeTransportError = "transport_error"
)

var (
	// One sample per outbound gateway call
	gatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "globalone_gateway_requests_total",
		Help: "Total number of requests sent to the GlobalOne gateway",
	}, []string{
		"operation", // register, unregister, pay, pay_registered, refund
		"outcome",   // success, gateway_error, transport_error
	})

	gatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "globalone_gateway_request_duration_seconds",
		Help: "Round trip time of GlobalOne gateway requests",
		// Buckets: 100ms to 30s (typical payment processing times)
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{
		"operation",
	})

	gatewayErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "globalone_gateway_errors_total",
		Help: "ERROR documents returned by the GlobalOne gateway, by error code",
	}, []string{
		"operation",
		"error_code", // E08, E10, E13, ...
	})

	// Payment and refund results
	transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "globalone_transactions_total",
		Help: "Payment and refund responses by gateway response code",
	}, []string{
		"action",        // pay, refund
		"response_code", // A = approved
	})

	transactionAmountCents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "globalone_transaction_amount_cents_total",
		Help: "Approved payment and refund amounts in cents",
	}, []string{
		"action",
		"currency",
	})
)

// RecordGatewayRequest records the outcome and latency of one gateway call
func RecordGatewayRequest(operation, outcome string, duration time.Duration) {
	gatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
	gatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordGatewayError records an ERROR document returned by the gateway
func RecordGatewayError(operation, code string) {
	gatewayErrorsTotal.WithLabelValues(operation, code).Inc()
}

// RecordTransaction records a payment or refund response.
// Only approved transactions count toward the amount total.
func RecordTransaction(action, responseCode, currency string, approved bool, amountCents int64) {
	transactionsTotal.WithLabelValues(action, responseCode).Inc()

	if approved {
		transactionAmountCents.WithLabelValues(action, currency).Add(float64(amountCents))
	}
}
