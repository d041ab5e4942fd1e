// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dropregards"

// Result label values
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

var (
	signatureVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signature_verifications_total",
		Help:      "Wallet signature verifications by result.",
	}, []string{"result"})

	transactionVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transaction_verifications_total",
		Help:      "Ledger transfer verifications by result.",
	}, []string{"result"})

	regardsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "regards_sent_total",
		Help:      "Regards stored after successful verification.",
	})
)

// SignatureVerified counts one wallet signature check
func SignatureVerified(valid bool) {
	signatureVerifications.WithLabelValues(boolResult(valid)).Inc()
}

// TransactionVerified counts one transfer verification with the given result label
func TransactionVerified(result string) {
	transactionVerifications.WithLabelValues(result).Inc()
}

// RegardSent counts one stored regard
func RegardSent() {
	regardsSent.Inc()
}

func boolResult(ok bool) string {
	if ok {
		return ResultValid
	}
	return ResultInvalid
}
